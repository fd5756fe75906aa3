package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/chatlog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect or prune the local conversation log",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored messages with their ids",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		listMessages(cmd.OutOrStdout(), current.logs.Messages())
	},
}

var logRemoveCmd = &cobra.Command{
	Use:   "rm ID...",
	Short: "Remove messages by id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		before := len(current.logs.Messages())
		if err := current.logs.RemoveLogMessages(args); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d message(s)\n", before-len(current.logs.Messages()))
		return nil
	},
}

func init() {
	logCmd.AddCommand(logListCmd, logRemoveCmd)
}

func listMessages(out io.Writer, messages []chat.LogMessage) {
	for _, m := range messages {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", m.ID, chatlog.FormatTime(m.CreatedAt), m.Role, oneLine(m.Content))
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
