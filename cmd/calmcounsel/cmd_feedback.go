package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/chatlog"
	feedbackService "github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/feedback"
)

var (
	feedbackLast int
	feedbackIDs  []string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback TEXT",
	Short: "Send feedback together with an excerpt of the conversation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := current.names.UserName()
		if name == "" {
			return errors.New(`no display name set; run "calmcounsel name <your name>" first`)
		}

		excerpt := selectMessages(current.logs.Messages(), feedbackIDs, feedbackLast)
		if len(excerpt) == 0 {
			return errors.New("no log messages selected")
		}

		err := current.api.SendFeedback(cmd.Context(), feedbackService.Submission{
			Logs:     formatTranscript(excerpt),
			Feedback: strings.Join(args, " "),
			Name:     name,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "feedback sent, thank you")
		return nil
	},
}

func init() {
	feedbackCmd.Flags().IntVar(&feedbackLast, "last", 10, "number of most recent messages to include")
	feedbackCmd.Flags().StringSliceVar(&feedbackIDs, "id", nil, "include only these message ids")
}

// selectMessages keeps the messages named by ids, or the last n when ids is empty.
func selectMessages(messages []chat.LogMessage, ids []string, n int) []chat.LogMessage {
	if len(ids) > 0 {
		want := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			want[id] = struct{}{}
		}
		var picked []chat.LogMessage
		for _, m := range messages {
			if _, ok := want[m.ID]; ok {
				picked = append(picked, m)
			}
		}
		return picked
	}

	if n <= 0 || n >= len(messages) {
		return messages
	}
	return messages[len(messages)-n:]
}

func formatTranscript(messages []chat.LogMessage) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "[%s] %s: %s", chatlog.FormatTime(m.CreatedAt), m.Role, m.Content)
	}
	return b.String()
}
