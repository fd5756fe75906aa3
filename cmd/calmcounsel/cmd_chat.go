package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/chatlog"
)

// isoMillis mirrors JavaScript's Date.toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Read messages from standard input, one per line, and print the counselor's reply.
Type /quit or send EOF to leave.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return current.chatLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func (a *app) chatLoop(ctx context.Context, in io.Reader, out io.Writer) error {
	if name := a.names.UserName(); name != "" {
		fmt.Fprintf(out, "こんにちは、%sさん。\n", name)
	}
	for _, m := range a.logs.Messages() {
		printMessage(out, m)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}

		if err := a.send(ctx, text); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}
		messages := a.logs.Messages()
		printMessage(out, messages[len(messages)-1])
	}
}

// send appends the user turn, asks the API with the whole log and appends the reply.
func (a *app) send(ctx context.Context, text string) error {
	if _, err := a.logs.AddLogMessage(chat.ChatMessage{
		Role:      chat.RoleUser,
		Content:   text,
		CreatedAt: time.Now().UTC().Format(isoMillis),
	}); err != nil {
		return err
	}

	reply, err := a.api.Chat(ctx, a.logs.Turns())
	if err != nil {
		return err
	}

	_, err = a.logs.AddLogMessage(chat.ChatMessage{
		Role:      chat.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now().UTC().Format(isoMillis),
	})
	return err
}

func printMessage(out io.Writer, m chat.LogMessage) {
	fmt.Fprintf(out, "[%s] %s:\n%s\n", chatlog.FormatTime(m.CreatedAt), m.Role, m.Content)
}
