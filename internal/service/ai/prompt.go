package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
)

// DefaultSystemPrompt is the counselor persona used when no override is configured.
const DefaultSystemPrompt = "あなたは日本語で話すカウンセラーです。" +
	"ユーザーの気持ちを受け止め、共感し、落ち着いたトーンで返答してください。" +
	"必要に応じて短い提案や質問を一つだけ添えてください。" +
	"医療や危機に関わる話題が出たら、専門家への相談も勧めてください。" +
	"マークダウンは使わず、句点「。」ごとに改行してください。"

// composer prepends the system instruction to the conversation history.
type composer struct {
	system   string
	template prompt.ChatTemplate
}

func newComposer(system string) *composer {
	if system == "" {
		system = DefaultSystemPrompt
	}
	return &composer{
		system: system,
		template: prompt.FromMessages(
			schema.FString,
			schema.SystemMessage("{system}"),
			schema.MessagesPlaceholder("history", false),
		),
	}
}

// Compose returns the system message followed by one message per turn, carrying
// only role and content.
func (c *composer) Compose(ctx context.Context, turns []chat.Turn) ([]*schema.Message, error) {
	history := make([]*schema.Message, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(turn.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(turn.Content, nil))
		}
	}

	messages, err := c.template.Format(ctx, map[string]any{
		"system":  c.system,
		"history": history,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compose prompt: %w", err)
	}
	return messages, nil
}
