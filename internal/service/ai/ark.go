package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// ArkCompleter adapts an eino chat model, such as the Ark model, to Completer.
// Upstream failures surface as unclassified errors.
type ArkCompleter struct {
	chatModel model.BaseChatModel
}

func NewArkCompleter(chatModel model.BaseChatModel) *ArkCompleter {
	return &ArkCompleter{chatModel: chatModel}
}

func (c *ArkCompleter) Complete(ctx context.Context, messages []*schema.Message) (string, error) {
	response, err := c.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to run chat model: %w", err)
	}
	if response == nil {
		return "", nil
	}
	return response.Content, nil
}
