// Package ai forwards a conversation to the upstream completion API under the
// counselor system prompt and normalizes whatever comes back.
package ai

import (
	"context"
	"net/http"

	"github.com/cloudwego/eino/schema"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/config"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

// User-facing messages. The deployment speaks Japanese.
const (
	MessageRateLimited   = "時間を置いて再試行してください。"
	MessageReplyFailed   = "返信の取得に失敗しました。"
	MessageReplyMissing  = "返信を取得できませんでした。"
	MessageNotConfigured = "OpenAI API key is not configured."
	MessageRequired      = "messages is required"
)

var (
	ErrMessagesRequired = utils.NewHTTPError(http.StatusBadRequest, MessageRequired)
	ErrNotConfigured    = utils.NewHTTPError(http.StatusInternalServerError, MessageNotConfigured)
	ErrRateLimited      = utils.NewHTTPError(http.StatusTooManyRequests, MessageRateLimited)
	ErrReplyMissing     = utils.NewHTTPError(http.StatusBadGateway, MessageReplyMissing)
)

// Completer performs exactly one upstream completion call.
type Completer interface {
	Complete(ctx context.Context, messages []*schema.Message) (string, error)
}

// Service encapsulates the chat proxy: compose, dispatch, classify.
type Service struct {
	cfg       config.AIConfig
	composer  *composer
	completer Completer
}

// NewService builds a Service around completer. When completer is nil one is
// chosen from cfg.Provider.
func NewService(ctx context.Context, cfg config.AIConfig, completer Completer) (*Service, error) {
	if completer == nil && cfg.Enabled() {
		var err error
		completer, err = newCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		cfg:       cfg,
		composer:  newComposer(cfg.SystemPrompt),
		completer: completer,
	}, nil
}

func newCompleter(ctx context.Context, cfg config.AIConfig) (Completer, error) {
	if cfg.Provider == config.ProviderArk {
		chatModel, err := cfg.NewArkChatModel(ctx)
		if err != nil {
			return nil, err
		}
		return NewArkCompleter(chatModel), nil
	}
	return NewOpenAICompleter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.MaxTokens), nil
}

// Reply returns the assistant's answer to turns. Every error it returns is a
// *utils.HTTPError.
func (s *Service) Reply(ctx context.Context, turns []chat.Turn) (string, error) {
	if len(turns) == 0 {
		return "", ErrMessagesRequired
	}
	if !s.cfg.Enabled() || s.completer == nil {
		return "", ErrNotConfigured
	}

	reply, err := s.reply(ctx, turns)
	if err != nil {
		httpErr := utils.Classify(err, MessageReplyFailed)
		if httpErr.Status >= http.StatusInternalServerError {
			log.Warnw("[ai] completion failed", "status", httpErr.Status, "error", err)
		}
		return "", httpErr
	}

	log.Infow("[ai] generated reply", "turns", len(turns), "length", len(reply))
	return reply, nil
}

func (s *Service) reply(ctx context.Context, turns []chat.Turn) (string, error) {
	messages, err := s.composer.Compose(ctx, turns)
	if err != nil {
		return "", err
	}

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", ErrReplyMissing
	}
	return reply, nil
}

