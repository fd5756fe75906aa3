package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino/schema"
	"github.com/go-resty/resty/v2"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string        `json:"model"`
	Messages  []wireMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// OpenAICompleter calls an OpenAI-compatible /chat/completions endpoint.
type OpenAICompleter struct {
	client    *resty.Client
	apiKey    string
	model     string
	maxTokens int
}

// NewOpenAICompleter targets baseURL, e.g. https://api.openai.com/v1. No timeout
// or retry is configured on the client.
func NewOpenAICompleter(baseURL, apiKey, model string, maxTokens int) *OpenAICompleter {
	return &OpenAICompleter{
		client:    resty.New().SetBaseURL(baseURL),
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends messages and classifies the upstream response.
func (c *OpenAICompleter) Complete(ctx context.Context, messages []*schema.Message) (string, error) {
	body := completionRequest{
		Model:     c.model,
		Messages:  make([]wireMessage, 0, len(messages)),
		MaxTokens: c.maxTokens,
	}
	for _, m := range messages {
		body.Messages = append(body.Messages, wireMessage{Role: string(m.Role), Content: m.Content})
	}

	res, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}

	if res.StatusCode() == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}

	// An unreadable body is treated like an empty one.
	var data completionResponse
	_ = json.Unmarshal(res.Body(), &data)

	if !res.IsSuccess() {
		message := MessageReplyFailed
		if data.Error != nil && data.Error.Message != "" {
			message = data.Error.Message
		}
		status := res.StatusCode()
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return "", utils.NewHTTPError(status, message)
	}

	if len(data.Choices) == 0 {
		return "", nil
	}
	return data.Choices[0].Message.Content, nil
}
