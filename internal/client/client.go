// Package client calls the calmcounsel API from the terminal client.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	feedbackService "github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/feedback"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

// Client talks to the chat and feedback endpoints.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

// Chat sends the conversation history and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, turns []chat.Turn) (string, error) {
	var out struct {
		Reply string `json:"reply"`
	}
	if err := c.post(ctx, "/api/chat", map[string]any{"messages": turns}, &out); err != nil {
		return "", err
	}
	return out.Reply, nil
}

// SendFeedback submits a feedback entry.
func (c *Client) SendFeedback(ctx context.Context, sub feedbackService.Submission) error {
	var out struct {
		OK bool `json:"ok"`
	}
	if err := c.post(ctx, "/api/feedback", sub, &out); err != nil {
		return err
	}
	if !out.OK {
		return fmt.Errorf("feedback was not accepted")
	}
	return nil
}

// post decodes a success body into out, or an error body into *utils.HTTPError.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}

	if !res.IsSuccess() {
		var errBody utils.ErrorBody
		if json.Unmarshal(res.Body(), &errBody) != nil || errBody.Message == "" {
			errBody.Message = http.StatusText(res.StatusCode())
		}
		return utils.NewHTTPError(res.StatusCode(), errBody.Message)
	}

	if err := json.Unmarshal(res.Body(), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
