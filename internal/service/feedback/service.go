// Package feedback relays user feedback to a configured webhook.
package feedback

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/log"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

// TimestampLayout is the server-local createdAt format sent to the webhook.
const TimestampLayout = "2006/01/02 15:04"

const (
	MessageRequired      = "logs, feedback, and name are required"
	MessageNotConfigured = "Feedback webhook URL is not configured."
	MessageRelayFailed   = "フィードバックの送信に失敗しました。"
)

var (
	ErrFieldsRequired = utils.NewHTTPError(http.StatusBadRequest, MessageRequired)
	ErrNotConfigured  = utils.NewHTTPError(http.StatusInternalServerError, MessageNotConfigured)
)

// Submission is what the user sends. Every field is required after trimming.
type Submission struct {
	Logs     string `json:"logs"`
	Feedback string `json:"feedback"`
	Name     string `json:"name"`
}

type payload struct {
	CreatedAt string `json:"createdAt"`
	Logs      string `json:"logs"`
	Feedback  string `json:"feedback"`
	Name      string `json:"name"`
}

// Service posts submissions to webhookURL.
type Service struct {
	webhookURL string
	client     *resty.Client
	now        func() time.Time
}

func NewService(webhookURL string) *Service {
	return &Service{
		webhookURL: webhookURL,
		client:     resty.New(),
		now:        time.Now,
	}
}

// Relay validates sub and forwards it. Every error it returns is a *utils.HTTPError.
func (s *Service) Relay(ctx context.Context, sub Submission) error {
	sub.Logs = strings.TrimSpace(sub.Logs)
	sub.Feedback = strings.TrimSpace(sub.Feedback)
	sub.Name = strings.TrimSpace(sub.Name)

	if sub.Logs == "" || sub.Feedback == "" || sub.Name == "" {
		return ErrFieldsRequired
	}
	if s.webhookURL == "" {
		return ErrNotConfigured
	}

	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload{
			CreatedAt: s.now().Local().Format(TimestampLayout),
			Logs:      sub.Logs,
			Feedback:  sub.Feedback,
			Name:      sub.Name,
		}).
		Post(s.webhookURL)
	if err != nil {
		log.Error("[feedback] webhook request failed", err)
		return utils.Classify(fmt.Errorf("feedback webhook request failed: %w", err), MessageRelayFailed)
	}

	if !res.IsSuccess() {
		log.Warnw("[feedback] webhook rejected submission", "status", res.StatusCode())
		return utils.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("Feedback webhook failed: %d", res.StatusCode()))
	}

	log.Infow("[feedback] relayed submission", "name", sub.Name, "logsLength", len(sub.Logs))
	return nil
}
