package feedback

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	feedbackService "github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/feedback"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

// Relayer forwards a feedback submission.
type Relayer interface {
	Relay(ctx context.Context, sub feedbackService.Submission) error
}

// Handler serves POST /feedback.
type Handler struct {
	relayer Relayer
}

func New(relayer Relayer) *Handler {
	return &Handler{relayer: relayer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback", h.handleFeedback)
}

func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Logs     *string `json:"logs"`
		Feedback *string `json:"feedback"`
		Name     *string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, feedbackService.ErrFieldsRequired, feedbackService.MessageRelayFailed)
		return
	}

	sub := feedbackService.Submission{
		Logs:     deref(payload.Logs),
		Feedback: deref(payload.Feedback),
		Name:     deref(payload.Name),
	}
	if err := h.relayer.Relay(r.Context(), sub); err != nil {
		utils.RespondError(w, err, feedbackService.MessageRelayFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
