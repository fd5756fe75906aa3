package chat

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	aiService "github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/ai"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

// Replier produces the assistant reply for a conversation.
type Replier interface {
	Reply(ctx context.Context, turns []chat.Turn) (string, error)
}

// Handler 聊天代理的HTTP处理器
type Handler struct {
	replier Replier
}

// New 创建聊天处理器
func New(replier Replier) *Handler {
	return &Handler{replier: replier}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Messages json.RawMessage `json:"messages"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, utils.NewHTTPError(http.StatusBadRequest, "invalid request body"), aiService.MessageReplyFailed)
		return
	}

	reply, err := h.replier.Reply(r.Context(), chat.ParseTurns(payload.Messages))
	if err != nil {
		utils.RespondError(w, err, aiService.MessageReplyFailed)
		return
	}

	utils.RespondJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
