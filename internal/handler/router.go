package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/handler/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/handler/feedback"
	middlewarePkg "github.com/mamosanhaeiyuudesu-sketch/mybot/internal/middleware"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(replier chat.Replier, relayer feedback.Relayer, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(allowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		chat.New(replier).RegisterRoutes(api)
		feedback.New(relayer).RegisterRoutes(api)
	})

	return r
}
