package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	feedbackService "github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/feedback"
)

type echoReplier struct{}

func (echoReplier) Reply(_ context.Context, turns []chat.Turn) (string, error) {
	return turns[len(turns)-1].Content, nil
}

type okRelayer struct{}

func (okRelayer) Relay(context.Context, feedbackService.Submission) error { return nil }

func TestRouterRoutes(t *testing.T) {
	r := NewRouter(echoReplier{}, okRelayer{}, []string{"*"})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"messages":[{"role":"user","content":"ping"}]}`))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"reply":"ping"}`, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("Content-Type"))

	req = httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(`{}`))
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	r := NewRouter(echoReplier{}, okRelayer{}, []string{"https://counsel.example"})

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://counsel.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	assert.Equal(t, "https://counsel.example", resp.Header().Get("Access-Control-Allow-Origin"))
}
