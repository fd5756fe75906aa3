package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/config"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/handler"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/model/chat"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/ai"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/service/feedback"
	"github.com/mamosanhaeiyuudesu-sketch/mybot/internal/storage"
)

// countingCompleter replies with how many turns it saw.
type countingCompleter struct{}

func (countingCompleter) Complete(_ context.Context, messages []*schema.Message) (string, error) {
	return strings.Repeat("。", len(messages)-1), nil
}

func newTestApp(t *testing.T, ls storage.LocalStorage) *app {
	t.Helper()
	svc, err := ai.NewService(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "k"}, countingCompleter{})
	require.NoError(t, err)

	srv := httptest.NewServer(handler.NewRouter(svc, feedback.NewService(""), []string{"*"}))
	t.Cleanup(srv.Close)
	return newApp(srv.URL, ls)
}

func TestChatLoopAppendsBothTurns(t *testing.T) {
	ls := storage.NewMemory()
	a := newTestApp(t, ls)

	var out bytes.Buffer
	require.NoError(t, a.chatLoop(context.Background(), strings.NewReader("hello\n\nagain\n/quit\n"), &out))

	messages := a.logs.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, chat.RoleUser, messages[0].Role)
	assert.Equal(t, "。", messages[1].Content)
	assert.Equal(t, "again", messages[2].Content)
	assert.Equal(t, "。。。", messages[3].Content, "the whole log is sent as history")
	assert.Contains(t, out.String(), "。。。")

	reopened := newApp("http://unused.invalid", ls)
	assert.Equal(t, messages, reopened.logs.Messages())
}

func TestChatLoopGreetsByName(t *testing.T) {
	ls := storage.NewMemory()
	require.NoError(t, ls.SetItem("calmcounsel-user-name", "hana"))
	a := newTestApp(t, ls)

	var out bytes.Buffer
	require.NoError(t, a.chatLoop(context.Background(), strings.NewReader(""), &out))

	assert.Contains(t, out.String(), "hanaさん")
}

func TestChatLoopReportsAPIErrors(t *testing.T) {
	a := newApp("http://127.0.0.1:1", storage.NewMemory())

	var out bytes.Buffer
	require.NoError(t, a.chatLoop(context.Background(), strings.NewReader("hi\n"), &out))

	assert.Contains(t, out.String(), "! ")
	assert.Len(t, a.logs.Messages(), 1, "the user turn stays in the log")
}

func TestSelectMessages(t *testing.T) {
	messages := []chat.LogMessage{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, messages[1:], selectMessages(messages, nil, 2))
	assert.Equal(t, messages, selectMessages(messages, nil, 0))
	assert.Equal(t, []chat.LogMessage{messages[0], messages[2]}, selectMessages(messages, []string{"c", "a"}, 1))
}

func TestFormatTranscript(t *testing.T) {
	got := formatTranscript([]chat.LogMessage{
		{ChatMessage: chat.ChatMessage{Role: chat.RoleUser, Content: "hi", CreatedAt: "2024-05-01T09:00:00"}},
		{ChatMessage: chat.ChatMessage{Role: chat.RoleAssistant, Content: "hello", CreatedAt: "bad"}},
	})

	assert.Equal(t, "[2024/05/01 09:00] user: hi\n[] assistant: hello", got)
}
