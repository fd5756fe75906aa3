package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ALLOWED_ORIGINS", "CHAT_PROVIDER", "COUNSELOR_SYSTEM_PROMPT",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_MAX_TOKENS",
		"ARK_API_KEY", "ARK_ACCESS_KEY", "ARK_SECRET_KEY", "ARK_MODEL",
		"FEEDBACK_WEBHOOK_URL", "LOG_LEVEL", "LOG_FORMAT",
		"CALMCOUNSEL_API_URL", "CALMCOUNSEL_STORAGE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "gpt-4.1", cfg.AI.OpenAIModel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.OpenAIBaseURL)
	assert.Equal(t, 500, cfg.AI.MaxTokens)
	assert.False(t, cfg.AI.Enabled(), "missing key is reported per request, not at load")
	assert.Empty(t, cfg.Feedback.WebhookURL)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:1234/v1/")
	t.Setenv("OPENAI_MAX_TOKENS", "120")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("FEEDBACK_WEBHOOK_URL", "https://hooks.example/feedback")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "sk-test", cfg.AI.OpenAIAPIKey)
	assert.Equal(t, "http://localhost:1234/v1", cfg.AI.OpenAIBaseURL)
	assert.Equal(t, 120, cfg.AI.MaxTokens)
	assert.True(t, cfg.AI.Enabled())
	assert.Equal(t, "https://hooks.example/feedback", cfg.Feedback.WebhookURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"port with space": {"PORT", "80 80"},
		"max tokens":      {"OPENAI_MAX_TOKENS", "lots"},
		"zero max tokens": {"OPENAI_MAX_TOKENS", "0"},
		"provider":        {"CHAT_PROVIDER", "llama"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestArkEnabled(t *testing.T) {
	cfg := AIConfig{Provider: ProviderArk, ArkModel: "ep-1"}
	assert.False(t, cfg.Enabled())

	cfg.ArkAccessKey, cfg.ArkSecretKey = "ak", "sk"
	assert.True(t, cfg.Enabled())
}

func TestLoadClient(t *testing.T) {
	clearEnv(t)
	t.Setenv("CALMCOUNSEL_API_URL", "http://counsel.local/")
	t.Setenv("CALMCOUNSEL_STORAGE", "/tmp/cc.db")

	cfg, err := LoadClient()
	require.NoError(t, err)

	assert.Equal(t, "http://counsel.local", cfg.APIURL)
	assert.Equal(t, "/tmp/cc.db", cfg.StoragePath)
}
