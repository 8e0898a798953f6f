package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"MAPQUIZ_LLM_PROVIDER", "MAPQUIZ_GEMINI_API_KEY", "MAPQUIZ_GEMINI_MODEL",
		"MAPQUIZ_OPENAI_API_KEY", "MAPQUIZ_OPENAI_MODEL", "MAPQUIZ_OPENAI_BASE_URL",
		"MAPQUIZ_ANTHROPIC_API_KEY", "MAPQUIZ_ANTHROPIC_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDiscoverConfig(t *testing.T) {
	tests := []struct {
		name         string
		env          map[string]string
		wantFound    bool
		wantProvider string
	}{
		{"none", nil, false, ""},
		{"gemini wins", map[string]string{"GEMINI_API_KEY": "g", "OPENAI_API_KEY": "o"}, true, ProviderGemini},
		{"openai", map[string]string{"OPENAI_API_KEY": "o"}, true, ProviderOpenAI},
		{"anthropic", map[string]string{"ANTHROPIC_API_KEY": "a"}, true, ProviderAnthropic},
		{"openrouter via openai", map[string]string{"OPENROUTER_API_KEY": "r"}, true, ProviderOpenAI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearLLMEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, found := DiscoverConfig()
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantProvider, cfg.Provider)
			if found {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestDiscoverConfig_OpenRouterBaseURL(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENROUTER_API_KEY", "r")
	cfg, _ := DiscoverConfig()
	assert.Equal(t, openRouterBaseURL, cfg.OpenAI.BaseURL)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("MAPQUIZ_LLM_PROVIDER", "anthropic")
	t.Setenv("MAPQUIZ_ANTHROPIC_API_KEY", "a")
	t.Setenv("MAPQUIZ_ANTHROPIC_MODEL", "claude-sonnet")

	cfg, found := ConfigFromEnv()
	require.True(t, found)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
	assert.Equal(t, "g", cfg.Gemini.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate(), "gemini without key")

	cfg.Provider = ProviderMock
	assert.NoError(t, cfg.Validate())

	cfg.Provider = "openrouter"
	assert.Error(t, cfg.Validate())
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil)
	assert.Error(t, err)
}
