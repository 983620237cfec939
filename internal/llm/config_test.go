package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		cfg    Config
		envVar string // expected ErrNotConfigured hint, empty for no error
		ok     bool
	}{
		"gemini default without key": {cfg: DefaultConfig(), envVar: "GEMINI_API_KEY"},
		"gemini with key":            {cfg: Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, ok: true},
		"anthropic without key":      {cfg: Config{Provider: "anthropic"}, envVar: "EVALYZE_ANTHROPIC_API_KEY"},
		"openai with key":            {cfg: Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk"}}, ok: true},
		"openrouter without key":     {cfg: Config{Provider: "openrouter"}, envVar: "EVALYZE_OPENROUTER_API_KEY"},
		"mock":                       {cfg: Config{Provider: "mock"}, ok: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var nc *ErrNotConfigured
			if assert.ErrorAs(t, err, &nc) {
				assert.Equal(t, tt.envVar, nc.EnvVar)
			}
		})
	}

	var up *ErrUnknownProvider
	assert.ErrorAs(t, Config{Provider: "llama"}.Validate(), &up)
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	assert.True(t, ok)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
}
