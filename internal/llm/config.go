package llm

import (
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "anthropic", "openai", "openrouter", "mock"
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single LLM request including retries. Zero, the
	// default, leaves the call unbounded.
	Timeout time.Duration `yaml:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // alias or model ID, default "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `yaml:"base_url"` // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"` // alias or model ID, default "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`    // vendor-prefixed ID, default "google/gemini-2.0-flash-001"
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
// Generation is attempted once; raise Retry.MaxAttempts to retry.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-001",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// credentials describes where one provider's key and model come from.
type credentials struct {
	provider string
	display  string
	// envVar is evalyze's variable; vendorVar is the vendor's own, read
	// by DiscoverConfig and, for Gemini, as a fallback by ApplyEnv.
	envVar    string
	vendorVar string
	modelVar  string
	fields    func(*Config) (key, model *string)
}

// providers is in discovery order; Gemini comes first as the default.
var providers = []credentials{
	{"gemini", "Gemini", "EVALYZE_GEMINI_API_KEY", "GEMINI_API_KEY", "EVALYZE_GEMINI_MODEL",
		func(c *Config) (*string, *string) { return &c.Gemini.APIKey, &c.Gemini.Model }},
	{"openai", "OpenAI", "EVALYZE_OPENAI_API_KEY", "OPENAI_API_KEY", "EVALYZE_OPENAI_MODEL",
		func(c *Config) (*string, *string) { return &c.OpenAI.APIKey, &c.OpenAI.Model }},
	{"anthropic", "Anthropic", "EVALYZE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY", "EVALYZE_ANTHROPIC_MODEL",
		func(c *Config) (*string, *string) { return &c.Anthropic.APIKey, &c.Anthropic.Model }},
	{"openrouter", "OpenRouter", "EVALYZE_OPENROUTER_API_KEY", "OPENROUTER_API_KEY", "EVALYZE_OPENROUTER_MODEL",
		func(c *Config) (*string, *string) { return &c.OpenRouter.APIKey, &c.OpenRouter.Model }},
}

func lookupProvider(name string) (credentials, bool) {
	for _, p := range providers {
		if p.provider == name {
			return p, true
		}
	}
	return credentials{}, false
}

// ConfigFromEnv builds a Config from environment variables over the
// defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays the EVALYZE_ variables onto cfg. GEMINI_API_KEY is
// honoured too, since the default provider is Gemini; the EVALYZE_ name
// wins when both are set.
func ApplyEnv(cfg *Config) {
	if p := os.Getenv("EVALYZE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for _, p := range providers {
		key, model := p.fields(cfg)
		if p.provider == "gemini" {
			setFromEnv(key, p.vendorVar)
		}
		setFromEnv(key, p.envVar)
		setFromEnv(model, p.modelVar)
	}
	setFromEnv(&cfg.OpenAI.BaseURL, "EVALYZE_OPENAI_BASE_URL")
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

// DiscoverConfig picks the first provider whose vendor key variable is
// set (GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
// OPENROUTER_API_KEY). It reports false when none is.
func DiscoverConfig() (Config, bool) {
	for _, p := range providers {
		k := os.Getenv(p.vendorVar)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = p.provider
		key, _ := p.fields(&cfg)
		*key = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks that the selected provider has its API key. A missing
// key yields *ErrNotConfigured naming the variable to set.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	p, ok := lookupProvider(c.Provider)
	if !ok {
		return &ErrUnknownProvider{Name: c.Provider}
	}
	if key, _ := p.fields(&c); *key == "" {
		envVar := p.envVar
		if p.provider == "gemini" {
			envVar = p.vendorVar
		}
		return &ErrNotConfigured{Provider: p.display, EnvVar: envVar}
	}
	return nil
}
