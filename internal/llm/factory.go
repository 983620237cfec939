package llm

import (
	"context"
	"fmt"

	"github.com/evalyze/evalyze/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry, tracing and logging middleware.
// eventRepo may be nil, in which case requests are not recorded.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini, nil)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewScripted(), nil
	default:
		return nil, &ErrUnknownProvider{Name: cfg.Provider}
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → tracing → logging → base
	wrapped := base
	if eventRepo != nil {
		wrapped = WithLogging(wrapped, cfg.Provider, eventRepo)
	}
	wrapped = WithTracing(wrapped)
	wrapped = WithRetry(wrapped, cfg.Retry)
	if cfg.Timeout > 0 {
		wrapped = WithTimeout(wrapped, cfg.Timeout)
	}

	return wrapped, nil
}
