package bot

import (
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/telebot.v4"
)

// Recover turns a panic in a handler into an error and logs it.
func Recover(logger *slog.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					switch x := r.(type) {
					case error:
						err = x
					case string:
						err = errors.New(x)
					default:
						err = fmt.Errorf("panic: %v", x)
					}
					logger.Error("handler panic", "update", c.Update().ID, "error", err)
				}
			}()
			return next(c)
		}
	}
}

// Logger logs each incoming update at debug level and handler errors at
// warn level.
func Logger(logger *slog.Logger) telebot.MiddlewareFunc {
	return func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			attrs := []any{"update", c.Update().ID}
			if chat := c.Chat(); chat != nil {
				attrs = append(attrs, "chat", chat.ID)
			}
			if c.Callback() != nil {
				attrs = append(attrs, "callback", c.Callback().Unique)
			} else if text := c.Text(); text != "" {
				attrs = append(attrs, "text_len", len(text))
			}
			logger.Debug("telegram update", attrs...)

			err := next(c)
			if err != nil {
				logger.Warn("telegram handler failed", append(attrs, "error", err)...)
			}
			return err
		}
	}
}
