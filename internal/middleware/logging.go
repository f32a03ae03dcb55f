package middleware

import (
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// LoggingMiddleware logs every incoming update with its handling time.
// Handler errors are logged here and not passed on to the bot's OnError.
func LoggingMiddleware(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.Duration("elapsed", time.Since(start)),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if cb := c.Callback(); cb != nil {
				fields = append(fields, zap.String("callback", strings.TrimPrefix(cb.Data, "\f")))
			} else if text := c.Text(); text != "" {
				fields = append(fields, zap.Int("text_len", len(text)))
			}

			if err != nil {
				logger.Error("Update failed", append(fields, zap.Error(err))...)
				return nil
			}
			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}
