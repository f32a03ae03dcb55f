package handler

import (
	"context"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// onStart handles /start command
func (h *Handler) onStart(c tele.Context) error {
	ctx, cancel := h.requestContext()
	defer cancel()

	h.logger.Info("User started bot",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)
	return h.start(ctx, c.Sender().ID, chatID(c))
}

func (h *Handler) start(ctx context.Context, userID, chatID int64) error {
	reply, err := h.registration.Start(ctx, userID)
	if err != nil {
		return h.internalError(chatID, "Failed to start registration", err)
	}
	return h.reply(chatID, reply)
}

// onText handles all text messages based on state
func (h *Handler) onText(c tele.Context) error {
	return h.text(h.ctx, c.Sender().ID, chatID(c), c.Text())
}

// text routes a message to the admin conversation or the registration dialog.
// Admin conversations run under ctx itself since a broadcast may outlast the request timeout.
func (h *Handler) text(ctx context.Context, userID, chatID int64, text string) error {
	// Ignore commands (starting with /)
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return nil
	}

	// Admin conversations take precedence over registration
	reply, handled, err := h.admin.HandleText(ctx, userID, text)
	if err != nil {
		return h.internalError(chatID, "Failed to handle admin conversation", err)
	}
	if handled {
		return h.reply(chatID, reply)
	}

	rctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	reply, err = h.registration.HandleText(rctx, userID, text)
	if err != nil {
		return h.internalError(chatID, "Failed to handle registration step", err)
	}
	return h.reply(chatID, reply)
}
