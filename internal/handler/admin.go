package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// onBroadcast handles /broadcast command
func (h *Handler) onBroadcast(c tele.Context) error {
	ctx, cancel := h.requestContext()
	defer cancel()

	reply, err := h.admin.BeginBroadcast(ctx, c.Sender().ID)
	if err != nil {
		return h.internalError(chatID(c), "Failed to start broadcast", err)
	}
	return h.reply(chatID(c), reply)
}

// onSendMessage handles /send_message command
func (h *Handler) onSendMessage(c tele.Context) error {
	ctx, cancel := h.requestContext()
	defer cancel()

	reply, err := h.admin.BeginDirectMessage(ctx, c.Sender().ID)
	if err != nil {
		return h.internalError(chatID(c), "Failed to start direct message", err)
	}
	return h.reply(chatID(c), reply)
}

// onCancel handles /cancel command
func (h *Handler) onCancel(c tele.Context) error {
	ctx, cancel := h.requestContext()
	defer cancel()

	return h.cancel(ctx, c.Sender().ID, chatID(c))
}

// cancel drops the admin conversation only; a registration in progress is left as is
func (h *Handler) cancel(ctx context.Context, userID, chatID int64) error {
	reply, err := h.admin.Cancel(ctx, userID)
	if err != nil {
		return h.internalError(chatID, "Failed to cancel admin command", err)
	}

	h.logger.Info("Admin command cancel requested", zap.Int64("user_id", userID))
	return h.reply(chatID, reply)
}
