package handler

import (
	"context"
	"strings"
	"unicode"

	"campusbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// onCallback handles ALL callback queries
func (h *Handler) onCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("onCallback: callback is nil")
		return nil
	}

	// Clear the loading indicator first, the rest may take a while
	if err := c.Respond(); err != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
	}

	payload := callback.Unique
	if payload == "" {
		payload = cleanCallbackData(callback.Data)
	}

	messageID := 0
	if callback.Message != nil {
		messageID = callback.Message.ID
	}

	h.logger.Debug("Processing callback",
		zap.String("payload", payload),
		zap.String("data_raw", callback.Data),
		zap.Int64("user_id", c.Sender().ID),
	)

	ctx, cancel := h.requestContext()
	defer cancel()

	return h.selectTopic(ctx, c.Sender().ID, chatID(c), messageID, payload)
}

// selectTopic replaces the pressed message with the selected page
func (h *Handler) selectTopic(ctx context.Context, userID, chatID int64, messageID int, payload string) error {
	topic := domain.ParseTopic(payload)
	if topic == domain.TopicUnknown {
		h.logger.Warn("Unhandled callback", zap.String("payload", payload), zap.Int64("user_id", userID))
	}

	if messageID != 0 {
		if err := h.messenger.Delete(chatID, messageID); err != nil {
			h.logger.Warn("Failed to delete previous message",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
				zap.Error(err),
			)
		}
	}

	screen, err := h.menu.Select(ctx, topic, userID)
	if err != nil {
		return h.internalError(chatID, "Failed to build menu page", err)
	}
	return h.render(chatID, screen)
}
