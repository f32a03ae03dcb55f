package handler

import (
	"context"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgInternalError = "Произошла ошибка. Попробуйте позже."
	requestTimeout   = 30 * time.Second
)

// Messenger performs the outbound Telegram calls
type Messenger interface {
	SendText(chatID int64, text string, kb domain.Keyboard) error
	SendPhoto(chatID int64, path, caption string, kb domain.Keyboard) error
	Delete(chatID int64, messageID int) error
}

// Handler manages all bot interactions
type Handler struct {
	ctx          context.Context
	timeout      time.Duration
	bot          *tele.Bot
	messenger    Messenger
	registration *service.RegistrationService
	menu         *service.MenuService
	admin        *service.AdminService
	logger       *zap.Logger
}

// NewHandler creates a new handler instance.
// ctx lives as long as the process and bounds work that outlasts a single request.
func NewHandler(
	ctx context.Context,
	bot *tele.Bot,
	messenger Messenger,
	registration *service.RegistrationService,
	menu *service.MenuService,
	admin *service.AdminService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		ctx:          ctx,
		timeout:      requestTimeout,
		bot:          bot,
		messenger:    messenger,
		registration: registration,
		menu:         menu,
		admin:        admin,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.onStart)
	h.bot.Handle("/broadcast", h.onBroadcast)
	h.bot.Handle("/send_message", h.onSendMessage)
	h.bot.Handle("/cancel", h.onCancel)

	// Text messages
	h.bot.Handle(tele.OnText, h.onText)

	// Menu buttons
	h.bot.Handle(tele.OnCallback, h.onCallback)
}

func (h *Handler) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(h.ctx, h.timeout)
}

// chatID returns the chat to answer in; callbacks without a message fall back to the sender
func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return c.Sender().ID
}

// reply sends the service answer and the main menu if requested
func (h *Handler) reply(chatID int64, reply service.Reply) error {
	if err := h.messenger.SendText(chatID, reply.Text, nil); err != nil {
		return err
	}
	if reply.ShowMenu {
		return h.showMainMenu(chatID)
	}
	return nil
}

func (h *Handler) showMainMenu(chatID int64) error {
	return h.render(chatID, h.menu.MainMenu())
}

// render sends the screen as a photo, falling back to text when the photo cannot be delivered
func (h *Handler) render(chatID int64, screen domain.Screen) error {
	if screen.HasImage() {
		err := h.messenger.SendPhoto(chatID, screen.ImagePath, screen.Text, screen.Keyboard)
		if err == nil {
			return nil
		}
		h.logger.Error("Failed to send photo, sending text instead",
			zap.Int64("chat_id", chatID),
			zap.String("image", screen.ImagePath),
			zap.Error(err),
		)
	}
	return h.messenger.SendText(chatID, screen.Text, screen.Keyboard)
}

func (h *Handler) internalError(chatID int64, msg string, err error) error {
	h.logger.Error(msg, zap.Int64("chat_id", chatID), zap.Error(err))
	return h.messenger.SendText(chatID, msgInternalError, nil)
}
