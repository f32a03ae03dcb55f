package handler

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"campusbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// BotMessenger implements Messenger on top of a telebot bot
type BotMessenger struct {
	bot *tele.Bot
}

// NewBotMessenger creates a new messenger
func NewBotMessenger(bot *tele.Bot) *BotMessenger {
	return &BotMessenger{bot: bot}
}

// SendText sends a text message with an optional inline keyboard
func (m *BotMessenger) SendText(chatID int64, text string, kb domain.Keyboard) error {
	_, err := m.bot.Send(tele.ChatID(chatID), text, sendOptions(kb)...)
	return err
}

// SendPhoto sends an image from disk with a caption and an optional inline keyboard
func (m *BotMessenger) SendPhoto(chatID int64, path, caption string, kb domain.Keyboard) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	photo := &tele.Photo{File: tele.FromReader(bytes.NewReader(data)), Caption: caption}
	_, err = m.bot.Send(tele.ChatID(chatID), photo, sendOptions(kb)...)
	return err
}

// Delete removes a message from the chat
func (m *BotMessenger) Delete(chatID int64, messageID int) error {
	return m.bot.Delete(tele.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    chatID,
	})
}

func sendOptions(kb domain.Keyboard) []interface{} {
	markup := inlineMarkup(kb)
	if markup == nil {
		return nil
	}
	return []interface{}{markup}
}

// inlineMarkup converts a keyboard into telebot inline markup
func inlineMarkup(kb domain.Keyboard) *tele.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tele.Btn, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, markup.URL(b.Text, b.URL))
			} else {
				buttons = append(buttons, markup.Data(b.Text, b.Data))
			}
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Inline(rows...)
	return markup
}
