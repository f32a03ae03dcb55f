package service

import (
	"context"
	"fmt"

	"campusbot/internal/domain"
	"campusbot/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	announcementPrefix  = "Объявление:\n"
	directMessagePrefix = "Личное сообщение от администрации:\n"
)

// Sender delivers a text message to a chat
type Sender interface {
	SendText(chatID int64, text string, kb domain.Keyboard) error
}

// BroadcastService delivers admin messages to students
type BroadcastService struct {
	profiles repository.ProfileRepository
	sender   Sender
	logger   *zap.Logger
	newID    func() string
}

// NewBroadcastService creates a new broadcast service
func NewBroadcastService(profiles repository.ProfileRepository, sender Sender, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{
		profiles: profiles,
		sender:   sender,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Broadcast sends an announcement to every registered user.
// Delivery failures are recorded per recipient and never stop the batch.
func (s *BroadcastService) Broadcast(ctx context.Context, text string) (domain.BroadcastReport, error) {
	ids, err := s.profiles.ListUserIDs(ctx)
	if err != nil {
		return domain.BroadcastReport{}, fmt.Errorf("failed to list recipients: %w", err)
	}

	report := domain.BroadcastReport{
		ID:      s.newID(),
		Text:    text,
		Results: make([]domain.DeliveryResult, 0, len(ids)),
	}

	s.logger.Info("Broadcast started",
		zap.String("broadcast_id", report.ID),
		zap.Int("recipients", len(ids)),
	)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, domain.DeliveryResult{UserID: id, Err: err})
			continue
		}

		err := s.sender.SendText(id, announcementPrefix+text, nil)
		if err != nil {
			s.logger.Error("Failed to deliver announcement",
				zap.String("broadcast_id", report.ID),
				zap.Int64("user_id", id),
				zap.Error(err),
			)
		}
		report.Results = append(report.Results, domain.DeliveryResult{UserID: id, Err: err})
	}

	s.logger.Info("Broadcast finished",
		zap.String("broadcast_id", report.ID),
		zap.Int("delivered", report.Delivered()),
		zap.Int("failed", len(report.Failed())),
	)
	return report, nil
}

// SendDirect sends a message from the administration to one user
func (s *BroadcastService) SendDirect(ctx context.Context, targetID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.sender.SendText(targetID, directMessagePrefix+text, nil); err != nil {
		s.logger.Warn("Failed to deliver direct message",
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
