package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"

	"go.uber.org/zap"
)

const (
	msgPermissionDenied = "У вас нет прав для использования этой команды."
	msgAskAnnouncement  = "Введите текст объявления для рассылки:"
	msgAskTargetID      = "Введите Telegram ID студента:"
	msgInvalidTargetID  = "Неверный формат ID. Попробуйте снова."
	msgAskMessageBody   = "Введите текст сообщения для студента:"
	msgMessageSent      = "Сообщение отправлено."
	msgCancelled        = "Команда отменена."
	msgNothingToCancel  = "Нет активной команды для отмены."
)

// AdminService runs the broadcast and direct-message conversations
type AdminService struct {
	access    *AccessService
	sessions  repository.AdminSessionRepository
	broadcast *BroadcastService
	logger    *zap.Logger
	now       func() time.Time
}

// NewAdminService creates a new admin service
func NewAdminService(
	access *AccessService,
	sessions repository.AdminSessionRepository,
	broadcast *BroadcastService,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		access:    access,
		sessions:  sessions,
		broadcast: broadcast,
		logger:    logger,
		now:       time.Now,
	}
}

// BeginBroadcast starts the announcement conversation
func (s *AdminService) BeginBroadcast(ctx context.Context, userID int64) (Reply, error) {
	return s.begin(ctx, userID, domain.AdminAwaitingAnnouncement, msgAskAnnouncement)
}

// BeginDirectMessage starts the direct-message conversation
func (s *AdminService) BeginDirectMessage(ctx context.Context, userID int64) (Reply, error) {
	return s.begin(ctx, userID, domain.AdminAwaitingTarget, msgAskTargetID)
}

func (s *AdminService) begin(ctx context.Context, userID int64, state domain.AdminState, prompt string) (Reply, error) {
	if !s.access.IsAdmin(userID) {
		s.logger.Warn("Admin command denied", zap.Int64("user_id", userID))
		return Reply{Text: msgPermissionDenied}, nil
	}

	session := domain.AdminSession{UserID: userID, State: state, UpdatedAt: s.now()}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return Reply{}, fmt.Errorf("failed to save admin session: %w", err)
	}
	return Reply{Text: prompt}, nil
}

// Cancel ends the admin conversation without side effects
func (s *AdminService) Cancel(ctx context.Context, userID int64) (Reply, error) {
	_, err := s.sessions.GetSession(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Reply{Text: msgNothingToCancel}, nil
	}
	if err != nil {
		return Reply{}, fmt.Errorf("failed to load admin session: %w", err)
	}

	if err := s.sessions.DeleteSession(ctx, userID); err != nil {
		return Reply{}, fmt.Errorf("failed to delete admin session: %w", err)
	}
	return Reply{Text: msgCancelled}, nil
}

// HandleText feeds text into an active admin conversation.
// The boolean result is false when the user has no conversation in progress.
func (s *AdminService) HandleText(ctx context.Context, userID int64, text string) (Reply, bool, error) {
	session, err := s.sessions.GetSession(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Reply{}, false, nil
	}
	if err != nil {
		return Reply{}, false, fmt.Errorf("failed to load admin session: %w", err)
	}

	switch session.State {
	case domain.AdminAwaitingAnnouncement:
		reply, err := s.announce(ctx, userID, text)
		return reply, true, err

	case domain.AdminAwaitingTarget:
		targetID, err := domain.ParseTargetID(text)
		if err != nil {
			return Reply{Text: msgInvalidTargetID}, true, nil
		}
		session.State = domain.AdminAwaitingBody
		session.TargetID = targetID
		session.UpdatedAt = s.now()
		if err := s.sessions.SaveSession(ctx, *session); err != nil {
			return Reply{}, true, fmt.Errorf("failed to save admin session: %w", err)
		}
		return Reply{Text: msgAskMessageBody}, true, nil

	case domain.AdminAwaitingBody:
		reply, err := s.deliver(ctx, userID, session.TargetID, text)
		return reply, true, err

	default:
		if err := s.sessions.DeleteSession(ctx, userID); err != nil {
			return Reply{}, false, fmt.Errorf("failed to delete admin session: %w", err)
		}
		return Reply{}, false, nil
	}
}

func (s *AdminService) announce(ctx context.Context, userID int64, text string) (Reply, error) {
	if err := s.sessions.DeleteSession(ctx, userID); err != nil {
		return Reply{}, fmt.Errorf("failed to delete admin session: %w", err)
	}

	report, err := s.broadcast.Broadcast(ctx, text)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Рассылка завершена. Сообщение отправлено %d пользователям.", report.Delivered())}, nil
}

func (s *AdminService) deliver(ctx context.Context, userID, targetID int64, text string) (Reply, error) {
	if err := s.sessions.DeleteSession(ctx, userID); err != nil {
		return Reply{}, fmt.Errorf("failed to delete admin session: %w", err)
	}

	if err := s.broadcast.SendDirect(ctx, targetID, text); err != nil {
		return Reply{Text: fmt.Sprintf("Ошибка при отправке сообщения: %v", err)}, nil
	}
	return Reply{Text: msgMessageSent}, nil
}
