package service

import (
	"context"
	"time"

	"campusbot/internal/repository"

	"go.uber.org/zap"
)

// CleanupService purges conversations abandoned midway
type CleanupService struct {
	registrations repository.RegistrationRepository
	adminSessions repository.AdminSessionRepository
	ttl           time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	registrations repository.RegistrationRepository,
	adminSessions repository.AdminSessionRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *CleanupService {
	return &CleanupService{
		registrations: registrations,
		adminSessions: adminSessions,
		ttl:           ttl,
		logger:        logger,
		now:           time.Now,
	}
}

// CleanupStaleSessions removes registrations and admin sessions idle for longer than the TTL
func (s *CleanupService) CleanupStaleSessions(ctx context.Context) error {
	before := s.now().Add(-s.ttl)

	s.logger.Info("Starting cleanup of stale sessions", zap.Duration("ttl", s.ttl))

	registrations, err := s.registrations.DeleteStaleRegistrations(ctx, before)
	if err != nil {
		s.logger.Error("Failed to cleanup stale registrations", zap.Error(err))
		return err
	}

	sessions, err := s.adminSessions.DeleteStaleSessions(ctx, before)
	if err != nil {
		s.logger.Error("Failed to cleanup stale admin sessions", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully",
		zap.Int("registrations", registrations),
		zap.Int("admin_sessions", sessions),
	)
	return nil
}
