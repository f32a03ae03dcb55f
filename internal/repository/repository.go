package repository

import (
	"context"
	"errors"
	"time"

	"campusbot/internal/domain"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// ProfileRepository stores registered user profiles
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
	DeleteProfile(ctx context.Context, userID int64) error
	ListUserIDs(ctx context.Context) ([]int64, error)
}

// RegistrationRepository stores registration dialogs in progress
type RegistrationRepository interface {
	GetRegistration(ctx context.Context, userID int64) (*domain.Registration, error)
	SaveRegistration(ctx context.Context, reg domain.Registration) error
	DeleteRegistration(ctx context.Context, userID int64) error
	DeleteStaleRegistrations(ctx context.Context, before time.Time) (int, error)
}

// AdminSessionRepository stores admin conversations in progress
type AdminSessionRepository interface {
	GetSession(ctx context.Context, userID int64) (*domain.AdminSession, error)
	SaveSession(ctx context.Context, session domain.AdminSession) error
	DeleteSession(ctx context.Context, userID int64) error
	DeleteStaleSessions(ctx context.Context, before time.Time) (int, error)
}
