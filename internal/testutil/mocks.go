package testutil

import (
	"context"
	"time"

	"campusbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock for ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteProfile(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileRepository) ListUserIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockRegistrationRepository is a mock for RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) GetRegistration(ctx context.Context, userID int64) (*domain.Registration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) SaveRegistration(ctx context.Context, reg domain.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) DeleteRegistration(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRegistrationRepository) DeleteStaleRegistrations(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

// MockAdminSessionRepository is a mock for AdminSessionRepository
type MockAdminSessionRepository struct {
	mock.Mock
}

func (m *MockAdminSessionRepository) GetSession(ctx context.Context, userID int64) (*domain.AdminSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminSession), args.Error(1)
}

func (m *MockAdminSessionRepository) SaveSession(ctx context.Context, session domain.AdminSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockAdminSessionRepository) DeleteSession(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAdminSessionRepository) DeleteStaleSessions(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

// MockMessenger is a mock for the outbound Telegram calls
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(chatID int64, text string, kb domain.Keyboard) error {
	args := m.Called(chatID, text, kb)
	return args.Error(0)
}

func (m *MockMessenger) SendPhoto(chatID int64, path, caption string, kb domain.Keyboard) error {
	args := m.Called(chatID, path, caption, kb)
	return args.Error(0)
}

func (m *MockMessenger) Delete(chatID int64, messageID int) error {
	args := m.Called(chatID, messageID)
	return args.Error(0)
}
