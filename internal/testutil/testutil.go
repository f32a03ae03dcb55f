package testutil

import (
	"time"

	"campusbot/internal/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewObservedLogger creates a logger whose entries can be inspected
func NewObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// NewTestProfile creates a registered user profile
func NewTestProfile(userID int64, fullName, group string, course int) *domain.UserProfile {
	return &domain.UserProfile{
		UserID:    userID,
		FullName:  fullName,
		Group:     group,
		Course:    course,
		CreatedAt: time.Now(),
	}
}
