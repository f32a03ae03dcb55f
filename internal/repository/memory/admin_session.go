package memory

import (
	"context"
	"sync"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"
)

// AdminSessionRepo implements repository.AdminSessionRepository
type AdminSessionRepo struct {
	mu       sync.RWMutex
	sessions map[int64]domain.AdminSession
}

// NewAdminSessionRepo creates an empty admin session store
func NewAdminSessionRepo() *AdminSessionRepo {
	return &AdminSessionRepo{sessions: make(map[int64]domain.AdminSession)}
}

func (r *AdminSessionRepo) GetSession(_ context.Context, userID int64) (*domain.AdminSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *AdminSessionRepo) SaveSession(_ context.Context, session domain.AdminSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.UserID] = session
	return nil
}

func (r *AdminSessionRepo) DeleteSession(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
	return nil
}

// DeleteStaleSessions removes sessions not updated since before
func (r *AdminSessionRepo) DeleteStaleSessions(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(before) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
