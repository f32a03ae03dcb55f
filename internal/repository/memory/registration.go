package memory

import (
	"context"
	"sync"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"
)

// RegistrationRepo implements repository.RegistrationRepository
type RegistrationRepo struct {
	mu            sync.RWMutex
	registrations map[int64]domain.Registration
}

// NewRegistrationRepo creates an empty registration store
func NewRegistrationRepo() *RegistrationRepo {
	return &RegistrationRepo{registrations: make(map[int64]domain.Registration)}
}

func (r *RegistrationRepo) GetRegistration(_ context.Context, userID int64) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.registrations[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &reg, nil
}

func (r *RegistrationRepo) SaveRegistration(_ context.Context, reg domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registrations[reg.UserID] = reg
	return nil
}

func (r *RegistrationRepo) DeleteRegistration(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.registrations, userID)
	return nil
}

// DeleteStaleRegistrations removes registrations not updated since before
func (r *RegistrationRepo) DeleteStaleRegistrations(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, reg := range r.registrations {
		if reg.UpdatedAt.Before(before) {
			delete(r.registrations, id)
			removed++
		}
	}
	return removed, nil
}
