// Package memory implements repositories on top of process-local maps.
package memory

import (
	"context"
	"sort"
	"sync"

	"campusbot/internal/domain"
	"campusbot/internal/repository"
)

// ProfileRepo implements repository.ProfileRepository
type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[int64]domain.UserProfile
}

// NewProfileRepo creates an empty profile store
func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[int64]domain.UserProfile)}
}

// GetProfile returns a copy of the stored profile
func (r *ProfileRepo) GetProfile(_ context.Context, userID int64) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// SaveProfile inserts or replaces a profile
func (r *ProfileRepo) SaveProfile(_ context.Context, profile domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

// DeleteProfile removes a profile if present
func (r *ProfileRepo) DeleteProfile(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

// ListUserIDs returns all registered user IDs in ascending order
func (r *ProfileRepo) ListUserIDs(_ context.Context) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
