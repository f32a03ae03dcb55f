package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"

	"github.com/jmoiron/sqlx"
)

type profileRow struct {
	UserID    int64     `db:"user_id"`
	FullName  string    `db:"full_name"`
	GroupName string    `db:"group_name"`
	Course    int       `db:"course"`
	CreatedAt time.Time `db:"created_at"`
}

// ProfileRepo implements repository.ProfileRepository
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetProfile returns the profile of a registered user
func (r *ProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	var row profileRow
	query := `SELECT user_id, full_name, group_name, course, created_at FROM profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &row, query, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &domain.UserProfile{
		UserID:    row.UserID,
		FullName:  row.FullName,
		Group:     row.GroupName,
		Course:    row.Course,
		CreatedAt: row.CreatedAt,
	}, nil
}

// SaveProfile inserts or replaces a profile
func (r *ProfileRepo) SaveProfile(ctx context.Context, p domain.UserProfile) error {
	query := `
		INSERT INTO profiles (user_id, full_name, group_name, course, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET full_name = EXCLUDED.full_name,
			group_name = EXCLUDED.group_name,
			course = EXCLUDED.course
	`
	_, err := r.db.ExecContext(ctx, query, p.UserID, p.FullName, p.Group, p.Course, p.CreatedAt)
	return err
}

// DeleteProfile removes a profile
func (r *ProfileRepo) DeleteProfile(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}

// ListUserIDs returns IDs of all registered users in ascending order
func (r *ProfileRepo) ListUserIDs(ctx context.Context) ([]int64, error) {
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM profiles ORDER BY user_id`); err != nil {
		return nil, err
	}
	return ids, nil
}
