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

type registrationRow struct {
	UserID    int64     `db:"user_id"`
	State     string    `db:"state"`
	FullName  string    `db:"full_name"`
	GroupName string    `db:"group_name"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RegistrationRepo implements repository.RegistrationRepository
type RegistrationRepo struct {
	db *sqlx.DB
}

// NewRegistrationRepo creates a new registration repository
func NewRegistrationRepo(db *sqlx.DB) *RegistrationRepo {
	return &RegistrationRepo{db: db}
}

// GetRegistration returns the dialog in progress for a user
func (r *RegistrationRepo) GetRegistration(ctx context.Context, userID int64) (*domain.Registration, error) {
	var row registrationRow
	query := `SELECT user_id, state, full_name, group_name, updated_at FROM registrations WHERE user_id = $1`
	err := r.db.GetContext(ctx, &row, query, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &domain.Registration{
		UserID:    row.UserID,
		State:     domain.RegistrationState(row.State),
		FullName:  row.FullName,
		Group:     row.GroupName,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// SaveRegistration upserts the dialog state and buffered fields
func (r *RegistrationRepo) SaveRegistration(ctx context.Context, reg domain.Registration) error {
	query := `
		INSERT INTO registrations (user_id, state, full_name, group_name, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET state = EXCLUDED.state,
			full_name = EXCLUDED.full_name,
			group_name = EXCLUDED.group_name,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, reg.UserID, string(reg.State), reg.FullName, reg.Group, reg.UpdatedAt)
	return err
}

// DeleteRegistration removes the dialog of a user
func (r *RegistrationRepo) DeleteRegistration(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE user_id = $1`, userID)
	return err
}

// DeleteStaleRegistrations removes dialogs not updated since before
func (r *RegistrationRepo) DeleteStaleRegistrations(ctx context.Context, before time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE updated_at < $1`, before)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
