package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusbot/internal/domain"
	"campusbot/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRegistrationRepo_GetRegistration(t *testing.T) {
	updatedAt := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	query := "SELECT user_id, state, full_name, group_name, updated_at FROM registrations WHERE user_id = \\$1"

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepo(db)

		mock.ExpectQuery(query).WithArgs(int64(5)).WillReturnRows(
			sqlmock.NewRows([]string{"user_id", "state", "full_name", "group_name", "updated_at"}).
				AddRow(5, "awaiting_course", "Ivan Petrov", "101", updatedAt),
		)

		reg, err := repo.GetRegistration(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, &domain.Registration{
			UserID:    5,
			State:     domain.StateAwaitingCourse,
			FullName:  "Ivan Petrov",
			Group:     "101",
			UpdatedAt: updatedAt,
		}, reg)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepo(db)

		mock.ExpectQuery(query).WithArgs(int64(6)).WillReturnError(sql.ErrNoRows)

		reg, err := repo.GetRegistration(context.Background(), 6)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, reg)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRegistrationRepo_SaveRegistration(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	reg := domain.Registration{
		UserID:    5,
		State:     domain.StateAwaitingGroup,
		FullName:  "Ivan Petrov",
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO registrations").
		WithArgs(reg.UserID, "awaiting_group", reg.FullName, "", reg.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveRegistration(context.Background(), reg)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepo_DeleteRegistration(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	mock.ExpectExec("DELETE FROM registrations WHERE user_id = \\$1").
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteRegistration(context.Background(), 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepo_DeleteStaleRegistrations(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepo(db)

	before := time.Now().Add(-24 * time.Hour)

	mock.ExpectExec("DELETE FROM registrations WHERE updated_at < \\$1").
		WithArgs(before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteStaleRegistrations(context.Background(), before)

	assert.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
