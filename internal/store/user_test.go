package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/carevault/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "username", "role", "first_name", "last_name", "email", "password_hash", "created_at"}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .* FROM users WHERE username = \$1`).
		WithArgs("jo").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(7, "jo", "manager", "Jo", "Bloggs", "jo@example.com", "hash", created))

	user, err := repo.GetByUsername(context.Background(), "jo")

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, types.RoleManager, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.True(t, user.CreatedAt.Equal(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("sam", types.RoleCarer, "Sam", "", "", "hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	user, err := repo.Create(context.Background(), types.User{
		Username:     "sam",
		Role:         types.RoleCarer,
		FirstName:    "Sam",
		PasswordHash: "hash",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
