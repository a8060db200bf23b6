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

func TestShiftLogRepository_ListFiltersByResident(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewShiftLogRepository(db)

	at := time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM shift_logs\s+WHERE \(\$1 = 0 OR young_person_id = \$1\)\s+ORDER BY created_at DESC`).
		WithArgs(3, 10).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "young_person_id", "carer_id", "shift_type", "log_type", "content", "concerns", "shift_date", "created_at",
		}).AddRow(8, 3, 2, "night", "daily", "Settled well", nil, at, at))

	logs, err := repo.List(context.Background(), types.ShiftLogFilter{YoungPersonID: 3, Limit: 10})

	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, types.ShiftNight, logs[0].ShiftType)
	assert.Equal(t, 3, logs[0].YoungPersonID)
	assert.Nil(t, logs[0].Concerns)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftLogRepository_CreateThreadsResident(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewShiftLogRepository(db)

	concerns := "refused dinner"
	mock.ExpectQuery(`INSERT INTO shift_logs`).
		WithArgs(6, 2, types.ShiftMorning, types.LogGrumbles, "Upset at breakfast", concerns, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(15))

	log, err := repo.Create(context.Background(), types.ShiftLog{
		YoungPersonID: 6,
		CarerID:       2,
		ShiftType:     types.ShiftMorning,
		LogType:       types.LogGrumbles,
		Content:       "Upset at breakfast",
		Concerns:      &concerns,
		ShiftDate:     time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, 15, log.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
