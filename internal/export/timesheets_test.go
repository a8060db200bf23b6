package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/carevault/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTimesheets(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	notes := "covered late shift"
	items := []types.TimesheetView{
		{
			Timesheet: types.Timesheet{
				ID:        7,
				UserID:    3,
				ShiftDate: day,
				TimeIn:    day.Add(8 * time.Hour),
				TimeOut:   day.Add(16 * time.Hour),
				IsSleepIn: true,
				Notes:     &notes,
				Status:    types.TimesheetPending,
			},
			Username: "alice",
		},
	}

	data, err := Timesheets(items)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Timesheets"}, f.GetSheetList())

	rows, err := f.GetRows(timesheetSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TimesheetHeader, rows[0])
	assert.Equal(t, []string{"7", "alice", "2024-03-01", "08:00", "16:00", "8", "Yes", "pending", "covered late shift"}, rows[1])
}

func TestTimesheets_Empty(t *testing.T) {
	data, err := Timesheets(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(timesheetSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
