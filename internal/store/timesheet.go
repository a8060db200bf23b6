package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/carevault/apiserver/types"
)

// TimesheetRepository handles persistence for timesheets.
type TimesheetRepository struct {
	db *sql.DB
}

func NewTimesheetRepository(db *sql.DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

const timesheetColumns = `t.id, t.user_id, t.shift_date, t.time_in, t.time_out, t.is_sleep_in, t.notes, t.status, t.reviewed_by, t.reviewed_at, t.created_at`

func timesheetDest(ts *types.Timesheet) []any {
	return []any{
		&ts.ID,
		&ts.UserID,
		&ts.ShiftDate,
		&ts.TimeIn,
		&ts.TimeOut,
		&ts.IsSleepIn,
		&ts.Notes,
		&ts.Status,
		&ts.ReviewedBy,
		&ts.ReviewedAt,
		&ts.CreatedAt,
	}
}

func (r *TimesheetRepository) Create(ctx context.Context, ts types.Timesheet) (types.Timesheet, error) {
	ts.CreatedAt = time.Now()

	const query = `
		INSERT INTO timesheets (user_id, shift_date, time_in, time_out, is_sleep_in, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		ts.UserID,
		ts.ShiftDate,
		ts.TimeIn,
		ts.TimeOut,
		ts.IsSleepIn,
		ts.Notes,
		ts.Status,
		ts.CreatedAt,
	).Scan(&ts.ID); err != nil {
		return types.Timesheet{}, err
	}
	return ts, nil
}

// ListByUser returns one user's timesheets, newest first.
func (r *TimesheetRepository) ListByUser(ctx context.Context, userID int) ([]types.Timesheet, error) {
	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheets t
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sheets := make([]types.Timesheet, 0)
	for rows.Next() {
		var ts types.Timesheet
		if err := rows.Scan(timesheetDest(&ts)...); err != nil {
			return nil, err
		}
		sheets = append(sheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sheets, nil
}

// ListAll returns every timesheet joined with its owner's username, newest first.
func (r *TimesheetRepository) ListAll(ctx context.Context) ([]types.TimesheetView, error) {
	query := `
		SELECT ` + timesheetColumns + `, COALESCE(u.username, '')
		FROM timesheets t
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.created_at DESC, t.id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]types.TimesheetView, 0)
	for rows.Next() {
		var view types.TimesheetView
		dest := append(timesheetDest(&view.Timesheet), &view.Username)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// Review moves a pending timesheet to status. It returns ErrNotFound when
// the row does not exist and ErrConflict when it was already reviewed.
func (r *TimesheetRepository) Review(ctx context.Context, id int, status types.TimesheetStatus, reviewerID int) (types.Timesheet, error) {
	query := `
		UPDATE timesheets t
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE t.id = $4 AND t.status = 'pending'
		RETURNING ` + timesheetColumns
	var ts types.Timesheet
	err := r.db.QueryRowContext(ctx, query, status, reviewerID, time.Now(), id).Scan(timesheetDest(&ts)...)
	if err == nil {
		return ts, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return types.Timesheet{}, err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM timesheets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return types.Timesheet{}, err
	}
	if !exists {
		return types.Timesheet{}, ErrNotFound
	}
	return types.Timesheet{}, ErrConflict
}
