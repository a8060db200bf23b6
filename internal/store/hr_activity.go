package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/carevault/apiserver/types"
)

// HRActivityRepository handles persistence for HR activities.
type HRActivityRepository struct {
	db *sql.DB
}

func NewHRActivityRepository(db *sql.DB) *HRActivityRepository {
	return &HRActivityRepository{db: db}
}

const hrActivityColumns = `a.id, a.type, a.outcome, a.description, a.employee_id, a.scheduled_date, a.status, a.document_path, a.created_by, a.created_at`

func hrActivityDest(a *types.HRActivity) []any {
	return []any{
		&a.ID,
		&a.Type,
		&a.Outcome,
		&a.Description,
		&a.EmployeeID,
		&a.ScheduledDate,
		&a.Status,
		&a.DocumentPath,
		&a.CreatedBy,
		&a.CreatedAt,
	}
}

func (r *HRActivityRepository) Create(ctx context.Context, activity types.HRActivity) (types.HRActivity, error) {
	activity.CreatedAt = time.Now()

	const query = `
		INSERT INTO hr_activities (type, outcome, description, employee_id, scheduled_date, status, document_path, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		activity.Type,
		activity.Outcome,
		activity.Description,
		activity.EmployeeID,
		activity.ScheduledDate,
		activity.Status,
		activity.DocumentPath,
		activity.CreatedBy,
		activity.CreatedAt,
	).Scan(&activity.ID); err != nil {
		return types.HRActivity{}, err
	}
	return activity, nil
}

func (r *HRActivityRepository) Get(ctx context.Context, id int) (types.HRActivity, error) {
	query := `SELECT ` + hrActivityColumns + ` FROM hr_activities a WHERE a.id = $1`
	var activity types.HRActivity
	if err := r.db.QueryRowContext(ctx, query, id).Scan(hrActivityDest(&activity)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.HRActivity{}, ErrNotFound
		}
		return types.HRActivity{}, err
	}
	return activity, nil
}

// List returns activities joined with their employee, oldest first.
func (r *HRActivityRepository) List(ctx context.Context) ([]types.HRActivityView, error) {
	query := `
		SELECT ` + hrActivityColumns + `, u.id, u.username, u.role
		FROM hr_activities a
		LEFT JOIN users u ON u.id = a.employee_id
		ORDER BY a.created_at, a.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]types.HRActivityView, 0)
	for rows.Next() {
		var view types.HRActivityView
		var employeeID sql.NullInt64
		var username, role sql.NullString
		dest := append(hrActivityDest(&view.HRActivity), &employeeID, &username, &role)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if employeeID.Valid {
			view.Employee = &types.UserSummary{
				ID:       int(employeeID.Int64),
				Username: username.String,
				Role:     types.Role(role.String),
			}
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

// UpdateStatus moves a pending activity to status. It returns ErrNotFound
// when the row does not exist and ErrConflict when it is no longer pending.
func (r *HRActivityRepository) UpdateStatus(ctx context.Context, id int, status types.HRActivityStatus) (types.HRActivity, error) {
	query := `
		UPDATE hr_activities a
		SET status = $1
		WHERE a.id = $2 AND a.status = 'pending'
		RETURNING ` + hrActivityColumns
	var activity types.HRActivity
	err := r.db.QueryRowContext(ctx, query, status, id).Scan(hrActivityDest(&activity)...)
	if err == nil {
		return activity, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return types.HRActivity{}, err
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM hr_activities WHERE id = $1)`, id).Scan(&exists); err != nil {
		return types.HRActivity{}, err
	}
	if !exists {
		return types.HRActivity{}, ErrNotFound
	}
	return types.HRActivity{}, ErrConflict
}
