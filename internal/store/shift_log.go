package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/carevault/apiserver/types"
)

// ShiftLogRepository handles persistence for shift logs.
type ShiftLogRepository struct {
	db *sql.DB
}

func NewShiftLogRepository(db *sql.DB) *ShiftLogRepository {
	return &ShiftLogRepository{db: db}
}

func (r *ShiftLogRepository) Create(ctx context.Context, log types.ShiftLog) (types.ShiftLog, error) {
	log.CreatedAt = time.Now()

	const query = `
		INSERT INTO shift_logs (young_person_id, carer_id, shift_type, log_type, content, concerns, shift_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		log.YoungPersonID,
		log.CarerID,
		log.ShiftType,
		log.LogType,
		log.Content,
		log.Concerns,
		log.ShiftDate,
		log.CreatedAt,
	).Scan(&log.ID); err != nil {
		return types.ShiftLog{}, err
	}
	return log, nil
}

// List returns the most recent entries first.
func (r *ShiftLogRepository) List(ctx context.Context, filter types.ShiftLogFilter) ([]types.ShiftLog, error) {
	const query = `
		SELECT id, young_person_id, carer_id, shift_type, log_type, content, concerns, shift_date, created_at
		FROM shift_logs
		WHERE ($1 = 0 OR young_person_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, filter.YoungPersonID, filter.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]types.ShiftLog, 0, filter.Limit)
	for rows.Next() {
		var log types.ShiftLog
		if err := rows.Scan(
			&log.ID,
			&log.YoungPersonID,
			&log.CarerID,
			&log.ShiftType,
			&log.LogType,
			&log.Content,
			&log.Concerns,
			&log.ShiftDate,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
