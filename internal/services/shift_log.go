package services

import (
	"context"
	"strings"

	"github.com/carevault/apiserver/internal/db"
	"github.com/carevault/apiserver/types"
)

const (
	defaultShiftLogLimit = 10
	maxShiftLogLimit     = 100
)

// ShiftLogRepository defines persistence operations for shift logs.
type ShiftLogRepository interface {
	Create(ctx context.Context, log types.ShiftLog) (types.ShiftLog, error)
	List(ctx context.Context, filter types.ShiftLogFilter) ([]types.ShiftLog, error)
}

// ShiftLogService encapsulates shift log use-cases.
type ShiftLogService struct {
	repo   ShiftLogRepository
	events *Events
}

func NewShiftLogService(repo ShiftLogRepository, events *Events) *ShiftLogService {
	return &ShiftLogService{repo: repo, events: events}
}

// Create records an entry written by actor.
func (s *ShiftLogService) Create(ctx context.Context, actor types.User, entry types.ShiftLog) (types.ShiftLog, error) {
	if entry.YoungPersonID < 1 {
		return types.ShiftLog{}, invalid("youngPersonId is required")
	}
	entry.Content = strings.TrimSpace(entry.Content)
	if entry.Content == "" {
		return types.ShiftLog{}, invalid("content is required")
	}
	entry.CarerID = actor.ID

	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return types.ShiftLog{}, ErrReferenceNotFound
		}
		return types.ShiftLog{}, err
	}
	s.events.emit(ctx, types.EventShiftLogCreated, actor.ID, created.ID, map[string]int{"youngPersonId": created.YoungPersonID})
	return created, nil
}

// List returns the most recent entries. A non-positive limit means the
// default; larger limits are capped.
func (s *ShiftLogService) List(ctx context.Context, filter types.ShiftLogFilter) ([]types.ShiftLog, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultShiftLogLimit
	}
	if filter.Limit > maxShiftLogLimit {
		filter.Limit = maxShiftLogLimit
	}
	return s.repo.List(ctx, filter)
}
