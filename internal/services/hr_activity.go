package services

import (
	"context"
	"errors"
	"strings"

	"github.com/carevault/apiserver/internal/db"
	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
	"go.uber.org/zap"
)

const hrDocumentKeyPrefix = "hr-activities"

// HRActivityRepository defines persistence operations for HR activities.
type HRActivityRepository interface {
	Create(ctx context.Context, activity types.HRActivity) (types.HRActivity, error)
	Get(ctx context.Context, id int) (types.HRActivity, error)
	List(ctx context.Context) ([]types.HRActivityView, error)
	UpdateStatus(ctx context.Context, id int, status types.HRActivityStatus) (types.HRActivity, error)
}

// UserLookup resolves users by id.
type UserLookup interface {
	GetByID(ctx context.Context, id int) (types.User, error)
}

// HRActivityService schedules HR events against employees.
type HRActivityService struct {
	repo   HRActivityRepository
	users  UserLookup
	files  ObjectStore
	events *Events
	logger *zap.Logger
}

func NewHRActivityService(repo HRActivityRepository, users UserLookup, files ObjectStore, events *Events, logger *zap.Logger) *HRActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HRActivityService{repo: repo, users: users, files: files, events: events, logger: logger}
}

// Create schedules activity. The employee must exist; document is optional.
func (s *HRActivityService) Create(ctx context.Context, actor types.User, activity types.HRActivity, document *Upload) (types.HRActivity, error) {
	switch activity.Type {
	case types.HRProbationReview, types.HRDisciplinary, types.HRSupervision, types.HRMeeting:
	default:
		return types.HRActivity{}, invalid("unknown activity type %q", activity.Type)
	}
	activity.Outcome = strings.TrimSpace(activity.Outcome)
	if activity.Outcome == "" {
		return types.HRActivity{}, invalid("outcome is required")
	}
	if activity.ScheduledDate.IsZero() {
		return types.HRActivity{}, invalid("scheduledDate is required")
	}

	if _, err := s.users.GetByID(ctx, activity.EmployeeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.HRActivity{}, ErrInvalidEmployee
		}
		return types.HRActivity{}, err
	}

	var key string
	if document != nil {
		var err error
		key, err = putUpload(ctx, s.files, hrDocumentKeyPrefix, document)
		if err != nil {
			return types.HRActivity{}, err
		}
		activity.DocumentPath = &key
	}

	activity.Status = types.HRStatusPending
	activity.CreatedBy = actor.ID

	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		if key != "" {
			discard(ctx, s.files, s.logger, key)
		}
		if db.IsForeignKeyViolation(err) {
			return types.HRActivity{}, ErrInvalidEmployee
		}
		return types.HRActivity{}, err
	}

	s.events.emit(ctx, types.EventHRActivityCreated, actor.ID, created.ID, map[string]any{
		"type":       created.Type,
		"employeeId": created.EmployeeID,
	})
	return created, nil
}

// List returns every activity with its employee, oldest first.
func (s *HRActivityService) List(ctx context.Context) ([]types.HRActivityView, error) {
	return s.repo.List(ctx)
}

// UpdateStatus completes or cancels a pending activity.
func (s *HRActivityService) UpdateStatus(ctx context.Context, actor types.User, id int, status types.HRActivityStatus) (types.HRActivity, error) {
	if status != types.HRStatusCompleted && status != types.HRStatusCancelled {
		return types.HRActivity{}, invalid("status must be completed or cancelled")
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.HRActivity{}, ErrInvalidTransition
		}
		return types.HRActivity{}, err
	}

	s.events.emit(ctx, types.EventHRActivityUpdated, actor.ID, updated.ID, map[string]any{"status": updated.Status})
	return updated, nil
}

// OpenDocument returns the file attached to an activity.
func (s *HRActivityService) OpenDocument(ctx context.Context, id int) (File, error) {
	activity, err := s.repo.Get(ctx, id)
	if err != nil {
		return File{}, err
	}
	if activity.DocumentPath == nil || *activity.DocumentPath == "" {
		return File{}, store.ErrNotFound
	}
	body, err := s.files.Get(ctx, *activity.DocumentPath)
	if err != nil {
		return File{}, err
	}
	return File{
		Name:        downloadName(activity.Outcome, *activity.DocumentPath),
		ContentType: contentTypeByKey(*activity.DocumentPath),
		Body:        body,
	}, nil
}
