package services

import (
	"context"
	"errors"

	"github.com/carevault/apiserver/internal/export"
	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
)

// TimesheetRepository defines persistence operations for timesheets.
type TimesheetRepository interface {
	Create(ctx context.Context, ts types.Timesheet) (types.Timesheet, error)
	ListByUser(ctx context.Context, userID int) ([]types.Timesheet, error)
	ListAll(ctx context.Context) ([]types.TimesheetView, error)
	Review(ctx context.Context, id int, status types.TimesheetStatus, reviewerID int) (types.Timesheet, error)
}

// TimesheetService encapsulates timesheet submission and review.
type TimesheetService struct {
	repo   TimesheetRepository
	events *Events
}

func NewTimesheetService(repo TimesheetRepository, events *Events) *TimesheetService {
	return &TimesheetService{repo: repo, events: events}
}

// Submit stores a pending timesheet owned by actor.
func (s *TimesheetService) Submit(ctx context.Context, actor types.User, ts types.Timesheet) (types.Timesheet, error) {
	if ts.ShiftDate.IsZero() || ts.TimeIn.IsZero() || ts.TimeOut.IsZero() {
		return types.Timesheet{}, invalid("shiftDate, timeIn and timeOut are required")
	}
	if !ts.TimeOut.After(ts.TimeIn) {
		return types.Timesheet{}, invalid("timeOut must be after timeIn")
	}
	ts.UserID = actor.ID
	ts.Status = types.TimesheetPending
	ts.ReviewedBy = nil
	ts.ReviewedAt = nil

	created, err := s.repo.Create(ctx, ts)
	if err != nil {
		return types.Timesheet{}, err
	}
	s.events.emit(ctx, types.EventTimesheetSubmitted, actor.ID, created.ID, nil)
	return created, nil
}

// ListOwn returns actor's timesheets, newest first.
func (s *TimesheetService) ListOwn(ctx context.Context, actor types.User) ([]types.Timesheet, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}

func (s *TimesheetService) ListAll(ctx context.Context) ([]types.TimesheetView, error) {
	return s.repo.ListAll(ctx)
}

// Review approves or rejects a pending timesheet. Only the first review of
// a timesheet succeeds.
func (s *TimesheetService) Review(ctx context.Context, actor types.User, id int, status types.TimesheetStatus) (types.Timesheet, error) {
	if !status.IsReview() {
		return types.Timesheet{}, invalid("status must be approved or rejected")
	}

	reviewed, err := s.repo.Review(ctx, id, status, actor.ID)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.Timesheet{}, ErrInvalidTransition
		}
		return types.Timesheet{}, err
	}

	s.events.emit(ctx, types.EventTimesheetReviewed, actor.ID, reviewed.ID, map[string]any{
		"status": reviewed.Status,
		"userId": reviewed.UserID,
	})
	return reviewed, nil
}

// Export renders every timesheet as an xlsx workbook.
func (s *TimesheetService) Export(ctx context.Context) ([]byte, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return export.Timesheets(items)
}
