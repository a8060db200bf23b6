package services

import (
	"context"
	"strings"

	"github.com/carevault/apiserver/internal/db"
	"github.com/carevault/apiserver/types"
)

type TaskRepository interface {
	Create(ctx context.Context, task types.Task) (types.Task, error)
	List(ctx context.Context) ([]types.Task, error)
}

type TaskService struct {
	repo   TaskRepository
	events *Events
}

func NewTaskService(repo TaskRepository, events *Events) *TaskService {
	return &TaskService{repo: repo, events: events}
}

func (s *TaskService) Create(ctx context.Context, actor types.User, task types.Task) (types.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return types.Task{}, invalid("title is required")
	}
	switch task.Frequency {
	case types.FrequencyDaily, types.FrequencyWeekly, types.FrequencyMonthly:
	default:
		return types.Task{}, invalid("frequency must be daily, weekly or monthly")
	}
	createdBy := actor.ID
	task.CreatedBy = &createdBy
	task.Completed = false

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return types.Task{}, ErrReferenceNotFound
		}
		return types.Task{}, err
	}
	s.events.emit(ctx, types.EventTaskCreated, actor.ID, created.ID, nil)
	return created, nil
}

func (s *TaskService) List(ctx context.Context) ([]types.Task, error) {
	return s.repo.List(ctx)
}
