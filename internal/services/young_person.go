package services

import (
	"context"
	"strings"

	"github.com/carevault/apiserver/types"
)

// YoungPersonRepository defines persistence operations for residents.
type YoungPersonRepository interface {
	List(ctx context.Context) ([]types.YoungPerson, error)
	Get(ctx context.Context, id int) (types.YoungPerson, error)
	Create(ctx context.Context, person types.YoungPerson) (types.YoungPerson, error)
	Update(ctx context.Context, person types.YoungPerson) (types.YoungPerson, error)
}

// YoungPersonService encapsulates resident case-file use-cases.
type YoungPersonService struct {
	repo   YoungPersonRepository
	events *Events
}

func NewYoungPersonService(repo YoungPersonRepository, events *Events) *YoungPersonService {
	return &YoungPersonService{repo: repo, events: events}
}

func (s *YoungPersonService) List(ctx context.Context) ([]types.YoungPerson, error) {
	return s.repo.List(ctx)
}

func (s *YoungPersonService) Get(ctx context.Context, id int) (types.YoungPerson, error) {
	return s.repo.Get(ctx, id)
}

// Create opens a new case file on behalf of actor.
func (s *YoungPersonService) Create(ctx context.Context, actor types.User, person types.YoungPerson) (types.YoungPerson, error) {
	person.Name = strings.TrimSpace(person.Name)
	if person.Name == "" {
		return types.YoungPerson{}, invalid("name is required")
	}
	if person.DateOfBirth.IsZero() {
		return types.YoungPerson{}, invalid("dateOfBirth is required")
	}
	createdBy := actor.ID
	person.CreatedBy = &createdBy

	created, err := s.repo.Create(ctx, person)
	if err != nil {
		return types.YoungPerson{}, err
	}
	s.events.emit(ctx, types.EventYoungPersonCreated, actor.ID, created.ID, nil)
	return created, nil
}

// Update applies patch to the stored profile. Fields absent from the patch
// keep their values; concurrent patches are last-write-wins.
func (s *YoungPersonService) Update(ctx context.Context, actor types.User, id int, patch types.YoungPersonPatch) (types.YoungPerson, error) {
	if patch.IsEmpty() {
		return types.YoungPerson{}, invalid("no fields to update")
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return types.YoungPerson{}, invalid("name cannot be empty")
		}
		patch.Name = &name
	}

	person, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.YoungPerson{}, err
	}
	patch.Apply(&person)

	updated, err := s.repo.Update(ctx, person)
	if err != nil {
		return types.YoungPerson{}, err
	}
	s.events.emit(ctx, types.EventYoungPersonUpdated, actor.ID, updated.ID, nil)
	return updated, nil
}
