package services

import (
	"context"
	"strings"

	"github.com/carevault/apiserver/types"
)

type ContactRepository interface {
	Create(ctx context.Context, contact types.HelpSupportContact) (types.HelpSupportContact, error)
	List(ctx context.Context) ([]types.HelpSupportContact, error)
}

// ContactService maintains the help and support directory.
type ContactService struct {
	repo   ContactRepository
	events *Events
}

func NewContactService(repo ContactRepository, events *Events) *ContactService {
	return &ContactService{repo: repo, events: events}
}

func (s *ContactService) Create(ctx context.Context, actor types.User, contact types.HelpSupportContact) (types.HelpSupportContact, error) {
	contact.Name = strings.TrimSpace(contact.Name)
	if contact.Name == "" {
		return types.HelpSupportContact{}, invalid("name is required")
	}
	createdBy := actor.ID
	contact.CreatedBy = &createdBy

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		return types.HelpSupportContact{}, err
	}
	s.events.emit(ctx, types.EventContactCreated, actor.ID, created.ID, nil)
	return created, nil
}

func (s *ContactService) List(ctx context.Context) ([]types.HelpSupportContact, error) {
	return s.repo.List(ctx)
}
