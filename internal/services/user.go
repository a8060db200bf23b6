package services

import (
	"context"
	"errors"
	"strings"

	"github.com/carevault/apiserver/internal/db"
	"github.com/carevault/apiserver/internal/store"
	"github.com/carevault/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// Registration holds the fields accepted when creating an account.
type Registration struct {
	Username  string
	Password  string
	Role      string
	FirstName string
	LastName  string
	Email     string
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo   UserRepository
	events *Events
}

func NewUserService(repo UserRepository, events *Events) *UserService {
	return &UserService{repo: repo, events: events}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register hashes the password and stores a new account. An empty role
// defaults to carer.
func (s *UserService) Register(ctx context.Context, reg Registration) (types.User, error) {
	username := strings.TrimSpace(reg.Username)
	if username == "" {
		return types.User{}, invalid("username is required")
	}
	if len(reg.Password) < minPasswordLength {
		return types.User{}, invalid("password must be at least %d characters", minPasswordLength)
	}

	role := types.RoleCarer
	if !blank(reg.Role) {
		parsed, ok := types.ParseRole(reg.Role)
		if !ok {
			return types.User{}, invalid("role must be carer or manager")
		}
		role = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     username,
		Role:         role,
		FirstName:    strings.TrimSpace(reg.FirstName),
		LastName:     strings.TrimSpace(reg.LastName),
		Email:        strings.TrimSpace(reg.Email),
		PasswordHash: string(hashed),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return types.User{}, ErrDuplicateUsername
		}
		return types.User{}, err
	}

	s.events.emit(ctx, types.EventUserRegistered, user.ID, user.ID, user.Summary())
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (types.User, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// List returns the public projection of every user.
func (s *UserService) List(ctx context.Context) ([]types.UserSummary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]types.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}
