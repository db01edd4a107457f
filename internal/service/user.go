package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/model"
	"github.com/mete1923/sentiment-chat/internal/repository"
)

// Validation constants for explicit user registration. Implicit creation on
// first message only requires a non-blank handle — see MessageService.
const (
	MinHandleLength = 3
	MaxHandleLength = 20
)

// UserService handles explicit user registration and lookups.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// Register validates and creates a user with the given handle.
//
// Failure modes: blank or out-of-range handle → ErrValidation; handle taken
// → ErrConflict.
func (s *UserService) Register(ctx context.Context, handle string) (*model.User, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, apperror.ValidationFailed("handle", "handle is required")
	}
	if n := utf8.RuneCountInString(handle); n < MinHandleLength || n > MaxHandleLength {
		return nil, apperror.ValidationFailed("handle",
			fmt.Sprintf("handle must be %d-%d characters", MinHandleLength, MaxHandleLength))
	}

	user := &model.User{Handle: handle}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.Int64("id", user.ID),
		slog.String("handle", user.Handle),
	)

	return user, nil
}

// GetByID retrieves a user by their numeric ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "user id must be positive")
	}
	return s.users.GetByID(ctx, id)
}

// List returns all users, oldest first.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// getOrCreateUser is the idempotent "ensure a user exists for this handle"
// operation used by message ingestion.
//
// RACE HANDLING:
// Two concurrent first-messages from the same unseen handle can both miss on
// the lookup and both try to insert. The UNIQUE constraint turns the loser's
// insert into ErrConflict, which here means "already created by a racing
// request" — so we retry the lookup instead of failing the message write.
func getOrCreateUser(ctx context.Context, users repository.UserRepository, logger *slog.Logger, handle string) (*model.User, error) {
	user, err := users.GetByHandle(ctx, handle)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	user = &model.User{Handle: handle}
	err = users.Create(ctx, user)
	if err == nil {
		logger.Info("user auto-created", slog.String("handle", handle))
		return user, nil
	}
	if errors.Is(err, apperror.ErrConflict) {
		return users.GetByHandle(ctx, handle)
	}
	return nil, err
}
