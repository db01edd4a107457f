package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/auth"
	"github.com/mete1923/sentiment-chat/internal/model"
	"github.com/mete1923/sentiment-chat/internal/repository"
)

// Validation constants for room access control.
const (
	MinRoomNameLength = 3
	MaxRoomNameLength = 50
	MinPasswordLength = 4
)

// RoomService handles room creation and password-gated joining.
//
// No session or token is ever issued: authorization is re-checked on every
// join attempt against the stored password digest. The digest itself lives
// behind auth.PasswordService — this service never touches crypto.
type RoomService struct {
	rooms     repository.RoomRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms repository.RoomRepository, passwords *auth.PasswordService, logger *slog.Logger) *RoomService {
	return &RoomService{
		rooms:     rooms,
		passwords: passwords,
		logger:    logger,
	}
}

// Create validates and persists a new room. The returned Room carries the
// password hash internally but the model never serializes it.
//
// Failure modes: blank or out-of-range name/password → ErrValidation;
// duplicate room name → ErrConflict (from the repository's UNIQUE mapping).
func (s *RoomService) Create(ctx context.Context, name, password, createdBy string) (*model.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.ValidationFailed("name", "room name is required")
	}
	if n := utf8.RuneCountInString(name); n < MinRoomNameLength || n > MaxRoomNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("room name must be %d-%d characters", MinRoomNameLength, MaxRoomNameLength))
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	room := &model.Room{
		Name:         name,
		PasswordHash: s.passwords.Hash(password),
		CreatedBy:    createdBy,
	}

	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		// Conflict is a normal client outcome, not a server failure.
		return nil, err
	}

	s.logger.Info("room created",
		slog.Int64("id", room.ID),
		slog.String("name", room.Name),
		slog.String("created_by", room.CreatedBy),
	)

	return room, nil
}

// Join checks the supplied password against a room's stored digest.
//
// Failure modes: blank name/password → ErrValidation; unknown room →
// ErrNotFound; digest mismatch → ErrUnauthorized. On success the room is
// returned unchanged — joining has no server-side state.
func (s *RoomService) Join(ctx context.Context, name, password, handle string) (*model.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.ValidationFailed("name", "room name is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	room, err := s.rooms.GetRoomByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.passwords.Verify(room.PasswordHash, password); err != nil {
		s.logger.Info("room join rejected",
			slog.String("room", room.Name),
			slog.String("handle", handle),
		)
		return nil, apperror.Unauthorized("wrong password")
	}

	s.logger.Info("room joined",
		slog.String("room", room.Name),
		slog.String("handle", handle),
	)

	return room, nil
}

// GetByID retrieves a room by its ID.
func (s *RoomService) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "room id must be positive")
	}
	return s.rooms.GetRoomByID(ctx, id)
}

// List returns all rooms, newest first.
func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		s.logger.Error("failed to list rooms", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	return rooms, nil
}
