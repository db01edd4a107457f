// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-layer shape:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Services receive repository INTERFACES, not concrete types, so tests can
// inject in-memory mocks and the storage engine stays swappable from the
// composition root.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/model"
	"github.com/mete1923/sentiment-chat/internal/repository"
	"github.com/mete1923/sentiment-chat/internal/sentiment"
)

// Pagination constants. Out-of-range values are CLAMPED, not rejected —
// a compatibility quirk inherited from the original API: every other invalid
// input gets a 400, but page/pageSize are silently corrected.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// CreateMessageResult is the outcome of a successful message write.
//
// Message creation has three outcomes, and callers must handle all of them:
//   - created:  (result, nil) with Enriched=true  → HTTP 201
//   - degraded: (result, nil) with Enriched=false → HTTP 207 + Warning
//   - rejected: (nil, err)                        → HTTP 4xx/5xx
//
// Enrichment failure is deliberately NOT an error: the write succeeded, the
// advisory step didn't.
type CreateMessageResult struct {
	Message  *model.Message
	Enriched bool
	Warning  string
}

// MessagePage is one page of a room's messages plus the paging envelope.
type MessagePage struct {
	Messages   []model.Message
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
}

// MessageService coordinates message ingestion and retrieval: validation,
// user auto-provisioning, room checks, sentiment enrichment and persistence.
type MessageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	rooms    repository.RoomRepository
	analyzer sentiment.Analyzer
	logger   *slog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messages repository.MessageRepository,
	users repository.UserRepository,
	rooms repository.RoomRepository,
	analyzer sentiment.Analyzer,
	logger *slog.Logger,
) *MessageService {
	return &MessageService{
		messages: messages,
		users:    users,
		rooms:    rooms,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Create runs the full ingestion pipeline for one posted message.
//
// Steps: validate input → ensure the user exists (auto-provisioning) →
// verify the room exists → analyze sentiment (best-effort) → persist.
// The sentiment call can never abort the pipeline; its only effect is
// whether the stored message carries a label/score pair and whether the
// result is flagged Enriched.
func (s *MessageService) Create(ctx context.Context, handle, text string, roomID int64) (*CreateMessageResult, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, apperror.ValidationFailed("handle", "handle is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperror.ValidationFailed("text", "message text is required")
	}
	if roomID <= 0 {
		return nil, apperror.ValidationFailed("roomId", "a valid room must be selected")
	}

	// Auto-provisioning: posting under an unseen handle creates the user.
	// Explicit registration is optional, not required.
	user, err := getOrCreateUser(ctx, s.users, s.logger, handle)
	if err != nil {
		return nil, fmt.Errorf("ensuring user %q: %w", handle, err)
	}

	// The room id came from client input, so a missing room is a client
	// error (400), not a NotFound on some addressed resource.
	exists, err := s.rooms.RoomExists(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("checking room %d: %w", roomID, err)
	}
	if !exists {
		return nil, apperror.ValidationFailed("roomId", "room not found")
	}

	result := s.analyzeSentiment(ctx, text)

	msg := &model.Message{
		Handle: user.Handle,
		Text:   text,
		RoomID: roomID,
	}
	if result != nil {
		msg.SentimentLabel = &result.Label
		msg.SentimentScore = &result.Score
	}

	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		s.logger.Error("failed to persist message",
			slog.String("handle", handle),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating message: %w", err)
	}

	s.logger.Info("message created",
		slog.Int64("id", msg.ID),
		slog.String("handle", msg.Handle),
		slog.Bool("enriched", result != nil),
	)

	out := &CreateMessageResult{Message: msg, Enriched: result != nil}
	if result == nil {
		out.Warning = "message saved but sentiment analysis was unavailable"
	}
	return out, nil
}

// analyzeSentiment invokes the adapter, absorbing every possible failure.
//
// The adapter already promises to never fail, but this call site adds a
// second layer: a panicking backend implementation is recovered here and
// treated as "no result". Ingestion proceeds either way.
func (s *MessageService) analyzeSentiment(ctx context.Context, text string) (result *sentiment.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("sentiment analyzer panicked",
				slog.Any("panic", r),
			)
			result = nil
		}
	}()
	return s.analyzer.Analyze(ctx, text)
}

// GetByID retrieves a single message.
func (s *MessageService) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "message id must be positive")
	}
	return s.messages.GetMessageByID(ctx, id)
}

// List returns one page of a room's messages, oldest first, together with
// the room-scoped total count and page count.
//
// roomID must be positive (rejected otherwise); page and pageSize are
// clamped into range rather than rejected — see the constants above.
func (s *MessageService) List(ctx context.Context, roomID int64, page, pageSize int) (*MessagePage, error) {
	if roomID <= 0 {
		return nil, apperror.ValidationFailed("roomId", "a valid room id is required")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	total, err := s.messages.CountMessagesByRoom(ctx, roomID)
	if err != nil {
		s.logger.Error("failed to count messages",
			slog.Int64("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("counting messages: %w", err)
	}

	messages, err := s.messages.ListMessagesByRoom(ctx, roomID, repository.ListOptions{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		s.logger.Error("failed to list messages",
			slog.Int64("room_id", roomID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	return &MessagePage{
		Messages:   messages,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
