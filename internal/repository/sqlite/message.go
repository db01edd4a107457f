package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/model"
	"github.com/mete1923/sentiment-chat/internal/repository"
)

// compile-time check that *DB implements repository.MessageRepository
var _ repository.MessageRepository = (*DB)(nil)

// CreateMessage inserts a message row. CreatedAt is assigned here, at
// persistence time, so timestamps are non-decreasing in insertion order.
//
// The sentiment pair is written as-is: both pointers set (enriched) or both
// nil (stored as SQL NULLs). database/sql maps a nil *string / *float64 to
// NULL directly, so no sql.Null wrapper is needed on the write path.
func (db *DB) CreateMessage(ctx context.Context, msg *model.Message) error {
	msg.CreatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO messages (handle, text, sentiment_label, sentiment_score, room_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.Handle,
		msg.Text,
		msg.SentimentLabel,
		msg.SentimentScore,
		msg.RoomID,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting message from %q: %w", msg.Handle, err)
	}

	msg.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading message insert id: %w", err)
	}

	return nil
}

// GetMessageByID retrieves a single message.
// Returns apperror.ErrNotFound if no message exists with that ID.
func (db *DB) GetMessageByID(ctx context.Context, id int64) (*model.Message, error) {
	var (
		m     model.Message
		label sql.NullString
		score sql.NullFloat64
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, handle, text, sentiment_label, sentiment_score, room_id, created_at
		 FROM messages WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.Handle, &m.Text, &label, &score, &m.RoomID, &m.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("message", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting message %d: %w", id, err)
	}

	applySentiment(&m, label, score)
	return &m, nil
}

// ListMessagesByRoom returns one page of a room's messages, oldest first
// (chat semantics — the conversation reads top to bottom).
//
// Rows with identical timestamps are ordered by id, which increases in
// insertion order, so paging never shuffles messages written in the same
// clock tick.
func (db *DB) ListMessagesByRoom(ctx context.Context, roomID int64, opts repository.ListOptions) ([]model.Message, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, handle, text, sentiment_label, sentiment_score, room_id, created_at
		 FROM messages
		 WHERE room_id = ?
		 ORDER BY created_at, id
		 LIMIT ? OFFSET ?`,
		roomID,
		opts.Limit,
		opts.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing messages for room %d: %w", roomID, err)
	}
	defer rows.Close()

	messages := make([]model.Message, 0, opts.Limit)
	for rows.Next() {
		var (
			m     model.Message
			label sql.NullString
			score sql.NullFloat64
		)
		if err := rows.Scan(&m.ID, &m.Handle, &m.Text, &label, &score, &m.RoomID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning message row: %w", err)
		}
		applySentiment(&m, label, score)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating messages: %w", err)
	}

	return messages, nil
}

// CountMessagesByRoom returns the total number of messages in a room,
// independent of any page window.
func (db *DB) CountMessagesByRoom(ctx context.Context, roomID int64) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE room_id = ?`,
		roomID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting messages for room %d: %w", roomID, err)
	}
	return count, nil
}

// applySentiment copies the nullable sentiment columns onto the model.
// Label and score are written together, so valid rows have either both or
// neither — but we still guard each independently when reading.
func applySentiment(m *model.Message, label sql.NullString, score sql.NullFloat64) {
	if label.Valid {
		m.SentimentLabel = &label.String
	}
	if score.Valid {
		m.SentimentScore = &score.Float64
	}
}
