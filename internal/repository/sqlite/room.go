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

// compile-time check that *DB implements repository.RoomRepository
var _ repository.RoomRepository = (*DB)(nil)

// CreateRoom inserts a new room. Room names are globally unique; a duplicate
// name returns apperror.ErrConflict.
func (db *DB) CreateRoom(ctx context.Context, room *model.Room) error {
	room.CreatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO rooms (name, password_hash, created_by, created_at)
		 VALUES (?, ?, ?, ?)`,
		room.Name,
		room.PasswordHash,
		room.CreatedBy,
		room.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("room name", room.Name)
		}
		return fmt.Errorf("sqlite: inserting room %q: %w", room.Name, err)
	}

	room.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading room insert id: %w", err)
	}

	return nil
}

// GetRoomByID retrieves a room by its numeric ID, including the password
// hash. Callers are responsible for never serializing the hash outward.
func (db *DB) GetRoomByID(ctx context.Context, id int64) (*model.Room, error) {
	var r model.Room

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_by, created_at
		 FROM rooms WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Name, &r.PasswordHash, &r.CreatedBy, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("room", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting room %d: %w", id, err)
	}

	return &r, nil
}

// GetRoomByName retrieves a room by its unique name. Used by the join flow,
// which verifies the password digest against the stored hash.
func (db *DB) GetRoomByName(ctx context.Context, name string) (*model.Room, error) {
	var r model.Room

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_by, created_at
		 FROM rooms WHERE name = ?`,
		name,
	).Scan(&r.ID, &r.Name, &r.PasswordHash, &r.CreatedBy, &r.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("room", name)
		}
		return nil, fmt.Errorf("sqlite: getting room by name %q: %w", name, err)
	}

	return &r, nil
}

// RoomExists reports whether a room with the given ID exists. The message
// ingestion path only needs existence, not the full row, so this avoids
// pulling the password hash into that flow at all.
func (db *DB) RoomExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := db.conn.QueryRowContext(ctx,
		`SELECT 1 FROM rooms WHERE id = ?`,
		id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("sqlite: checking room %d: %w", id, err)
	}
	return true, nil
}

// ListRooms returns all rooms, newest first.
func (db *DB) ListRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, password_hash, created_by, created_at
		 FROM rooms ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]model.Room, 0)
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.PasswordHash, &r.CreatedBy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning room row: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating rooms: %w", err)
	}

	return rooms, nil
}
