package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/model"
)

func createTestRoom(t *testing.T, db *DB, name string) *model.Room {
	t.Helper()
	room := &model.Room{
		Name:         name,
		PasswordHash: "dGVzdC1oYXNo",
		CreatedBy:    "tester",
	}
	if err := db.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("failed to create test room: %v", err)
	}
	return room
}

func TestRoomCreate(t *testing.T) {
	db := newTestDB(t)

	room := &model.Room{Name: "general", PasswordHash: "aGFzaA==", CreatedBy: "alice"}
	if err := db.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("CreateRoom() error = %v", err)
	}

	if room.ID <= 0 {
		t.Errorf("CreateRoom() did not set a positive ID, got %d", room.ID)
	}
	if room.CreatedAt.IsZero() {
		t.Error("CreateRoom() did not set CreatedAt")
	}
}

func TestRoomCreate_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	createTestRoom(t, db, "general")

	err := db.CreateRoom(context.Background(), &model.Room{
		Name: "general", PasswordHash: "b3RoZXI=", CreatedBy: "bob",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRoomGetByName(t *testing.T) {
	db := newTestDB(t)
	created := createTestRoom(t, db, "random")

	found, err := db.GetRoomByName(context.Background(), "random")
	if err != nil {
		t.Fatalf("GetRoomByName() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	// The join flow needs the stored hash to verify against.
	if found.PasswordHash != created.PasswordHash {
		t.Errorf("PasswordHash = %q, want %q", found.PasswordHash, created.PasswordHash)
	}
}

func TestRoomGetByName_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetRoomByName(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRoomExists(t *testing.T) {
	db := newTestDB(t)
	room := createTestRoom(t, db, "general")

	exists, err := db.RoomExists(context.Background(), room.ID)
	if err != nil {
		t.Fatalf("RoomExists() error = %v", err)
	}
	if !exists {
		t.Error("RoomExists() = false for an existing room")
	}

	exists, err = db.RoomExists(context.Background(), room.ID+100)
	if err != nil {
		t.Fatalf("RoomExists() error = %v", err)
	}
	if exists {
		t.Error("RoomExists() = true for a missing room")
	}
}

func TestRoomList_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	older := createTestRoom(t, db, "older")
	newer := createTestRoom(t, db, "newer")

	rooms, err := db.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms() error = %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("ListRooms() returned %d rooms, want 2", len(rooms))
	}
	if rooms[0].ID != newer.ID || rooms[1].ID != older.ID {
		t.Errorf("ListRooms() order = [%d %d], want [%d %d]",
			rooms[0].ID, rooms[1].ID, newer.ID, older.ID)
	}
}
