package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/model"
)

// TESTING WITH IN-MEMORY SQLITE:
// ":memory:" creates a fresh database that exists only during the test —
// fast, isolated, destroyed when the connection closes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, handle string) *model.User {
	t.Helper()
	user := &model.User{Handle: handle}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestUserCreate(t *testing.T) {
	db := newTestDB(t)

	user := &model.User{Handle: "alice"}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID <= 0 {
		t.Errorf("Create() did not set a positive ID, got %d", user.ID)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}
}

func TestUserCreate_DuplicateHandle(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "alice")

	err := db.Create(context.Background(), &model.User{Handle: "alice"})
	if err == nil {
		t.Fatal("Create() should reject a duplicate handle")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestUserCreate_HandleIsCaseSensitive(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "Alice")

	// "alice" and "Alice" are distinct users.
	if err := db.Create(context.Background(), &model.User{Handle: "alice"}); err != nil {
		t.Fatalf("Create() rejected a handle differing only in case: %v", err)
	}
}

func TestUserGetByHandle(t *testing.T) {
	db := newTestDB(t)
	created := createTestUser(t, db, "bob")

	found, err := db.GetByHandle(context.Background(), "bob")
	if err != nil {
		t.Fatalf("GetByHandle() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Handle != "bob" {
		t.Errorf("Handle = %q, want %q", found.Handle, "bob")
	}
}

func TestUserGetByHandle_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByHandle(context.Background(), "nobody")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUserList_OldestFirst(t *testing.T) {
	db := newTestDB(t)
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")

	users, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("List() returned %d users, want 2", len(users))
	}
	if users[0].ID != first.ID || users[1].ID != second.ID {
		t.Errorf("List() order = [%d %d], want [%d %d]",
			users[0].ID, users[1].ID, first.ID, second.ID)
	}
}
