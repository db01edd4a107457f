package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/mete1923/sentiment-chat/internal/auth"
	"github.com/mete1923/sentiment-chat/internal/repository/sqlite"
	"github.com/mete1923/sentiment-chat/internal/sentiment"
	"github.com/mete1923/sentiment-chat/internal/service"
)

// HANDLER TEST SETUP:
// These tests exercise the full request path — router, handler, service,
// repository — against an in-memory SQLite database, with only the sentiment
// backend stubbed out. That keeps them honest about routing, status codes and
// JSON shapes while staying fast and network-free.

// stubAnalyzer returns whatever result it is set to; nil means the backend
// is "down".
type stubAnalyzer struct {
	result *sentiment.Result
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ string) *sentiment.Result {
	return s.result
}

type testEnv struct {
	router   chi.Router
	analyzer *stubAnalyzer
}

// newTestEnv wires the API routes exactly as the server does, minus the
// middleware stack.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer := &stubAnalyzer{result: &sentiment.Result{Label: "pozitif", Score: 0.95}}

	passwords := auth.NewPasswordService()
	roomHandler := NewRoomHandler(service.NewRoomService(db, passwords, logger), logger)
	userHandler := NewUserHandler(service.NewUserService(db, logger), logger)
	messageHandler := NewMessageHandler(service.NewMessageService(db, db, db, analyzer, logger), logger)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Route("/messages", func(r chi.Router) {
			r.Post("/", messageHandler.HandleCreate)
			r.Get("/", messageHandler.HandleList)
			r.Get("/health", messageHandler.HandleHealth)
			r.Get("/{id}", messageHandler.HandleGetByID)
		})
		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", roomHandler.HandleCreate)
			r.Post("/join", roomHandler.HandleJoin)
			r.Get("/", roomHandler.HandleList)
			r.Get("/{id}", roomHandler.HandleGetByID)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.HandleRegister)
			r.Get("/", userHandler.HandleList)
			r.Get("/{id}", userHandler.HandleGetByID)
		})
	})

	return &testEnv{router: router, analyzer: analyzer}
}

// do performs a request against the test router. A nil body sends no payload;
// a string body is sent raw (for malformed-JSON cases); anything else is
// JSON-encoded.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		encoded, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
		"response body: %s", rec.Body.String())
}

// createRoom is shared setup for tests that need an existing room.
func (e *testEnv) createRoom(t *testing.T, name, password string) int64 {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/rooms", CreateRoomRequest{
		Name: name, Password: password, CreatedBy: "setup",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "room setup failed: %s", rec.Body.String())

	var room struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &room)
	return room.ID
}
