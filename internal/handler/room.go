package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/service"
)

// RoomHandler exposes room creation, joining and listing.
//
// model.Room excludes the password hash from JSON via its struct tag, so the
// handlers here can serialize rooms directly — there is no projection that
// could accidentally leak the hash.
type RoomHandler struct {
	svc    *service.RoomService
	logger *slog.Logger
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(svc *service.RoomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{svc: svc, logger: logger}
}

// CreateRoomRequest is the POST /api/rooms body.
type CreateRoomRequest struct {
	Name      string `json:"name"`
	Password  string `json:"password"`
	CreatedBy string `json:"createdBy"`
}

// JoinRoomRequest is the POST /api/rooms/join body. Handle identifies who is
// joining, for logging only — joining issues no session or token.
type JoinRoomRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Handle   string `json:"handle"`
}

// HandleCreate creates a room.
//
// HTTP: POST /api/rooms → 201, 400 (validation), 409 (name taken)
func (h *RoomHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid room JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	room, err := h.svc.Create(r.Context(), req.Name, req.Password, req.CreatedBy)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/rooms/%d", room.ID))
	writeJSON(w, http.StatusCreated, room)
}

// HandleJoin checks a room password and returns the room on success.
//
// HTTP: POST /api/rooms/join → 200, 400, 404 (no such room), 401 (wrong password)
func (h *RoomHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid join JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	room, err := h.svc.Join(r.Context(), req.Name, req.Password, req.Handle)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

// HandleList returns all rooms, newest first.
//
// HTTP: GET /api/rooms
func (h *RoomHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}

// HandleGetByID returns a single room.
//
// HTTP: GET /api/rooms/{id}
func (h *RoomHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "room id must be a number"))
		return
	}

	room, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}
