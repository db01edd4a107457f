package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/mete1923/sentiment-chat/internal/apperror"
	"github.com/mete1923/sentiment-chat/internal/model"
	"github.com/mete1923/sentiment-chat/internal/service"
)

// MessageHandler exposes the message ingestion and retrieval endpoints.
type MessageHandler struct {
	svc    *service.MessageService
	logger *slog.Logger
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc *service.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, logger: logger}
}

// CreateMessageRequest is the POST /api/messages body.
type CreateMessageRequest struct {
	Handle string `json:"handle"`
	Text   string `json:"text"`
	RoomID int64  `json:"roomId"`
}

// MessageResponse is the wire projection of a stored message. RoomID is
// deliberately absent — clients already know which room they posted to.
type MessageResponse struct {
	ID             int64     `json:"id"`
	Handle         string    `json:"handle"`
	Text           string    `json:"text"`
	SentimentLabel *string   `json:"sentimentLabel"`
	SentimentScore *float64  `json:"sentimentScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PagedMessagesResponse wraps one page of messages with paging metadata.
type PagedMessagesResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalCount int               `json:"totalCount"`
	TotalPages int               `json:"totalPages"`
}

// partialMessageResponse is the 207 Multi-Status body: the persisted message
// plus a warning that the advisory enrichment step failed.
type partialMessageResponse struct {
	Message MessageResponse `json:"message"`
	Warning string          `json:"warning"`
}

func toMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		Handle:         m.Handle,
		Text:           m.Text,
		SentimentLabel: m.SentimentLabel,
		SentimentScore: m.SentimentScore,
		CreatedAt:      m.CreatedAt,
	}
}

// HandleCreate processes a posted message.
//
// HTTP: POST /api/messages
//
// RESULT SIGNALING:
// 201 Created with a Location header when the message was stored AND
// enriched; 207 Multi-Status with {message, warning} when the message was
// stored but sentiment analysis failed. The write itself is never rolled
// back because enrichment failed.
func (h *MessageHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid message JSON", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	result, err := h.svc.Create(r.Context(), req.Handle, req.Text, req.RoomID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := toMessageResponse(*result.Message)

	if !result.Enriched {
		writeJSON(w, http.StatusMultiStatus, partialMessageResponse{
			Message: resp,
			Warning: result.Warning,
		})
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/messages/%d", resp.ID))
	writeJSON(w, http.StatusCreated, resp)
}

// HandleList returns one page of a room's messages.
//
// HTTP: GET /api/messages?roomId=&page=&pageSize=
//
// roomId is required and must be a positive integer (400 otherwise).
// page and pageSize are optional; out-of-range or unparseable values are
// clamped to page 1 / size 50 by the service, never rejected.
func (h *MessageHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.ParseInt(r.URL.Query().Get("roomId"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("roomId", "a valid room id is required"))
		return
	}

	// Parse failures fall through as zero values, which the service clamps.
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.svc.List(r.Context(), roomID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedMessagesResponse{
		Messages:   lo.Map(result.Messages, func(m model.Message, _ int) MessageResponse { return toMessageResponse(m) }),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// HandleGetByID returns a single message.
//
// HTTP: GET /api/messages/{id}
func (h *MessageHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, apperror.ValidationFailed("id", "message id must be a number"))
		return
	}

	msg, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMessageResponse(*msg))
}

// HandleHealth is a static liveness probe for the messages pipeline.
//
// HTTP: GET /api/messages/health
func (h *MessageHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "messages",
	})
}
