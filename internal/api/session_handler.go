package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler manages scheduled video coaching sessions.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- DTOs ---

type ScheduleSessionRequest struct {
	ClientID        string    `json:"clientId" binding:"required"`
	Date            time.Time `json:"date" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required,gt=0"`
	MeetingURL      string    `json:"meetingUrl" binding:"omitempty,url"`
}

type UpdateSessionRequest struct {
	Date            *time.Time `json:"date"`
	DurationMinutes *int       `json:"durationMinutes" binding:"omitempty,gt=0"`
	Status          *string    `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Transcript      *string    `json:"transcript"`
	Summary         *string    `json:"summary"`
	ActionItems     []string   `json:"actionItems"`
	MeetingURL      *string    `json:"meetingUrl" binding:"omitempty,url"`
}

// --- Handlers ---

// ScheduleSession books a video session with a linked client.
func (h *SessionHandler) ScheduleSession(c *gin.Context) {
	var req ScheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return
	}

	session, err := h.sessionService.Schedule(c.Request.Context(), trainerID, clientID, req.Date, req.DurationMinutes, req.MeetingURL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrClientNotLinked):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to schedule session.")
		}
		return
	}
	c.JSON(http.StatusCreated, session)
}

// UpdateSession changes status or attaches notes to a session.
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	sessionID, ok := pathObjectID(c, "sessionId")
	if !ok {
		return
	}

	update := service.SessionUpdate{
		SessionDate:     req.Date,
		DurationMinutes: req.DurationMinutes,
		Transcript:      req.Transcript,
		Summary:         req.Summary,
		ActionItems:     req.ActionItems,
		MeetingURL:      req.MeetingURL,
	}
	if req.Status != nil {
		status := domain.SessionStatus(*req.Status)
		update.Status = &status
	}

	session, err := h.sessionService.Update(c.Request.Context(), trainerID, sessionID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSessionAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvalidSessionState):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update session.")
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListMySessions returns the sessions the caller organizes.
func (h *SessionHandler) ListMySessions(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load sessions.")
		return
	}
	if sessions == nil {
		sessions = []domain.VideoSession{}
	}
	c.JSON(http.StatusOK, sessions)
}

// ListClientSessions returns the sessions the caller attends.
func (h *SessionHandler) ListClientSessions(c *gin.Context) {
	clientID, ok := callerObjectID(c)
	if !ok {
		return
	}

	sessions, err := h.sessionService.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load sessions.")
		return
	}
	if sessions == nil {
		sessions = []domain.VideoSession{}
	}
	c.JSON(http.StatusOK, sessions)
}
