package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionHandler drives the trainer-request workflow.
type ConnectionHandler struct {
	connectionService service.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler.
func NewConnectionHandler(connectionService service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// --- DTOs ---

type SubmitRequestRequest struct {
	TrainerID string `json:"trainerId" binding:"required"`
	Message   string `json:"message"`
}

// --- Handlers ---

// SubmitRequest lets a client request a connection with a trainer.
func (h *ConnectionHandler) SubmitRequest(c *gin.Context) {
	var req SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	clientID, ok := callerObjectID(c)
	if !ok {
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format.")
		return
	}

	request, err := h.connectionService.SubmitRequest(c.Request.Context(), clientID, trainerID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainerNotFound), errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotATrainer):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadyLinked), errors.Is(err, service.ErrDuplicatePending):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit request.")
		}
		return
	}
	c.JSON(http.StatusCreated, request)
}

// ListRequests returns the caller's side of the workflow: trainers see
// requests addressed to them, clients their own submissions.
func (h *ConnectionHandler) ListRequests(c *gin.Context) {
	userID, ok := callerObjectID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "User role not found in context")
		return
	}

	var views []service.RequestView
	if role == domain.RoleTrainer {
		views, err = h.connectionService.ListRequestsForTrainer(c.Request.Context(), userID)
	} else {
		views, err = h.connectionService.ListRequestsForClient(c.Request.Context(), userID)
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load requests.")
		return
	}
	if views == nil {
		views = []service.RequestView{}
	}
	c.JSON(http.StatusOK, views)
}

// ApproveRequest approves a pending request addressed to the caller,
// atomically linking the client.
func (h *ConnectionHandler) ApproveRequest(c *gin.Context) {
	h.decide(c, h.connectionService.ApproveRequest)
}

// RejectRequest rejects a pending request addressed to the caller.
func (h *ConnectionHandler) RejectRequest(c *gin.Context) {
	h.decide(c, h.connectionService.RejectRequest)
}

func (h *ConnectionHandler) decide(c *gin.Context, decideFn func(ctx context.Context, trainerID, requestID primitive.ObjectID) (*domain.TrainerRequest, error)) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	requestID, ok := pathObjectID(c, "requestId")
	if !ok {
		return
	}

	request, err := decideFn(c.Request.Context(), trainerID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRequestNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRequestAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrRequestNotPending):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update request.")
		}
		return
	}
	c.JSON(http.StatusOK, request)
}
