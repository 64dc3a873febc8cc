package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckInHandler manages weekly check-in submission and review.
type CheckInHandler struct {
	checkInService service.CheckInService
}

// NewCheckInHandler creates a new CheckInHandler.
func NewCheckInHandler(checkInService service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// --- DTOs ---

type SubmitCheckInRequest struct {
	Feeling   string   `json:"feeling" binding:"required"`
	Energy    string   `json:"energy" binding:"required"`
	Notes     string   `json:"notes"`
	PhotoKeys []string `json:"photoKeys"`
}

type ReviewCheckInRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type CheckInSummaryRequest struct {
	Summary string `json:"summary" binding:"required"`
}

// --- Handlers ---

// SubmitCheckIn records the caller's weekly check-in.
func (h *CheckInHandler) SubmitCheckIn(c *gin.Context) {
	var req SubmitCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	clientID, ok := callerObjectID(c)
	if !ok {
		return
	}

	responses := domain.CheckInResponses{
		Feeling: domain.Feeling(req.Feeling),
		Energy:  domain.EnergyLevel(req.Energy),
		Notes:   req.Notes,
	}

	checkIn, err := h.checkInService.Submit(c.Request.Context(), clientID, responses, req.PhotoKeys)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFeelingRequired), errors.Is(err, service.ErrEnergyRequired):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoTrainerConnection):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit check-in.")
		}
		return
	}
	c.JSON(http.StatusCreated, checkIn)
}

// ListMyCheckIns returns the caller's own check-in history.
func (h *CheckInHandler) ListMyCheckIns(c *gin.Context) {
	clientID, ok := callerObjectID(c)
	if !ok {
		return
	}

	checkIns, err := h.checkInService.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load check-ins.")
		return
	}
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	c.JSON(http.StatusOK, checkIns)
}

// ListClientCheckIns returns check-ins across all of the trainer's clients.
func (h *CheckInHandler) ListClientCheckIns(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	checkIns, err := h.checkInService.ListForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load check-ins.")
		return
	}
	if checkIns == nil {
		checkIns = []domain.CheckIn{}
	}
	c.JSON(http.StatusOK, checkIns)
}

// ReviewCheckIn attaches trainer feedback to a client's check-in.
func (h *CheckInHandler) ReviewCheckIn(c *gin.Context) {
	var req ReviewCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	checkInID, ok := pathObjectID(c, "checkinId")
	if !ok {
		return
	}

	checkIn, err := h.checkInService.Review(c.Request.Context(), trainerID, checkInID, req.Feedback)
	if err != nil {
		h.mapCheckInError(c, err, "Failed to review check-in.")
		return
	}
	c.JSON(http.StatusOK, checkIn)
}

// SetCheckInSummary stores a prepared summary on a check-in.
func (h *CheckInHandler) SetCheckInSummary(c *gin.Context) {
	var req CheckInSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	checkInID, ok := pathObjectID(c, "checkinId")
	if !ok {
		return
	}

	checkIn, err := h.checkInService.SetSummary(c.Request.Context(), trainerID, checkInID, req.Summary)
	if err != nil {
		h.mapCheckInError(c, err, "Failed to update check-in summary.")
		return
	}
	c.JSON(http.StatusOK, checkIn)
}

// RequestPhotoUploadURL presigns an upload slot for a progress photo.
func (h *CheckInHandler) RequestPhotoUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	clientID, ok := callerObjectID(c)
	if !ok {
		return
	}

	resp, err := h.checkInService.RequestPhotoUploadURL(c.Request.Context(), clientID, req.FileName, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCheckInPhotos resolves a check-in's photo keys into viewable URLs.
func (h *CheckInHandler) GetCheckInPhotos(c *gin.Context) {
	viewerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	checkInID, ok := pathObjectID(c, "checkinId")
	if !ok {
		return
	}

	urls, err := h.checkInService.PhotoURLs(c.Request.Context(), viewerID, checkInID)
	if err != nil {
		h.mapCheckInError(c, err, "Failed to load photos.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"photoUrls": urls})
}

func (h *CheckInHandler) mapCheckInError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCheckInNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCheckInAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
