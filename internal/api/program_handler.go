package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramHandler manages workout program templates and assignments.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- DTOs ---

type ExerciseRequest struct {
	Name            string `json:"name" binding:"required"`
	Kind            string `json:"kind" binding:"required,oneof=reps duration distance"`
	Sets            int    `json:"sets" binding:"omitempty,gt=0"`
	Reps            int    `json:"reps" binding:"omitempty,gt=0"`
	DurationSeconds int    `json:"durationSeconds" binding:"omitempty,gt=0"`
	DistanceMeters  int    `json:"distanceMeters" binding:"omitempty,gt=0"`
	Notes           string `json:"notes"`
}

type ProgramRequest struct {
	Name            string            `json:"name" binding:"required"`
	Description     string            `json:"description"`
	DifficultyLevel string            `json:"difficultyLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	DurationWeeks   int               `json:"durationWeeks" binding:"omitempty,gt=0"`
	Exercises       []ExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

type AssignProgramRequest struct {
	ClientID string `json:"clientId" binding:"required"`
}

func (r ProgramRequest) toDomain() *domain.WorkoutProgram {
	exercises := make([]domain.Exercise, len(r.Exercises))
	for i, ex := range r.Exercises {
		exercises[i] = domain.Exercise{
			Name:            ex.Name,
			Kind:            domain.ExerciseKind(ex.Kind),
			Sets:            ex.Sets,
			Reps:            ex.Reps,
			DurationSeconds: ex.DurationSeconds,
			DistanceMeters:  ex.DistanceMeters,
			Notes:           ex.Notes,
		}
	}
	return &domain.WorkoutProgram{
		Name:            r.Name,
		Description:     r.Description,
		DifficultyLevel: r.DifficultyLevel,
		DurationWeeks:   r.DurationWeeks,
		Exercises:       exercises,
	}
}

// --- Handlers ---

// CreateTemplate stores a new reusable template for the caller.
func (h *ProgramHandler) CreateTemplate(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	program, err := h.programService.CreateTemplate(c.Request.Context(), trainerID, req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrInvalidExercises) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create template.")
		}
		return
	}
	c.JSON(http.StatusCreated, program)
}

// UpdateTemplate rewrites an owned template's content.
func (h *ProgramHandler) UpdateTemplate(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	program := req.toDomain()
	program.ID = programID

	updated, err := h.programService.UpdateTemplate(c.Request.Context(), trainerID, program)
	if err != nil {
		h.mapProgramError(c, err, "Failed to update template.")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTemplate removes an owned template.
func (h *ProgramHandler) DeleteTemplate(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	programID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}

	if err := h.programService.DeleteTemplate(c.Request.Context(), trainerID, programID); err != nil {
		h.mapProgramError(c, err, "Failed to delete template.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListTemplates returns the caller's templates.
func (h *ProgramHandler) ListTemplates(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	templates, err := h.programService.ListTemplates(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load templates.")
		return
	}
	if templates == nil {
		templates = []domain.WorkoutProgram{}
	}
	c.JSON(http.StatusOK, templates)
}

// AssignTemplate copies a template to a linked client.
func (h *ProgramHandler) AssignTemplate(c *gin.Context) {
	var req AssignProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	templateID, ok := pathObjectID(c, "programId")
	if !ok {
		return
	}
	clientID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format.")
		return
	}

	programCopy, err := h.programService.AssignTemplate(c.Request.Context(), trainerID, templateID, clientID)
	if err != nil {
		h.mapProgramError(c, err, "Failed to assign program.")
		return
	}
	c.JSON(http.StatusCreated, programCopy)
}

// CreateClientProgram stores a one-off program for a linked client.
func (h *ProgramHandler) CreateClientProgram(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	clientID, ok := pathObjectID(c, "clientId")
	if !ok {
		return
	}

	program, err := h.programService.CreateForClient(c.Request.Context(), trainerID, clientID, req.toDomain())
	if err != nil {
		h.mapProgramError(c, err, "Failed to create program.")
		return
	}
	c.JSON(http.StatusCreated, program)
}

// ListClientPrograms is the trainer's view of one client's programs.
func (h *ProgramHandler) ListClientPrograms(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	clientID, ok := pathObjectID(c, "clientId")
	if !ok {
		return
	}

	programs, err := h.programService.ListClientProgramsForTrainer(c.Request.Context(), trainerID, clientID)
	if err != nil {
		h.mapProgramError(c, err, "Failed to load programs.")
		return
	}
	if programs == nil {
		programs = []domain.WorkoutProgram{}
	}
	c.JSON(http.StatusOK, programs)
}

// ListMyPrograms is the client's view of their own assigned programs.
func (h *ProgramHandler) ListMyPrograms(c *gin.Context) {
	clientID, ok := callerObjectID(c)
	if !ok {
		return
	}

	programs, err := h.programService.ListProgramsForClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load programs.")
		return
	}
	if programs == nil {
		programs = []domain.WorkoutProgram{}
	}
	c.JSON(http.StatusOK, programs)
}

func (h *ProgramHandler) mapProgramError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProgramNotFound), errors.Is(err, service.ErrProfileNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrProgramAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotATemplate), errors.Is(err, service.ErrInvalidExercises):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrClientNotLinked):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
