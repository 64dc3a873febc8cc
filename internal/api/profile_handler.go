package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves a user's own profile, the role extensions, and
// the public trainer directory.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}

type UpdateTrainerProfileRequest struct {
	Bio             string   `json:"bio"`
	BusinessName    string   `json:"businessName"`
	HourlyRate      float64  `json:"hourlyRate" binding:"omitempty,gte=0"`
	ExperienceYears int      `json:"experienceYears" binding:"omitempty,gte=0"`
	Specializations []string `json:"specializations"`
	Certifications  []string `json:"certifications"`
	Timezone        string   `json:"timezone"`
	LogoURL         string   `json:"logoUrl"`
}

type UpdateClientProfileRequest struct {
	Goals             []string   `json:"goals"`
	FitnessLevel      string     `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	HeightCm          float64    `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKg          float64    `json:"weightKg" binding:"omitempty,gt=0"`
	DateOfBirth       *time.Time `json:"dateOfBirth"`
	MedicalConditions []string   `json:"medicalConditions"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// --- Handlers ---

// GetMe returns the caller's base profile plus their role extension.
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile.")
		}
		return
	}

	resp := gin.H{"profile": MapProfileToResponse(profile)}
	switch profile.Role {
	case domain.RoleTrainer:
		if tp, err := h.profileService.GetTrainerProfile(c.Request.Context(), userID); err == nil {
			resp["trainerProfile"] = tp
		}
	case domain.RoleClient:
		if cp, err := h.profileService.GetClientProfile(c.Request.Context(), userID); err == nil {
			resp["clientProfile"] = cp
		}
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateMe updates the caller's mutable base fields.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.FullName, req.AvatarURL)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile.")
		}
		return
	}
	c.JSON(http.StatusOK, MapProfileToResponse(profile))
}

// UpdateTrainerProfile updates the caller's trainer extension.
func (h *ProfileHandler) UpdateTrainerProfile(c *gin.Context) {
	var req UpdateTrainerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	tp := &domain.TrainerProfile{
		Bio:             req.Bio,
		BusinessName:    req.BusinessName,
		HourlyRate:      req.HourlyRate,
		ExperienceYears: req.ExperienceYears,
		Specializations: req.Specializations,
		Certifications:  req.Certifications,
		Timezone:        req.Timezone,
		LogoURL:         req.LogoURL,
	}
	if err := h.profileService.UpdateTrainerProfile(c.Request.Context(), userID, tp); err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWrongRole):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update trainer profile.")
		}
		return
	}
	c.JSON(http.StatusOK, tp)
}

// UpdateClientProfile updates the caller's client extension.
func (h *ProfileHandler) UpdateClientProfile(c *gin.Context) {
	var req UpdateClientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	cp := &domain.ClientProfile{
		Goals:             req.Goals,
		FitnessLevel:      req.FitnessLevel,
		HeightCm:          req.HeightCm,
		WeightKg:          req.WeightKg,
		DateOfBirth:       req.DateOfBirth,
		MedicalConditions: req.MedicalConditions,
	}
	if err := h.profileService.UpdateClientProfile(c.Request.Context(), userID, cp); err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWrongRole):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update client profile.")
		}
		return
	}
	c.JSON(http.StatusOK, cp)
}

// ListTrainers returns the public trainer directory.
func (h *ProfileHandler) ListTrainers(c *gin.Context) {
	listings, err := h.profileService.ListTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load trainers.")
		return
	}
	if listings == nil {
		listings = []service.TrainerListing{}
	}
	c.JSON(http.StatusOK, listings)
}

// ListClients returns the caller's linked client roster.
func (h *ProfileHandler) ListClients(c *gin.Context) {
	trainerID, ok := callerObjectID(c)
	if !ok {
		return
	}

	listings, err := h.profileService.ListClients(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load clients.")
		return
	}
	if listings == nil {
		listings = []service.ClientListing{}
	}
	c.JSON(http.StatusOK, listings)
}

// RequestAvatarUploadURL issues a presigned PUT URL for an avatar image.
func (h *ProfileHandler) RequestAvatarUploadURL(c *gin.Context) {
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	userID, ok := callerObjectID(c)
	if !ok {
		return
	}

	resp, err := h.profileService.RequestAvatarUploadURL(c.Request.Context(), userID, req.FileName, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}
	c.JSON(http.StatusOK, resp)
}
