package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"
	"fitlink/coaching-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrFeelingRequired     = errors.New("a feeling selection is required")
	ErrEnergyRequired      = errors.New("an energy selection is required")
	ErrNoTrainerConnection = errors.New("an approved trainer connection is required to check in")
	ErrCheckInNotFound     = errors.New("check-in not found")
	ErrCheckInAccessDenied = errors.New("check-in does not belong to this trainer")
)

// CheckInService handles weekly client self-reports and the trainer's
// annotations on them.
type CheckInService interface {
	Submit(ctx context.Context, clientID primitive.ObjectID, responses domain.CheckInResponses, photoKeys []string) (*domain.CheckIn, error)
	Review(ctx context.Context, trainerID, checkInID primitive.ObjectID, feedback string) (*domain.CheckIn, error)
	SetSummary(ctx context.Context, trainerID, checkInID primitive.ObjectID, summary string) (*domain.CheckIn, error)
	ListForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.CheckIn, error)
	ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.CheckIn, error)
	RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error)

	// PhotoURLs resolves a check-in's stored photo keys into presigned
	// GET URLs for the owning client or the named trainer.
	PhotoURLs(ctx context.Context, viewerID, checkInID primitive.ObjectID) ([]string, error)
}

type checkInService struct {
	checkInRepo repository.CheckInRepository
	profileRepo repository.ProfileRepository
	fileStorage storage.FileStorage
	now         func() time.Time // Injectable clock for week bucketing
}

// NewCheckInService creates a new instance of checkInService.
func NewCheckInService(checkInRepo repository.CheckInRepository, profileRepo repository.ProfileRepository, fileStorage storage.FileStorage) CheckInService {
	return &checkInService{
		checkInRepo: checkInRepo,
		profileRepo: profileRepo,
		fileStorage: fileStorage,
		now:         time.Now,
	}
}

// Submit validates the self-report and stores it against the client's
// linked trainer. Both the feeling and the energy selection are
// mandatory, and submission without an approved connection is refused.
func (s *checkInService) Submit(ctx context.Context, clientID primitive.ObjectID, responses domain.CheckInResponses, photoKeys []string) (*domain.CheckIn, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID is required")
	}
	if !domain.ValidFeeling(responses.Feeling) {
		return nil, ErrFeelingRequired
	}
	if !domain.ValidEnergyLevel(responses.Energy) {
		return nil, ErrEnergyRequired
	}

	clientProfile, err := s.profileRepo.GetClientProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if clientProfile.TrainerID == nil {
		return nil, ErrNoTrainerConnection
	}

	checkIn := &domain.CheckIn{
		ClientID:       clientID,
		TrainerID:      *clientProfile.TrainerID,
		WeekNumber:     domain.WeekOfMonth(s.now().UTC()),
		Responses:      responses,
		ProgressPhotos: photoKeys,
	}

	checkInID, err := s.checkInRepo.Create(ctx, checkIn)
	if err != nil {
		return nil, err
	}
	checkIn.ID = checkInID
	return checkIn, nil
}

// Review records the trainer's feedback and marks the check-in reviewed.
func (s *checkInService) Review(ctx context.Context, trainerID, checkInID primitive.ObjectID, feedback string) (*domain.CheckIn, error) {
	checkIn, err := s.getOwned(ctx, trainerID, checkInID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	checkIn.TrainerFeedback = feedback
	checkIn.ReviewedAt = &now

	if err := s.checkInRepo.Update(ctx, checkIn); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// SetSummary stores a summary produced by an external summarizer.
func (s *checkInService) SetSummary(ctx context.Context, trainerID, checkInID primitive.ObjectID, summary string) (*domain.CheckIn, error) {
	checkIn, err := s.getOwned(ctx, trainerID, checkInID)
	if err != nil {
		return nil, err
	}

	checkIn.Summary = summary
	if err := s.checkInRepo.Update(ctx, checkIn); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// ListForClient returns the client's own check-ins, newest first.
func (s *checkInService) ListForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.CheckIn, error) {
	return s.checkInRepo.GetByClientID(ctx, clientID)
}

// ListForTrainer returns all check-ins addressed to the trainer.
func (s *checkInService) ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.CheckIn, error) {
	return s.checkInRepo.GetByTrainerID(ctx, trainerID)
}

// RequestPhotoUploadURL issues a presigned PUT URL for a progress
// photo. The returned object key goes into the check-in's photo list
// on submit.
func (s *checkInService) RequestPhotoUploadURL(ctx context.Context, clientID primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error) {
	if fileName == "" || contentType == "" {
		return nil, errors.New("file name and content type are required")
	}

	objectKey := path.Join("progress-photos", clientID.Hex(), fmt.Sprintf("%s%s", uuid.NewString(), path.Ext(fileName)))
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}
	return &UploadURLResponse{UploadURL: url, ObjectKey: objectKey}, nil
}

// PhotoURLs issues presigned download URLs for a check-in's photos.
// Only the two parties on the check-in may view them.
func (s *checkInService) PhotoURLs(ctx context.Context, viewerID, checkInID primitive.ObjectID) ([]string, error) {
	checkIn, err := s.checkInRepo.GetByID(ctx, checkInID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	if checkIn.ClientID != viewerID && checkIn.TrainerID != viewerID {
		return nil, ErrCheckInAccessDenied
	}

	urls := make([]string, 0, len(checkIn.ProgressPhotos))
	for _, key := range checkIn.ProgressPhotos {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, ErrUploadURLError
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// getOwned fetches a check-in and verifies the caller is its trainer.
func (s *checkInService) getOwned(ctx context.Context, trainerID, checkInID primitive.ObjectID) (*domain.CheckIn, error) {
	checkIn, err := s.checkInRepo.GetByID(ctx, checkInID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCheckInNotFound
		}
		return nil, err
	}
	if checkIn.TrainerID != trainerID {
		return nil, ErrCheckInAccessDenied
	}
	return checkIn, nil
}
