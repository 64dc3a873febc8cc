package service

import (
	"context"
	"errors"
	"fmt"
	"path"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"
	"fitlink/coaching-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrWrongRole       = errors.New("operation not permitted for this role")
	ErrUploadURLError  = errors.New("failed to generate upload URL")
)

// TrainerListing combines a trainer's base profile with their
// extension for the public directory.
type TrainerListing struct {
	Profile        domain.Profile         `json:"profile"`
	TrainerProfile *domain.TrainerProfile `json:"trainerProfile,omitempty"`
}

// ClientListing combines a linked client's base profile with their
// extension for the trainer's roster view.
type ClientListing struct {
	Profile       domain.Profile       `json:"profile"`
	ClientProfile domain.ClientProfile `json:"clientProfile"`
}

// UploadURLResponse carries a presigned PUT URL plus the object key
// the client must report back once the upload succeeded.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProfileService covers a user's own profile, the role extensions,
// and the trainer directory.
type ProfileService interface {
	GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, avatarURL string) (*domain.Profile, error)

	GetTrainerProfile(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	UpdateTrainerProfile(ctx context.Context, id primitive.ObjectID, tp *domain.TrainerProfile) error
	GetClientProfile(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error)
	UpdateClientProfile(ctx context.Context, id primitive.ObjectID, cp *domain.ClientProfile) error

	ListTrainers(ctx context.Context) ([]TrainerListing, error)
	ListClients(ctx context.Context, trainerID primitive.ObjectID) ([]ClientListing, error)
	RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(profileRepo repository.ProfileRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		fileStorage: fileStorage,
	}
}

// GetProfile fetches the base profile.
func (s *profileService) GetProfile(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	profile.PasswordHash = ""
	return profile, nil
}

// UpdateProfile updates the caller's own mutable base fields.
func (s *profileService) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, avatarURL string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if fullName != "" {
		profile.FullName = fullName
	}
	if avatarURL != "" {
		profile.AvatarURL = avatarURL
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	profile.PasswordHash = ""
	return profile, nil
}

// GetTrainerProfile fetches the trainer extension record.
func (s *profileService) GetTrainerProfile(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	tp, err := s.profileRepo.GetTrainerProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return tp, nil
}

// UpdateTrainerProfile writes the caller's trainer extension. The ID
// comes from the token, never from the payload.
func (s *profileService) UpdateTrainerProfile(ctx context.Context, id primitive.ObjectID, tp *domain.TrainerProfile) error {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if !profile.IsTrainer() {
		return ErrWrongRole
	}

	tp.ID = id
	return s.profileRepo.UpdateTrainerProfile(ctx, tp)
}

// GetClientProfile fetches the client extension record.
func (s *profileService) GetClientProfile(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	cp, err := s.profileRepo.GetClientProfile(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return cp, nil
}

// UpdateClientProfile writes the caller's client extension. TrainerID
// in the payload is ignored: the link is owned by the request workflow.
func (s *profileService) UpdateClientProfile(ctx context.Context, id primitive.ObjectID, cp *domain.ClientProfile) error {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if !profile.IsClient() {
		return ErrWrongRole
	}

	cp.ID = id
	return s.profileRepo.UpdateClientProfile(ctx, cp)
}

// ListTrainers returns every trainer with their extension attached,
// for the browse/search directory.
func (s *profileService) ListTrainers(ctx context.Context) ([]TrainerListing, error) {
	trainers, err := s.profileRepo.ListTrainers(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]TrainerListing, 0, len(trainers))
	for _, t := range trainers {
		t.PasswordHash = ""
		listing := TrainerListing{Profile: t}
		// A missing extension record should not hide the trainer
		// from the directory.
		if tp, err := s.profileRepo.GetTrainerProfile(ctx, t.ID); err == nil {
			listing.TrainerProfile = tp
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// ListClients returns the trainer's linked clients with their base
// profiles attached.
func (s *profileService) ListClients(ctx context.Context, trainerID primitive.ObjectID) ([]ClientListing, error) {
	clients, err := s.profileRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	listings := make([]ClientListing, 0, len(clients))
	for _, cp := range clients {
		listing := ClientListing{ClientProfile: cp}
		if p, err := s.profileRepo.GetByID(ctx, cp.ID); err == nil {
			p.PasswordHash = ""
			listing.Profile = *p
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// RequestAvatarUploadURL issues a presigned PUT URL for an avatar (or
// trainer logo) image. The object key embeds the user ID so keys never
// collide across users.
func (s *profileService) RequestAvatarUploadURL(ctx context.Context, userID primitive.ObjectID, fileName, contentType string) (*UploadURLResponse, error) {
	if fileName == "" || contentType == "" {
		return nil, errors.New("file name and content type are required")
	}

	objectKey := path.Join("avatars", userID.Hex(), fmt.Sprintf("%s%s", uuid.NewString(), path.Ext(fileName)))
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{UploadURL: url, ObjectKey: objectKey}, nil
}
