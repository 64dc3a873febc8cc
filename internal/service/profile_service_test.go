package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitlink/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProfileService_GetProfile_StripsPasswordHash(t *testing.T) {
	profiles := &mockProfileRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
			return &domain.Profile{ID: id, FullName: "Taylor", PasswordHash: "secret"}, nil
		},
	}

	svc := NewProfileService(profiles, &mockFileStorage{})
	profile, err := svc.GetProfile(context.Background(), primitive.NewObjectID())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.PasswordHash != "" {
		t.Error("password hash must not leak")
	}
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	svc := NewProfileService(&mockProfileRepo{}, &mockFileStorage{})
	_, err := svc.GetProfile(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_UpdateTrainerProfile_WrongRole(t *testing.T) {
	profiles := &mockProfileRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
			return &domain.Profile{ID: id, Role: domain.RoleClient}, nil
		},
	}

	svc := NewProfileService(profiles, &mockFileStorage{})
	err := svc.UpdateTrainerProfile(context.Background(), primitive.NewObjectID(), &domain.TrainerProfile{Bio: "hi"})
	if !errors.Is(err, ErrWrongRole) {
		t.Fatalf("expected ErrWrongRole, got %v", err)
	}
}

func TestProfileService_UpdateClientProfile_IDFromToken(t *testing.T) {
	callerID := primitive.NewObjectID()
	var stored *domain.ClientProfile

	profiles := &mockProfileRepo{
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
			return &domain.Profile{ID: id, Role: domain.RoleClient}, nil
		},
		updateClientProfileFn: func(ctx context.Context, cp *domain.ClientProfile) error {
			stored = cp
			return nil
		},
	}

	svc := NewProfileService(profiles, &mockFileStorage{})
	payload := &domain.ClientProfile{ID: primitive.NewObjectID(), Goals: []string{"run a marathon"}}
	if err := svc.UpdateClientProfile(context.Background(), callerID, payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stored == nil || stored.ID != callerID {
		t.Error("the payload ID must be overridden by the caller's ID")
	}
}

func TestProfileService_ListTrainers_AttachesExtensions(t *testing.T) {
	withExt := primitive.NewObjectID()
	withoutExt := primitive.NewObjectID()

	profiles := &mockProfileRepo{
		listTrainersFn: func(ctx context.Context) ([]domain.Profile, error) {
			return []domain.Profile{
				{ID: withExt, FullName: "A", Role: domain.RoleTrainer, PasswordHash: "x"},
				{ID: withoutExt, FullName: "B", Role: domain.RoleTrainer, PasswordHash: "y"},
			}, nil
		},
		getTrainerProfileFn: func(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
			if id == withExt {
				return &domain.TrainerProfile{ID: id, BusinessName: "A Coaching"}, nil
			}
			return nil, errors.New("boom")
		},
	}

	svc := NewProfileService(profiles, &mockFileStorage{})
	listings, err := svc.ListTrainers(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if listings[0].TrainerProfile == nil || listings[0].TrainerProfile.BusinessName != "A Coaching" {
		t.Error("expected the extension attached to the first trainer")
	}
	if listings[1].TrainerProfile != nil {
		t.Error("a failed extension lookup should degrade to a bare profile")
	}
	for _, l := range listings {
		if l.Profile.PasswordHash != "" {
			t.Error("password hash must not leak into the directory")
		}
	}
}

func TestProfileService_ListClients_AttachesProfiles(t *testing.T) {
	trainerID := primitive.NewObjectID()
	clientID := primitive.NewObjectID()

	profiles := &mockProfileRepo{
		getClientsByTrainerIDFn: func(ctx context.Context, tID primitive.ObjectID) ([]domain.ClientProfile, error) {
			if tID != trainerID {
				t.Error("roster must be scoped to the caller")
			}
			return []domain.ClientProfile{{ID: clientID, TrainerID: &trainerID}}, nil
		},
		getByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
			return &domain.Profile{ID: id, FullName: "Dana Client", PasswordHash: "secret"}, nil
		},
	}

	svc := NewProfileService(profiles, &mockFileStorage{})
	listings, err := svc.ListClients(context.Background(), trainerID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].Profile.FullName != "Dana Client" {
		t.Error("expected the base profile attached")
	}
	if listings[0].Profile.PasswordHash != "" {
		t.Error("password hash must not leak into the roster")
	}
}

func TestProfileService_RequestAvatarUploadURL(t *testing.T) {
	userID := primitive.NewObjectID()
	svc := NewProfileService(&mockProfileRepo{}, &mockFileStorage{})

	resp, err := svc.RequestAvatarUploadURL(context.Background(), userID, "me.png", "image/png")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(resp.ObjectKey, "avatars/"+userID.Hex()+"/") {
		t.Errorf("object key should be scoped to the user, got %s", resp.ObjectKey)
	}
	if !strings.HasSuffix(resp.ObjectKey, ".png") {
		t.Errorf("object key should keep the extension, got %s", resp.ObjectKey)
	}
}

func TestProfileService_RequestAvatarUploadURL_StorageFailure(t *testing.T) {
	store := &mockFileStorage{
		uploadURLFn: func(ctx context.Context, objectKey, contentType string, expiry time.Duration) (string, error) {
			return "", errors.New("s3 down")
		},
	}

	svc := NewProfileService(&mockProfileRepo{}, store)
	_, err := svc.RequestAvatarUploadURL(context.Background(), primitive.NewObjectID(), "me.png", "image/png")
	if !errors.Is(err, ErrUploadURLError) {
		t.Fatalf("expected ErrUploadURLError, got %v", err)
	}
}
