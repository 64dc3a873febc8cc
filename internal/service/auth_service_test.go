package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test-secret-key"

func TestAuthService_Register_CreatesExtensionRecord(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()

	var createdClientProfile *domain.ClientProfile
	profiles := &mockProfileRepo{
		createFn: func(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
			if profile.PasswordHash == "" || profile.PasswordHash == "hunter22" {
				t.Error("password should be stored hashed")
			}
			return profileID, nil
		},
		createClientProfileFn: func(ctx context.Context, cp *domain.ClientProfile) error {
			createdClientProfile = cp
			return nil
		},
	}

	svc := NewAuthService(profiles, testJWTSecret, time.Hour)
	profile, err := svc.Register(ctx, "Dana Client", "dana@example.com", "hunter22", domain.RoleClient)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.ID != profileID {
		t.Error("returned profile should carry the new ID")
	}
	if profile.PasswordHash != "" {
		t.Error("password hash must not leak out of Register")
	}
	if createdClientProfile == nil {
		t.Fatal("expected a client extension record")
	}
	if createdClientProfile.ID != profileID {
		t.Error("extension record must share the profile ID")
	}
}

func TestAuthService_Register_TrainerExtension(t *testing.T) {
	ctx := context.Background()
	profileID := primitive.NewObjectID()

	var createdTrainerProfile *domain.TrainerProfile
	profiles := &mockProfileRepo{
		createFn: func(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
			return profileID, nil
		},
		createTrainerProfileFn: func(ctx context.Context, tp *domain.TrainerProfile) error {
			createdTrainerProfile = tp
			return nil
		},
	}

	svc := NewAuthService(profiles, testJWTSecret, time.Hour)
	if _, err := svc.Register(ctx, "Taylor Trainer", "taylor@example.com", "hunter22", domain.RoleTrainer); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if createdTrainerProfile == nil || createdTrainerProfile.ID != profileID {
		t.Error("expected a trainer extension record sharing the profile ID")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	profiles := &mockProfileRepo{
		createFn: func(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		},
	}

	svc := NewAuthService(profiles, testJWTSecret, time.Hour)
	_, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter22", domain.RoleClient)
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(&mockProfileRepo{}, testJWTSecret, time.Hour)
	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter22", "admin"); err == nil {
		t.Fatal("expected an error for an unknown role")
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	password := "correct-horse"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	profileID := primitive.NewObjectID()

	profiles := &mockProfileRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.Profile, error) {
			return &domain.Profile{
				ID:           profileID,
				Email:        email,
				PasswordHash: string(hash),
				Role:         domain.RoleTrainer,
			}, nil
		},
	}

	svc := NewAuthService(profiles, testJWTSecret, time.Hour)
	token, profile, err := svc.Login(context.Background(), "taylor@example.com", password)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.PasswordHash != "" {
		t.Error("password hash must not leak out of Login")
	}

	// Token must round-trip with the same uid and role claims.
	claims := &jwtClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token failed to parse: %v", err)
	}
	if claims.UserID != profileID.Hex() {
		t.Errorf("expected uid %s, got %s", profileID.Hex(), claims.UserID)
	}
	if claims.Role != domain.RoleTrainer {
		t.Errorf("expected role trainer, got %s", claims.Role)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	profiles := &mockProfileRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.Profile, error) {
			return &domain.Profile{Email: email, PasswordHash: string(hash)}, nil
		},
	}

	svc := NewAuthService(profiles, testJWTSecret, time.Hour)
	_, _, err := svc.Login(context.Background(), "taylor@example.com", "wrong")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(&mockProfileRepo{}, testJWTSecret, time.Hour)
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}
