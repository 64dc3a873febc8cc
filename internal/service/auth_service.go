package service

import (
	"context"
	"errors"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// AuthService handles registration, login, and token issuance.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *domain.Profile, err error)
}

// authService implements the AuthService interface.
type authService struct {
	profileRepo   repository.ProfileRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(profileRepo repository.ProfileRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		profileRepo:   profileRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates the base profile plus the role extension record.
// The role discriminator is fixed here forever; there is no
// trainer<->client migration path.
func (s *authService) Register(ctx context.Context, fullName, email, password string, role domain.Role) (*domain.Profile, error) {
	if fullName == "" || email == "" || password == "" {
		return nil, errors.New("name, email, and password cannot be empty")
	}
	if role != domain.RoleTrainer && role != domain.RoleClient {
		return nil, errors.New("role must be trainer or client")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	profile := &domain.Profile{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}

	profileID, err := s.profileRepo.Create(ctx, profile)
	if err != nil {
		// The unique email index catches the race between two
		// concurrent registrations with the same address.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	profile.ID = profileID

	// Create the matching extension record under the same ID.
	switch role {
	case domain.RoleTrainer:
		err = s.profileRepo.CreateTrainerProfile(ctx, &domain.TrainerProfile{ID: profileID})
	case domain.RoleClient:
		err = s.profileRepo.CreateClientProfile(ctx, &domain.ClientProfile{ID: profileID})
	}
	if err != nil {
		return nil, err
	}

	profile.PasswordHash = ""
	return profile, nil
}

// Login authenticates a user and issues a JWT.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Profile, error) {
	if email == "" || password == "" {
		return "", nil, errors.New("email and password cannot be empty")
	}

	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown email maps to the same failure as a bad password.
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(profile)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	profile.PasswordHash = ""
	return token, profile, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new signed token for the given profile.
func (s *authService) generateJWT(profile *domain.Profile) (string, error) {
	now := time.Now()
	claims := &jwtClaims{
		UserID: profile.ID.Hex(),
		Role:   profile.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "coaching-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
