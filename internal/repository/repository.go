package repository

import (
	"context"

	"fitlink/coaching-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound         = RepositoryError("not found")
	ErrUpdateFailed     = RepositoryError("update failed")
	ErrDuplicateEmail   = RepositoryError("email already registered")
	ErrDuplicateRequest = RepositoryError("pending request already exists for this trainer")
	ErrLinkFailed       = RepositoryError("request approved but client link not written")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ProfileRepository covers the base profiles collection plus the 1:1
// trainer/client extension collections keyed by the same ID.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	ListTrainers(ctx context.Context) ([]domain.Profile, error)

	CreateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error
	GetTrainerProfile(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error)
	UpdateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error

	CreateClientProfile(ctx context.Context, cp *domain.ClientProfile) error
	GetClientProfile(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error)
	UpdateClientProfile(ctx context.Context, cp *domain.ClientProfile) error
	GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ClientProfile, error)
}

// RequestRepository manages the trainer/client connection workflow.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerRequest, error)
	HasPending(ctx context.Context, clientID, trainerID primitive.ObjectID) (bool, error)

	// ApproveAndLink moves a pending request to approved AND writes the
	// client's trainerId, both inside one transaction where the server
	// supports it. The status filter guards terminal states: a request
	// that is no longer pending yields ErrNotFound.
	ApproveAndLink(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error)

	// Reject moves a pending request to rejected. Same pending-only guard.
	Reject(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error)
}

// ProgramRepository manages workout programs, both templates and
// client-bound copies.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error)
	GetTemplatesByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	Update(ctx context.Context, program *domain.WorkoutProgram) error
	Delete(ctx context.Context, id, trainerID primitive.ObjectID) error // Owner-scoped delete
}

// CheckInRepository manages client check-ins. There is no Delete:
// check-ins are append-plus-annotate only.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CheckIn, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.CheckIn, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.CheckIn, error)
	Update(ctx context.Context, checkIn *domain.CheckIn) error
}

// MessageRepository manages directed messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error)
	MarkRead(ctx context.Context, recipientID primitive.ObjectID, ids []primitive.ObjectID) (int64, error)
	CountUnread(ctx context.Context, recipientID, senderID primitive.ObjectID) (int64, error)
}

// SessionRepository manages video sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.VideoSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoSession, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.VideoSession, error)
	GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.VideoSession, error)
	Update(ctx context.Context, session *domain.VideoSession) error
}
