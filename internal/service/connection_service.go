package service

import (
	"context"
	"errors"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainerNotFound     = errors.New("trainer not found")
	ErrNotATrainer         = errors.New("target user is not a trainer")
	ErrAlreadyLinked       = errors.New("client already has an approved trainer connection")
	ErrDuplicatePending    = errors.New("a pending request to this trainer already exists")
	ErrRequestNotFound     = errors.New("request not found")
	ErrRequestNotPending   = errors.New("request has already been decided")
	ErrRequestAccessDenied = errors.New("request does not belong to this trainer")
)

// RequestView pairs a request with the counterpart's profile so list
// views need no second round trip.
type RequestView struct {
	Request domain.TrainerRequest `json:"request"`
	Trainer *domain.Profile       `json:"trainer,omitempty"`
	Client  *domain.Profile       `json:"client,omitempty"`
}

// ConnectionService runs the trainer/client connection workflow:
// submit by the client, approve/reject by the named trainer, ownership
// -filtered listing for both sides.
type ConnectionService interface {
	SubmitRequest(ctx context.Context, clientID, trainerID primitive.ObjectID, message string) (*domain.TrainerRequest, error)
	ApproveRequest(ctx context.Context, trainerID, requestID primitive.ObjectID) (*domain.TrainerRequest, error)
	RejectRequest(ctx context.Context, trainerID, requestID primitive.ObjectID) (*domain.TrainerRequest, error)
	ListRequestsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]RequestView, error)
	ListRequestsForClient(ctx context.Context, clientID primitive.ObjectID) ([]RequestView, error)
}

type connectionService struct {
	requestRepo repository.RequestRepository
	profileRepo repository.ProfileRepository
}

// NewConnectionService creates a new instance of connectionService.
func NewConnectionService(requestRepo repository.RequestRepository, profileRepo repository.ProfileRepository) ConnectionService {
	return &connectionService{
		requestRepo: requestRepo,
		profileRepo: profileRepo,
	}
}

// SubmitRequest creates a pending request from the client to the
// trainer. Rejected when the target is not a trainer, when the client
// is already linked, or when a pending request for the pair exists.
// The service check gives a friendly error; the partial unique index
// closes the check-then-insert race.
func (s *connectionService) SubmitRequest(ctx context.Context, clientID, trainerID primitive.ObjectID, message string) (*domain.TrainerRequest, error) {
	if clientID == primitive.NilObjectID || trainerID == primitive.NilObjectID {
		return nil, errors.New("client ID and trainer ID are required")
	}

	trainer, err := s.profileRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}
	if !trainer.IsTrainer() {
		return nil, ErrNotATrainer
	}

	clientProfile, err := s.profileRepo.GetClientProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if clientProfile.TrainerID != nil {
		return nil, ErrAlreadyLinked
	}

	pending, err := s.requestRepo.HasPending(ctx, clientID, trainerID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicatePending
	}

	request := &domain.TrainerRequest{
		ClientID:  clientID,
		TrainerID: trainerID,
		Message:   message,
	}
	requestID, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateRequest) {
			return nil, ErrDuplicatePending
		}
		return nil, err
	}
	request.ID = requestID
	return request, nil
}

// ApproveRequest moves the request to approved and links the client to
// the trainer. The two writes happen atomically in the repository; on
// success client.trainerId == request.trainerId is guaranteed.
func (s *connectionService) ApproveRequest(ctx context.Context, trainerID, requestID primitive.ObjectID) (*domain.TrainerRequest, error) {
	if err := s.checkOwnership(ctx, trainerID, requestID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.ApproveAndLink(ctx, requestID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Ownership held above, so a miss here means the status
			// filter did not match: the request was decided in between.
			return nil, ErrRequestNotPending
		}
		return nil, err
	}
	return request, nil
}

// RejectRequest moves the request to rejected. No secondary write.
func (s *connectionService) RejectRequest(ctx context.Context, trainerID, requestID primitive.ObjectID) (*domain.TrainerRequest, error) {
	if err := s.checkOwnership(ctx, trainerID, requestID); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.Reject(ctx, requestID, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotPending
		}
		return nil, err
	}
	return request, nil
}

// checkOwnership distinguishes "no such request" and "not yours" from
// the pending-only update miss, so handlers can map them to 404/403.
func (s *connectionService) checkOwnership(ctx context.Context, trainerID, requestID primitive.ObjectID) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if request.TrainerID != trainerID {
		return ErrRequestAccessDenied
	}
	if request.Status.IsTerminal() {
		return ErrRequestNotPending
	}
	return nil
}

// ListRequestsForTrainer returns requests addressed to the trainer,
// newest first, with the requesting client's profile attached.
func (s *connectionService) ListRequestsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]RequestView, error) {
	requests, err := s.requestRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	return s.attachProfiles(ctx, requests, true), nil
}

// ListRequestsForClient returns the client's own requests, newest
// first, with each trainer's profile attached.
func (s *connectionService) ListRequestsForClient(ctx context.Context, clientID primitive.ObjectID) ([]RequestView, error) {
	requests, err := s.requestRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return s.attachProfiles(ctx, requests, false), nil
}

// attachProfiles loads the counterpart profile for each request. A
// profile lookup failure degrades to a bare request rather than
// failing the whole list.
func (s *connectionService) attachProfiles(ctx context.Context, requests []domain.TrainerRequest, forTrainer bool) []RequestView {
	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		view := RequestView{Request: req}
		if forTrainer {
			if client, err := s.profileRepo.GetByID(ctx, req.ClientID); err == nil {
				client.PasswordHash = ""
				view.Client = client
			}
		} else {
			if trainer, err := s.profileRepo.GetByID(ctx, req.TrainerID); err == nil {
				trainer.PasswordHash = ""
				view.Trainer = trainer
			}
		}
		views = append(views, view)
	}
	return views
}
