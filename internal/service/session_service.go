package service

import (
	"context"
	"errors"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionAccessDenied = errors.New("session does not belong to this trainer")
	ErrInvalidSessionState = errors.New("invalid session status")
)

// SessionUpdate carries the mutable fields of a video session. Nil
// pointers leave the stored value untouched.
type SessionUpdate struct {
	SessionDate     *time.Time
	DurationMinutes *int
	Status          *domain.SessionStatus
	MeetingURL      *string
	Transcript      *string
	Summary         *string
	ActionItems     []string
}

// SessionService manages video coaching sessions.
type SessionService interface {
	Schedule(ctx context.Context, trainerID, clientID primitive.ObjectID, date time.Time, durationMinutes int, meetingURL string) (*domain.VideoSession, error)
	Update(ctx context.Context, trainerID, sessionID primitive.ObjectID, update SessionUpdate) (*domain.VideoSession, error)
	ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.VideoSession, error)
	ListForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.VideoSession, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository, profileRepo repository.ProfileRepository) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
	}
}

// Schedule creates a session between the trainer and one of their
// linked clients.
func (s *sessionService) Schedule(ctx context.Context, trainerID, clientID primitive.ObjectID, date time.Time, durationMinutes int, meetingURL string) (*domain.VideoSession, error) {
	if date.IsZero() {
		return nil, errors.New("session date is required")
	}

	clientProfile, err := s.profileRepo.GetClientProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	if !clientProfile.HasTrainer(trainerID) {
		return nil, ErrClientNotLinked
	}

	session := &domain.VideoSession{
		TrainerID:       trainerID,
		ClientID:        clientID,
		SessionDate:     date,
		DurationMinutes: durationMinutes,
		Status:          domain.SessionScheduled,
		MeetingURL:      meetingURL,
	}
	sessionID, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, err
	}
	session.ID = sessionID
	return session, nil
}

// Update applies the trainer's changes: reschedule, status change, or
// post-call transcript/summary write-back.
func (s *sessionService) Update(ctx context.Context, trainerID, sessionID primitive.ObjectID, update SessionUpdate) (*domain.VideoSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.TrainerID != trainerID {
		return nil, ErrSessionAccessDenied
	}

	if update.Status != nil {
		if !domain.ValidSessionStatus(*update.Status) {
			return nil, ErrInvalidSessionState
		}
		session.Status = *update.Status
	}
	if update.SessionDate != nil {
		session.SessionDate = *update.SessionDate
	}
	if update.DurationMinutes != nil {
		session.DurationMinutes = *update.DurationMinutes
	}
	if update.MeetingURL != nil {
		session.MeetingURL = *update.MeetingURL
	}
	if update.Transcript != nil {
		session.Transcript = *update.Transcript
	}
	if update.Summary != nil {
		session.Summary = *update.Summary
	}
	if update.ActionItems != nil {
		session.ActionItems = update.ActionItems
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ListForTrainer returns the trainer's sessions, most recent date first.
func (s *sessionService) ListForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.VideoSession, error) {
	return s.sessionRepo.GetByTrainerID(ctx, trainerID)
}

// ListForClient returns the client's sessions.
func (s *sessionService) ListForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.VideoSession, error) {
	return s.sessionRepo.GetByClientID(ctx, clientID)
}
