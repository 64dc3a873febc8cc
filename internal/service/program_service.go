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
	ErrProgramNotFound     = errors.New("program not found")
	ErrProgramAccessDenied = errors.New("program does not belong to this trainer")
	ErrNotATemplate        = errors.New("program is not a template")
	ErrClientNotLinked     = errors.New("client is not linked to this trainer")
	ErrInvalidExercises    = errors.New("invalid exercise list")
)

// ProgramService manages workout program templates and their
// client-bound copies.
type ProgramService interface {
	CreateTemplate(ctx context.Context, trainerID primitive.ObjectID, program *domain.WorkoutProgram) (*domain.WorkoutProgram, error)
	UpdateTemplate(ctx context.Context, trainerID primitive.ObjectID, program *domain.WorkoutProgram) (*domain.WorkoutProgram, error)
	DeleteTemplate(ctx context.Context, trainerID, programID primitive.ObjectID) error
	ListTemplates(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutProgram, error)

	// AssignTemplate copies the template's content into a new program
	// bound to the client. Snapshot semantics: later template edits
	// never propagate to the copy.
	AssignTemplate(ctx context.Context, trainerID, templateID, clientID primitive.ObjectID) (*domain.WorkoutProgram, error)

	// CreateForClient stores a one-off program written directly for a
	// linked client, without going through a template.
	CreateForClient(ctx context.Context, trainerID, clientID primitive.ObjectID, program *domain.WorkoutProgram) (*domain.WorkoutProgram, error)

	ListProgramsForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	ListClientProgramsForTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error)
}

type programService struct {
	programRepo repository.ProgramRepository
	profileRepo repository.ProfileRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository, profileRepo repository.ProfileRepository) ProgramService {
	return &programService{
		programRepo: programRepo,
		profileRepo: profileRepo,
	}
}

// CreateTemplate validates the exercise list and stores a reusable
// template owned by the trainer.
func (s *programService) CreateTemplate(ctx context.Context, trainerID primitive.ObjectID, program *domain.WorkoutProgram) (*domain.WorkoutProgram, error) {
	if trainerID == primitive.NilObjectID || program == nil || program.Name == "" {
		return nil, errors.New("trainer ID and program name are required")
	}
	if err := domain.ValidateExercises(program.Exercises); err != nil {
		return nil, errors.Join(ErrInvalidExercises, err)
	}

	program.TrainerID = trainerID
	program.ClientID = nil
	program.IsTemplate = true

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = programID
	return program, nil
}

// UpdateTemplate rewrites an owned template's content.
func (s *programService) UpdateTemplate(ctx context.Context, trainerID primitive.ObjectID, program *domain.WorkoutProgram) (*domain.WorkoutProgram, error) {
	existing, err := s.getOwned(ctx, trainerID, program.ID)
	if err != nil {
		return nil, err
	}
	if !existing.IsTemplate {
		return nil, ErrNotATemplate
	}
	if err := domain.ValidateExercises(program.Exercises); err != nil {
		return nil, errors.Join(ErrInvalidExercises, err)
	}

	program.TrainerID = trainerID
	if err := s.programRepo.Update(ctx, program); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// DeleteTemplate removes an owned template. Client-bound copies are
// never deleted through this path.
func (s *programService) DeleteTemplate(ctx context.Context, trainerID, programID primitive.ObjectID) error {
	existing, err := s.getOwned(ctx, trainerID, programID)
	if err != nil {
		return err
	}
	if !existing.IsTemplate {
		return ErrNotATemplate
	}
	return s.programRepo.Delete(ctx, programID, trainerID)
}

// ListTemplates returns the trainer's templates, newest first.
func (s *programService) ListTemplates(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	return s.programRepo.GetTemplatesByTrainerID(ctx, trainerID)
}

// AssignTemplate performs the snapshot copy: a new row carrying the
// template's name, description, difficulty, duration, and exercises,
// bound to the client with isTemplate=false.
func (s *programService) AssignTemplate(ctx context.Context, trainerID, templateID, clientID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	template, err := s.getOwned(ctx, trainerID, templateID)
	if err != nil {
		return nil, err
	}
	if !template.IsTemplate {
		return nil, ErrNotATemplate
	}

	if err := s.requireLink(ctx, trainerID, clientID); err != nil {
		return nil, err
	}

	programCopy := template.CopyForClient(clientID)
	copyID, err := s.programRepo.Create(ctx, programCopy)
	if err != nil {
		return nil, err
	}
	programCopy.ID = copyID
	return programCopy, nil
}

// CreateForClient validates and stores a program authored directly
// for one linked client.
func (s *programService) CreateForClient(ctx context.Context, trainerID, clientID primitive.ObjectID, program *domain.WorkoutProgram) (*domain.WorkoutProgram, error) {
	if trainerID == primitive.NilObjectID || program == nil || program.Name == "" {
		return nil, errors.New("trainer ID and program name are required")
	}
	if err := domain.ValidateExercises(program.Exercises); err != nil {
		return nil, errors.Join(ErrInvalidExercises, err)
	}
	if err := s.requireLink(ctx, trainerID, clientID); err != nil {
		return nil, err
	}

	program.TrainerID = trainerID
	program.ClientID = &clientID
	program.IsTemplate = false

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	program.ID = programID
	return program, nil
}

// ListProgramsForClient returns the client's own assigned programs.
func (s *programService) ListProgramsForClient(ctx context.Context, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	return s.programRepo.GetByClientID(ctx, clientID)
}

// ListClientProgramsForTrainer is the trainer's view of one linked
// client's programs.
func (s *programService) ListClientProgramsForTrainer(ctx context.Context, trainerID, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	if err := s.requireLink(ctx, trainerID, clientID); err != nil {
		return nil, err
	}
	return s.programRepo.GetByClientID(ctx, clientID)
}

// getOwned fetches a program and verifies trainer ownership.
func (s *programService) getOwned(ctx context.Context, trainerID, programID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.TrainerID != trainerID {
		return nil, ErrProgramAccessDenied
	}
	return program, nil
}

// requireLink verifies the client has an approved connection to the
// trainer.
func (s *programService) requireLink(ctx context.Context, trainerID, clientID primitive.ObjectID) error {
	clientProfile, err := s.profileRepo.GetClientProfile(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	if !clientProfile.HasTrainer(trainerID) {
		return ErrClientNotLinked
	}
	return nil
}
