package domain

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseKind tags the variant of an exercise entry. The set is
// closed: every entry must be exactly one of these shapes.
type ExerciseKind string

const (
	ExerciseReps     ExerciseKind = "reps"     // sets x reps
	ExerciseDuration ExerciseKind = "duration" // timed hold/effort
	ExerciseDistance ExerciseKind = "distance" // run/row/cycle distance
)

// Exercise is one entry in a program's ordered exercise list.
// Which quantity fields are meaningful depends on Kind; Validate
// enforces the shape so that untyped blobs never reach storage.
type Exercise struct {
	Name            string       `bson:"name" json:"name"`
	Kind            ExerciseKind `bson:"kind" json:"kind"`
	Sets            int          `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps            int          `bson:"reps,omitempty" json:"reps,omitempty"`
	DurationSeconds int          `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"`
	DistanceMeters  int          `bson:"distanceMeters,omitempty" json:"distanceMeters,omitempty"`
	Notes           string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

var (
	ErrExerciseName  = errors.New("exercise name is required")
	ErrExerciseShape = errors.New("exercise quantities do not match its kind")
)

// Validate checks that the entry matches its declared kind.
func (e Exercise) Validate() error {
	if e.Name == "" {
		return ErrExerciseName
	}
	switch e.Kind {
	case ExerciseReps:
		if e.Sets <= 0 || e.Reps <= 0 || e.DurationSeconds != 0 || e.DistanceMeters != 0 {
			return ErrExerciseShape
		}
	case ExerciseDuration:
		if e.DurationSeconds <= 0 || e.Reps != 0 || e.DistanceMeters != 0 {
			return ErrExerciseShape
		}
	case ExerciseDistance:
		if e.DistanceMeters <= 0 || e.Reps != 0 || e.DurationSeconds != 0 {
			return ErrExerciseShape
		}
	default:
		return fmt.Errorf("unknown exercise kind %q", e.Kind)
	}
	return nil
}

// ValidateExercises validates a whole program list.
func ValidateExercises(exercises []Exercise) error {
	if len(exercises) == 0 {
		return errors.New("program requires at least one exercise")
	}
	for i, ex := range exercises {
		if err := ex.Validate(); err != nil {
			return fmt.Errorf("exercise %d (%s): %w", i+1, ex.Name, err)
		}
	}
	return nil
}

// WorkoutProgram is a named, owned exercise list. With ClientID unset
// and IsTemplate true it is a reusable template; assignment produces
// a value copy bound to a client, never a reference.
type WorkoutProgram struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID       primitive.ObjectID  `bson:"trainerId" json:"trainerId"` // Owner
	ClientID        *primitive.ObjectID `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Name            string              `bson:"name" json:"name"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	DifficultyLevel string              `bson:"difficultyLevel,omitempty" json:"difficultyLevel,omitempty"`
	DurationWeeks   int                 `bson:"durationWeeks,omitempty" json:"durationWeeks,omitempty"`
	IsTemplate      bool                `bson:"isTemplate" json:"isTemplate"`
	Exercises       []Exercise          `bson:"exercises" json:"exercises"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// CopyForClient snapshots the template's content into a new program
// bound to the given client. Subsequent edits to the template do not
// propagate to the copy.
func (p *WorkoutProgram) CopyForClient(clientID primitive.ObjectID) *WorkoutProgram {
	exercises := make([]Exercise, len(p.Exercises))
	copy(exercises, p.Exercises)

	return &WorkoutProgram{
		TrainerID:       p.TrainerID,
		ClientID:        &clientID,
		Name:            p.Name,
		Description:     p.Description,
		DifficultyLevel: p.DifficultyLevel,
		DurationWeeks:   p.DurationWeeks,
		IsTemplate:      false,
		Exercises:       exercises,
	}
}
