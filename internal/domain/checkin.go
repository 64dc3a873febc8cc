package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feeling is the client's workout-feeling selection on a 5-point scale.
type Feeling string

const (
	FeelingExhausted Feeling = "exhausted"
	FeelingTired     Feeling = "tired"
	FeelingGood      Feeling = "good"
	FeelingStrong    Feeling = "strong"
	FeelingOnFire    Feeling = "on_fire"
)

// EnergyLevel is the energy comparison against the previous week.
type EnergyLevel string

const (
	EnergyMuchLower  EnergyLevel = "much_lower"
	EnergyLower      EnergyLevel = "lower"
	EnergySame       EnergyLevel = "same"
	EnergyHigher     EnergyLevel = "higher"
	EnergyMuchHigher EnergyLevel = "much_higher"
)

// ValidFeeling reports whether f is one of the defined selections.
func ValidFeeling(f Feeling) bool {
	switch f {
	case FeelingExhausted, FeelingTired, FeelingGood, FeelingStrong, FeelingOnFire:
		return true
	}
	return false
}

// ValidEnergyLevel reports whether e is one of the defined selections.
func ValidEnergyLevel(e EnergyLevel) bool {
	switch e {
	case EnergyMuchLower, EnergyLower, EnergySame, EnergyHigher, EnergyMuchHigher:
		return true
	}
	return false
}

// CheckInResponses is the structured self-report submitted by the client.
type CheckInResponses struct {
	Feeling Feeling     `bson:"feeling" json:"feeling"`
	Energy  EnergyLevel `bson:"energy" json:"energy"`
	Notes   string      `bson:"notes,omitempty" json:"notes,omitempty"`
}

// CheckIn is a client's periodic self-report, optionally annotated by
// the trainer or an external summarizer. Check-ins are never deleted.
type CheckIn struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID        primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID       primitive.ObjectID `bson:"trainerId" json:"trainerId"` // Denormalized from the client's link at submit time
	WeekNumber      int                `bson:"weekNumber" json:"weekNumber"`
	Responses       CheckInResponses   `bson:"responses" json:"responses"`
	ProgressPhotos  []string           `bson:"progressPhotos,omitempty" json:"progressPhotos,omitempty"` // Object keys in storage
	Summary         string             `bson:"summary,omitempty" json:"summary,omitempty"`
	TrainerFeedback string             `bson:"trainerFeedback,omitempty" json:"trainerFeedback,omitempty"`
	ReviewedAt      *time.Time         `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	SubmittedAt     time.Time          `bson:"submittedAt" json:"submittedAt"`
}

// WeekOfMonth buckets a date into a week number as day-of-month / 7,
// rounded up. Deliberately not calendar-aware: the 29th..31st land in
// week 5 regardless of weekday.
func WeekOfMonth(t time.Time) int {
	return (t.Day() + 6) / 7
}
