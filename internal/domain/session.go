package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus type for video session lifecycle
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// ValidSessionStatus reports whether s is a defined status.
func ValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// VideoSession is a scheduled coaching call between a trainer and one
// of their clients. Transcript and Summary are written back after the
// call by the trainer (or an external transcription service).
type VideoSession struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID       primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	ClientID        primitive.ObjectID `bson:"clientId" json:"clientId"`
	SessionDate     time.Time          `bson:"sessionDate" json:"sessionDate"`
	DurationMinutes int                `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Status          SessionStatus      `bson:"status" json:"status"`
	MeetingURL      string             `bson:"meetingUrl,omitempty" json:"meetingUrl,omitempty"`
	Transcript      string             `bson:"transcript,omitempty" json:"transcript,omitempty"`
	Summary         string             `bson:"summary,omitempty" json:"summary,omitempty"`
	ActionItems     []string           `bson:"actionItems,omitempty" json:"actionItems,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
