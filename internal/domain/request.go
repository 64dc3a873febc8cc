package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus type for the connection workflow lifecycle
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved" // Terminal
	RequestRejected RequestStatus = "rejected" // Terminal
)

// IsTerminal reports whether no further transition is allowed.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// TrainerRequest links one client to one trainer through a
// pending -> approved/rejected workflow. Created by the client,
// mutated only by the named trainer. At most one pending request
// may exist per (client, trainer) pair; a partial unique index
// backs that invariant.
type TrainerRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID  primitive.ObjectID `bson:"clientId" json:"clientId"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainerId"`
	Status    RequestStatus      `bson:"status" json:"status"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"` // Optional note from the client
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
