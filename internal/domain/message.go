package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType loosely categorizes a message for the UI.
type MessageType string

const (
	MessageGeneral        MessageType = "general"
	MessageTrainerMessage MessageType = "trainer_message"
	MessageCheckInReply   MessageType = "checkin_reply"
)

// Message is a single directed text record between two users. A
// conversation is the two-sided union of directed rows; there is no
// conversation entity. Messages are immutable once sent, except for
// ReadAt which the recipient may set.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    primitive.ObjectID `bson:"senderId" json:"senderId"`
	RecipientID primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	Content     string             `bson:"content" json:"content"`
	Type        MessageType        `bson:"type,omitempty" json:"type,omitempty"`
	ReadAt      *time.Time         `bson:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
