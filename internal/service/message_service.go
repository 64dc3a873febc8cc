package service

import (
	"context"
	"errors"
	"strings"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrEmptyMessage     = errors.New("message content cannot be empty")
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
	ErrRecipientUnknown = errors.New("recipient not found")
)

// MessageService handles directed messages between two users.
type MessageService interface {
	Send(ctx context.Context, senderID, recipientID primitive.ObjectID, content string, msgType domain.MessageType) (*domain.Message, error)

	// Conversation returns all rows between the viewer and the other
	// party, both directions, oldest first.
	Conversation(ctx context.Context, viewerID, otherID primitive.ObjectID) ([]domain.Message, error)

	MarkRead(ctx context.Context, recipientID primitive.ObjectID, messageIDs []primitive.ObjectID) (int64, error)
	UnreadCount(ctx context.Context, viewerID, otherID primitive.ObjectID) (int64, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	profileRepo repository.ProfileRepository
}

// NewMessageService creates a new instance of messageService.
func NewMessageService(messageRepo repository.MessageRepository, profileRepo repository.ProfileRepository) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		profileRepo: profileRepo,
	}
}

// Send stores one directed row. Blank or whitespace-only content is
// refused; messages are immutable once stored.
func (s *messageService) Send(ctx context.Context, senderID, recipientID primitive.ObjectID, content string, msgType domain.MessageType) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}

	if _, err := s.profileRepo.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecipientUnknown
		}
		return nil, err
	}

	if msgType == "" {
		msgType = domain.MessageGeneral
	}

	msg := &domain.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Type:        msgType,
	}
	msgID, err := s.messageRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = msgID
	return msg, nil
}

// Conversation returns the two-sided union with the other party,
// ordered ascending by creation time.
func (s *messageService) Conversation(ctx context.Context, viewerID, otherID primitive.ObjectID) ([]domain.Message, error) {
	return s.messageRepo.GetConversation(ctx, viewerID, otherID)
}

// MarkRead sets readAt on the given messages where the caller is the
// recipient. Rows the caller does not own are silently skipped.
func (s *messageService) MarkRead(ctx context.Context, recipientID primitive.ObjectID, messageIDs []primitive.ObjectID) (int64, error) {
	return s.messageRepo.MarkRead(ctx, recipientID, messageIDs)
}

// UnreadCount counts messages from the other party the viewer has not
// read yet.
func (s *messageService) UnreadCount(ctx context.Context, viewerID, otherID primitive.ObjectID) (int64, error) {
	return s.messageRepo.CountUnread(ctx, viewerID, otherID)
}
