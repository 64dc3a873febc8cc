package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler manages direct messages between trainers and clients.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// --- DTOs ---

type SendMessageRequest struct {
	RecipientID string `json:"recipientId" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Type        string `json:"type" binding:"omitempty,oneof=general trainer_message checkin_reply"`
}

type MarkReadRequest struct {
	MessageIDs []string `json:"messageIds" binding:"required,min=1"`
}

// --- Handlers ---

// SendMessage delivers a message from the caller to a recipient.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	senderID, ok := callerObjectID(c)
	if !ok {
		return
	}
	recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid recipient ID format.")
		return
	}

	msg, err := h.messageService.Send(c.Request.Context(), senderID, recipientID, req.Content, domain.MessageType(req.Type))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage), errors.Is(err, service.ErrSelfMessage):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrRecipientUnknown):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to send message.")
		}
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// GetConversation returns the message history with another user, oldest first.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	viewerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	otherID, ok := pathObjectID(c, "userId")
	if !ok {
		return
	}

	messages, err := h.messageService.Conversation(c.Request.Context(), viewerID, otherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load conversation.")
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessagesRead flags messages addressed to the caller as read.
func (h *MessageHandler) MarkMessagesRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	recipientID, ok := callerObjectID(c)
	if !ok {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.MessageIDs))
	for _, raw := range req.MessageIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid message ID format.")
			return
		}
		ids = append(ids, id)
	}

	updated, err := h.messageService.MarkRead(c.Request.Context(), recipientID, ids)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to mark messages read.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// GetUnreadCount reports how many messages from another user are unread.
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	viewerID, ok := callerObjectID(c)
	if !ok {
		return
	}
	otherID, ok := pathObjectID(c, "userId")
	if !ok {
		return
	}

	count, err := h.messageService.UnreadCount(c.Request.Context(), viewerID, otherID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to count unread messages.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
