package mongo

import (
	"context"
	"errors"
	"time"

	"fitlink/coaching-app/internal/domain"
	"fitlink/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const messageCollectionName = "messages"

// mongoMessageRepository implements repository.MessageRepository.
type mongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new message repository.
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	return &mongoMessageRepository{
		collection: db.Collection(messageCollectionName),
	}
}

// Create inserts a new directed message.
func (r *mongoMessageRepository) Create(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	if msg.SenderID == primitive.NilObjectID || msg.RecipientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("message requires senderId and recipientId")
	}

	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted message ID")
	}
	return insertedID, nil
}

// GetConversation returns the two-sided union of directed rows between
// a and b, ordered by creation time ascending.
func (r *mongoMessageRepository) GetConversation(ctx context.Context, a, b primitive.ObjectID) ([]domain.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"senderId": a, "recipientId": b},
			bson.M{"senderId": b, "recipientId": a},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead sets readAt on the given messages, but only where the
// caller is the recipient and readAt is still unset. Returns how many
// rows were actually marked.
func (r *mongoMessageRepository) MarkRead(ctx context.Context, recipientID primitive.ObjectID, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	filter := bson.M{
		"_id":         bson.M{"$in": ids},
		"recipientId": recipientID,
		"readAt":      nil,
	}
	update := bson.M{"$set": bson.M{"readAt": time.Now().UTC()}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CountUnread counts messages from sender to recipient with readAt unset.
func (r *mongoMessageRepository) CountUnread(ctx context.Context, recipientID, senderID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"recipientId": recipientID,
		"senderId":    senderID,
		"readAt":      nil,
	})
}

// EnsureMessageIndexes creates the messages indexes.
func EnsureMessageIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "senderId", Value: 1}, {Key: "recipientId", Value: 1}, {Key: "createdAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "recipientId", Value: 1}, {Key: "readAt", Value: 1}},
		},
	})
	return err
}
