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

const sessionCollectionName = "video_sessions"

// mongoSessionRepository implements repository.SessionRepository.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new video-session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new scheduled session.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.VideoSession) (primitive.ObjectID, error) {
	if session.TrainerID == primitive.NilObjectID || session.ClientID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session requires trainerId and clientId")
	}

	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.VideoSession, error) {
	var session domain.VideoSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *mongoSessionRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.VideoSession, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

func (r *mongoSessionRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.VideoSession, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

// find returns matching sessions, upcoming/newest first.
func (r *mongoSessionRepository) find(ctx context.Context, filter bson.M) ([]domain.VideoSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sessionDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.VideoSession
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update writes the mutable session fields, scoped to the trainer.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.VideoSession) error {
	filter := bson.M{"_id": session.ID, "trainerId": session.TrainerID}
	update := bson.M{
		"$set": bson.M{
			"sessionDate":     session.SessionDate,
			"durationMinutes": session.DurationMinutes,
			"status":          session.Status,
			"meetingUrl":      session.MeetingURL,
			"transcript":      session.Transcript,
			"summary":         session.Summary,
			"actionItems":     session.ActionItems,
			"updatedAt":       time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSessionIndexes creates the video_sessions indexes.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "sessionDate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "sessionDate", Value: -1}},
		},
	})
	return err
}
