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

const checkInCollectionName = "check_ins"

// mongoCheckInRepository implements repository.CheckInRepository.
type mongoCheckInRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckInRepository creates a new check-in repository.
func NewMongoCheckInRepository(db *mongo.Database) repository.CheckInRepository {
	return &mongoCheckInRepository{
		collection: db.Collection(checkInCollectionName),
	}
}

// Create inserts a new check-in.
func (r *mongoCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	if checkIn.ClientID == primitive.NilObjectID || checkIn.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("check-in requires clientId and trainerId")
	}

	checkIn.ID = primitive.NewObjectID()
	checkIn.SubmittedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, checkIn)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted check-in ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single check-in.
func (r *mongoCheckInRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&checkIn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

func (r *mongoCheckInRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.CheckIn, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *mongoCheckInRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.CheckIn, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

func (r *mongoCheckInRepository) find(ctx context.Context, filter bson.M) ([]domain.CheckIn, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var checkIns []domain.CheckIn
	if err = cursor.All(ctx, &checkIns); err != nil {
		return nil, err
	}
	return checkIns, nil
}

// Update writes the annotation fields. The client's responses are
// immutable after submission; only trainer feedback, the summary,
// review timestamp, and photo keys can change.
func (r *mongoCheckInRepository) Update(ctx context.Context, checkIn *domain.CheckIn) error {
	filter := bson.M{"_id": checkIn.ID}
	update := bson.M{
		"$set": bson.M{
			"trainerFeedback": checkIn.TrainerFeedback,
			"summary":         checkIn.Summary,
			"reviewedAt":      checkIn.ReviewedAt,
			"progressPhotos":  checkIn.ProgressPhotos,
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

// EnsureCheckInIndexes creates the check_ins indexes.
func EnsureCheckInIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "submittedAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "submittedAt", Value: -1}},
		},
	})
	return err
}
