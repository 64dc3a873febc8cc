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

const programCollectionName = "workout_programs"

// mongoProgramRepository implements repository.ProgramRepository.
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new workout-program repository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program (template or client copy).
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	if program.TrainerID == primitive.NilObjectID || program.Name == "" {
		return primitive.NilObjectID, errors.New("program requires trainerId and name")
	}

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted program ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single program.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	var program domain.WorkoutProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetTemplatesByTrainerID retrieves the trainer's reusable templates,
// newest first.
func (r *mongoProgramRepository) GetTemplatesByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID, "isTemplate": true})
}

// GetByClientID retrieves programs assigned to the client, newest first.
func (r *mongoProgramRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

func (r *mongoProgramRepository) find(ctx context.Context, filter bson.M) ([]domain.WorkoutProgram, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.WorkoutProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// Update rewrites the program's content fields, scoped to the owner.
func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	filter := bson.M{"_id": program.ID, "trainerId": program.TrainerID}
	update := bson.M{
		"$set": bson.M{
			"name":            program.Name,
			"description":     program.Description,
			"difficultyLevel": program.DifficultyLevel,
			"durationWeeks":   program.DurationWeeks,
			"exercises":       program.Exercises,
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

// Delete removes a program owned by the trainer.
func (r *mongoProgramRepository) Delete(ctx context.Context, id, trainerID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "trainerId": trainerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates the workout_programs indexes.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "isTemplate", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	return err
}
