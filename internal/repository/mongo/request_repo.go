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

const requestCollectionName = "trainer_requests"

// mongoRequestRepository implements repository.RequestRepository.
// It keeps a handle to the database (not just the collection) because
// ApproveAndLink spans trainer_requests and client_profiles.
type mongoRequestRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewMongoRequestRepository creates a new trainer-request repository.
func NewMongoRequestRepository(db *mongo.Database) repository.RequestRepository {
	return &mongoRequestRepository{
		db:         db,
		collection: db.Collection(requestCollectionName),
	}
}

// Create inserts a new pending request. The partial unique index on
// (clientId, trainerId, status=pending) turns a duplicate submit into
// ErrDuplicateRequest even when two submits race.
func (r *mongoRequestRepository) Create(ctx context.Context, req *domain.TrainerRequest) (primitive.ObjectID, error) {
	if req.ClientID == primitive.NilObjectID || req.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("request requires clientId and trainerId")
	}

	req.ID = primitive.NewObjectID()
	req.Status = domain.RequestPending
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateRequest
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted request ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single request.
func (r *mongoRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainerRequest, error) {
	var req domain.TrainerRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *mongoRequestRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

func (r *mongoRequestRepository) GetByClientID(ctx context.Context, clientID primitive.ObjectID) ([]domain.TrainerRequest, error) {
	return r.find(ctx, bson.M{"clientId": clientID})
}

// find returns matching requests, newest first.
func (r *mongoRequestRepository) find(ctx context.Context, filter bson.M) ([]domain.TrainerRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []domain.TrainerRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// HasPending reports whether a pending request already exists for the pair.
func (r *mongoRequestRepository) HasPending(ctx context.Context, clientID, trainerID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"clientId":  clientID,
		"trainerId": trainerID,
		"status":    domain.RequestPending,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApproveAndLink flips the request to approved and sets the client's
// trainerId in one multi-document transaction. The request update
// filters on the owning trainer and pending status, so a request that
// was already decided aborts instead of overwriting. The client link
// itself is last-write-wins.
//
// Standalone mongod deployments do not support transactions; in that
// case the two writes run sequentially and a failure of the second is
// surfaced as ErrLinkFailed so the inconsistency is at least visible.
func (r *mongoRequestRepository) ApproveAndLink(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.approveAndLink(sc, requestID, trainerID)
	})
	if err == nil {
		return result.(*domain.TrainerRequest), nil
	}
	if !transactionsUnsupported(err) {
		return nil, err
	}

	// Fallback for topologies without replica-set transactions. A
	// failed approve left nothing written and reports as-is; a failed
	// link after a successful approve is a half-applied state and is
	// reported distinctly as ErrLinkFailed.
	req, err := r.approve(ctx, requestID, trainerID)
	if err != nil {
		return nil, err
	}
	if err := r.linkClient(ctx, req); err != nil {
		return nil, repository.ErrLinkFailed
	}
	return req, nil
}

// approveAndLink performs the two writes on whatever context it is
// given (transactional or plain).
func (r *mongoRequestRepository) approveAndLink(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	req, err := r.approve(ctx, requestID, trainerID)
	if err != nil {
		return nil, err
	}
	if err := r.linkClient(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// approve flips a pending request owned by the trainer to approved.
func (r *mongoRequestRepository) approve(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": requestID, "trainerId": trainerID, "status": domain.RequestPending},
		bson.M{"$set": bson.M{"status": domain.RequestApproved, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var req domain.TrainerRequest
	if err := res.Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// linkClient writes the client's trainerId from an approved request.
func (r *mongoRequestRepository) linkClient(ctx context.Context, req *domain.TrainerRequest) error {
	link, err := r.db.Collection(clientProfileCollectionName).UpdateOne(ctx,
		bson.M{"_id": req.ClientID},
		bson.M{"$set": bson.M{"trainerId": req.TrainerID}},
	)
	if err != nil {
		return err
	}
	if link.MatchedCount == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

// Reject flips a pending request to rejected. Single write, no link.
func (r *mongoRequestRepository) Reject(ctx context.Context, requestID, trainerID primitive.ObjectID) (*domain.TrainerRequest, error) {
	res := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": requestID, "trainerId": trainerID, "status": domain.RequestPending},
		bson.M{"$set": bson.M{"status": domain.RequestRejected, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var req domain.TrainerRequest
	if err := res.Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// transactionsUnsupported detects the server refusing transaction
// machinery (standalone mongod: IllegalOperation code 20).
func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == 20
}

// EnsureRequestIndexes creates the trainer_requests indexes. The
// partial unique index is what makes "one pending request per
// (client, trainer)" hold under concurrent submits.
func EnsureRequestIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "trainerId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.RequestPending)}),
		},
		{
			Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	return err
}
