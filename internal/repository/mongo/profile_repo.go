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

const (
	profileCollectionName        = "profiles"
	trainerProfileCollectionName = "trainer_profiles"
	clientProfileCollectionName  = "client_profiles"
)

// mongoProfileRepository implements repository.ProfileRepository.
// The base profile and its role extension live in separate
// collections sharing the same _id, mirroring the 1:1 split of the
// relational schema.
type mongoProfileRepository struct {
	profiles        *mongo.Collection
	trainerProfiles *mongo.Collection
	clientProfiles  *mongo.Collection
}

// NewMongoProfileRepository creates a new profile repository backed by
// the given database.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		profiles:        db.Collection(profileCollectionName),
		trainerProfiles: db.Collection(trainerProfileCollectionName),
		clientProfiles:  db.Collection(clientProfileCollectionName),
	}
}

// Create inserts a new base profile.
func (r *mongoProfileRepository) Create(ctx context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
	if profile.Email == "" || profile.PasswordHash == "" || profile.Role == "" {
		return primitive.NilObjectID, errors.New("profile email, password hash, and role are required")
	}

	profile.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	result, err := r.profiles.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateEmail
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a profile by email address.
func (r *mongoProfileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.profiles.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByID retrieves a profile by its ObjectID.
func (r *mongoProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.profiles.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Update writes the mutable base-profile fields. Email and Role are
// deliberately not part of the update document: the role discriminator
// is immutable after signup.
func (r *mongoProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	filter := bson.M{"_id": profile.ID}
	update := bson.M{
		"$set": bson.M{
			"fullName":  profile.FullName,
			"avatarUrl": profile.AvatarURL,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.profiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListTrainers retrieves all profiles with the trainer role, newest first.
func (r *mongoProfileRepository) ListTrainers(ctx context.Context) ([]domain.Profile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.profiles.Find(ctx, bson.M{"role": domain.RoleTrainer}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trainers []domain.Profile
	if err = cursor.All(ctx, &trainers); err != nil {
		return nil, err
	}
	return trainers, nil
}

// === Trainer extension ===

func (r *mongoProfileRepository) CreateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error {
	if tp.ID == primitive.NilObjectID {
		return errors.New("trainer profile requires the base profile ID")
	}
	_, err := r.trainerProfiles.InsertOne(ctx, tp)
	return err
}

func (r *mongoProfileRepository) GetTrainerProfile(ctx context.Context, id primitive.ObjectID) (*domain.TrainerProfile, error) {
	var tp domain.TrainerProfile
	err := r.trainerProfiles.FindOne(ctx, bson.M{"_id": id}).Decode(&tp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tp, nil
}

func (r *mongoProfileRepository) UpdateTrainerProfile(ctx context.Context, tp *domain.TrainerProfile) error {
	filter := bson.M{"_id": tp.ID}
	update := bson.M{
		"$set": bson.M{
			"bio":             tp.Bio,
			"businessName":    tp.BusinessName,
			"hourlyRate":      tp.HourlyRate,
			"experienceYears": tp.ExperienceYears,
			"specializations": tp.Specializations,
			"certifications":  tp.Certifications,
			"timezone":        tp.Timezone,
			"logoUrl":         tp.LogoURL,
		},
	}

	result, err := r.trainerProfiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// === Client extension ===

func (r *mongoProfileRepository) CreateClientProfile(ctx context.Context, cp *domain.ClientProfile) error {
	if cp.ID == primitive.NilObjectID {
		return errors.New("client profile requires the base profile ID")
	}
	_, err := r.clientProfiles.InsertOne(ctx, cp)
	return err
}

func (r *mongoProfileRepository) GetClientProfile(ctx context.Context, id primitive.ObjectID) (*domain.ClientProfile, error) {
	var cp domain.ClientProfile
	err := r.clientProfiles.FindOne(ctx, bson.M{"_id": id}).Decode(&cp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

// UpdateClientProfile writes the client's own fields. TrainerID is NOT
// part of the update document; the link is only ever written by the
// request approval path.
func (r *mongoProfileRepository) UpdateClientProfile(ctx context.Context, cp *domain.ClientProfile) error {
	filter := bson.M{"_id": cp.ID}
	update := bson.M{
		"$set": bson.M{
			"goals":             cp.Goals,
			"fitnessLevel":      cp.FitnessLevel,
			"heightCm":          cp.HeightCm,
			"weightKg":          cp.WeightKg,
			"dateOfBirth":       cp.DateOfBirth,
			"medicalConditions": cp.MedicalConditions,
		},
	}

	result, err := r.clientProfiles.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetClientsByTrainerID retrieves all client extensions linked to the trainer.
func (r *mongoProfileRepository) GetClientsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.ClientProfile, error) {
	cursor, err := r.clientProfiles.Find(ctx, bson.M{"trainerId": trainerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clients []domain.ClientProfile
	if err = cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// EnsureProfileIndexes creates the indexes for the profile collections.
// Call once during application startup.
func EnsureProfileIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(profileCollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(clientProfileCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "trainerId", Value: 1}},
		Options: options.Index().SetSparse(true),
	})
	return err
}
