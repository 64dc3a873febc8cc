package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

// Profile is the base identity record common to all users.
// Role-specific data lives in TrainerProfile / ClientProfile,
// stored 1:1 under the same ID.
type Profile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`    // Unique index enforced at the collection
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`      // Immutable after signup
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Profile) IsTrainer() bool {
	return p.Role == RoleTrainer
}

func (p *Profile) IsClient() bool {
	return p.Role == RoleClient
}

// TrainerProfile extends a Profile of role trainer.
// ID always equals the base Profile's ID.
type TrainerProfile struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	BusinessName    string             `bson:"businessName,omitempty" json:"businessName,omitempty"`
	HourlyRate      float64            `bson:"hourlyRate,omitempty" json:"hourlyRate,omitempty"`
	ExperienceYears int                `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	Specializations []string           `bson:"specializations,omitempty" json:"specializations,omitempty"`
	Certifications  []string           `bson:"certifications,omitempty" json:"certifications,omitempty"`
	Timezone        string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
	LogoURL         string             `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
}

// ClientProfile extends a Profile of role client.
// TrainerID is only ever set through an approved TrainerRequest;
// it is the single place where two parties' data intersect.
type ClientProfile struct {
	ID                primitive.ObjectID  `bson:"_id" json:"id"`
	TrainerID         *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	Goals             []string            `bson:"goals,omitempty" json:"goals,omitempty"`
	FitnessLevel      string              `bson:"fitnessLevel,omitempty" json:"fitnessLevel,omitempty"` // e.g. "beginner", "intermediate", "advanced"
	HeightCm          float64             `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg          float64             `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	DateOfBirth       *time.Time          `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	MedicalConditions []string            `bson:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`
}

// HasTrainer reports whether the client is linked to the given trainer.
func (c *ClientProfile) HasTrainer(trainerID primitive.ObjectID) bool {
	return c.TrainerID != nil && *c.TrainerID == trainerID
}
