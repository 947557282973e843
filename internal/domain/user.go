package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAthlete Role = "athlete"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

// User represents an account in the system (athlete, coach or admin).
// Users are never hard-deleted; lifecycle is soft only.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email" validate:"required,email"` // Should be unique
	PasswordHash        string             `bson:"passwordHash" json:"-"`                        // Never expose this via JSON
	Role                Role               `bson:"role" json:"role" validate:"omitempty,oneof=athlete coach admin"`
	AvatarURL           string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	OnboardingCompleted bool               `bson:"onboardingCompleted" json:"onboardingCompleted"`
	TrainingGoal        string             `bson:"trainingGoal,omitempty" json:"trainingGoal,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Athlete-specific ---
	// The coach currently responsible for this athlete.
	CoachID *primitive.ObjectID `bson:"coachId,omitempty" json:"coachId,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsAthlete() bool {
	return u.Role == RoleAthlete
}
