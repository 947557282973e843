package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is a training plan composed of ordered days. A routine with no
// AthleteID is a template a coach can copy for any athlete.
type Routine struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AthleteID *primitive.ObjectID `bson:"athleteId,omitempty" json:"athleteId,omitempty"`
	CoachID   primitive.ObjectID  `bson:"coachId" json:"coachId"`
	Name      string              `bson:"name" json:"name" validate:"required"`
	Days      []RoutineDay        `bson:"days" json:"days"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// RoutineDay groups the exercises prescribed for one training day.
type RoutineDay struct {
	Name      string            `bson:"name" json:"name"`
	Exercises []RoutineExercise `bson:"exercises" json:"exercises"`
}

// RoutineExercise references an Exercise from the library and carries the
// prescribed sets. Name is denormalized so routines render without a join.
type RoutineExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name       string             `bson:"name" json:"name"`
	Sets       []RoutineSet       `bson:"sets" json:"sets"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
}

// RoutineSet is one prescribed set within a routine exercise.
type RoutineSet struct {
	TargetReps   int     `bson:"targetReps" json:"targetReps"`
	TargetRPE    float64 `bson:"targetRpe,omitempty" json:"targetRpe,omitempty"`
	TargetWeight float64 `bson:"targetWeight,omitempty" json:"targetWeight,omitempty"` // kg
	RestSeconds  int     `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
}
