package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingLog records one completed training session. It is written once by
// the athlete (possibly retroactively) and never mutated afterwards.
type TrainingLog struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId" validate:"required"`
	RoutineID       *primitive.ObjectID `bson:"routineId,omitempty" json:"routineId,omitempty"`
	RoutineDayName  string              `bson:"routineDayName,omitempty" json:"routineDayName,omitempty"`
	CompletedAt     time.Time           `bson:"completedAt" json:"completedAt"`
	DurationSeconds int                 `bson:"durationSeconds" json:"durationSeconds" validate:"gte=0"`
	TotalVolume     float64             `bson:"totalVolume" json:"totalVolume"` // sum of weight*reps across all sets, kg
	Exercises       []LoggedExercise    `bson:"exercises" json:"exercises"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}

// LoggedExercise is the actual performance for one exercise in a session.
type LoggedExercise struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	Name       string             `bson:"name" json:"name"`
	Sets       []LoggedSet        `bson:"sets" json:"sets"`
}

// LoggedSet is one performed set.
type LoggedSet struct {
	Weight float64 `bson:"weight" json:"weight"` // kg
	Reps   int     `bson:"reps" json:"reps"`
	RPE    float64 `bson:"rpe,omitempty" json:"rpe,omitempty"`
}

// Volume returns weight*reps summed over the sets of this exercise.
func (e LoggedExercise) Volume() float64 {
	var total float64
	for _, s := range e.Sets {
		total += s.Weight * float64(s.Reps)
	}
	return total
}
