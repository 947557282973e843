package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationKind classifies system-generated notifications.
type NotificationKind string

const (
	NotificationWorkoutLogged   NotificationKind = "workout_logged"
	NotificationRoutineAssigned NotificationKind = "routine_assigned"
)

// Notification is created by system events, e.g. an athlete completing a
// workout notifies their coach.
type Notification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientID primitive.ObjectID `bson:"recipientId" json:"recipientId" validate:"required"`
	Kind        NotificationKind   `bson:"kind" json:"kind"`
	Message     string             `bson:"message,omitempty" json:"message,omitempty"`
	Read        bool               `bson:"read" json:"read"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
