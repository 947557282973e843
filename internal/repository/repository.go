package repository

import (
	"context"
	"time"

	"entrena/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// ListAthletes returns every user whose role is not coach.
	ListAthletes(ctx context.Context) ([]domain.User, error)
	SetOnboardingCompleted(ctx context.Context, id primitive.ObjectID, goal string) error
	AssignCoach(ctx context.Context, athleteID, coachID primitive.ObjectID) error
}

// RoutineRepository defines the interface for interacting with routine data.
type RoutineRepository interface {
	// Save inserts the routine when it has no ID yet, otherwise replaces it.
	Save(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetActiveByAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.Routine, error)
	ListByAthlete(ctx context.Context, athleteID primitive.ObjectID) ([]domain.Routine, error)
	ListTemplates(ctx context.Context, coachID primitive.ObjectID) ([]domain.Routine, error)
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, createdBy primitive.ObjectID) error // Ensure coach owns the exercise
}

// TrainingLogRepository defines the interface for interacting with training
// session records. Logs are insert-only; there is no update.
type TrainingLogRepository interface {
	Create(ctx context.Context, log *domain.TrainingLog) (primitive.ObjectID, error)
	// ListByUserDesc returns the user's logs ordered by completion time
	// descending, capped at limit. The userId filter is applied in the store.
	ListByUserDesc(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.TrainingLog, error)
	// ListByUserSince returns the user's logs completed at or after since.
	ListByUserSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]domain.TrainingLog, error)
}

// NotificationRepository defines the interface for interacting with notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (primitive.ObjectID, error)
	ListByRecipient(ctx context.Context, recipientID primitive.ObjectID, limit int64) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error
}
