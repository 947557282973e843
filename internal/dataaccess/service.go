package dataaccess

import (
	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DataService groups the data-access functions: one method per read/write use
// case. Every method resolves authorization from the Session, goes to the
// store through the read cache, and returns a Result envelope.
type DataService struct {
	users         repository.UserRepository
	routines      repository.RoutineRepository
	exercises     repository.ExerciseRepository
	logs          repository.TrainingLogRepository
	notifications repository.NotificationRepository

	cache  cache.Store
	keys   cache.KeySerializer
	check  *validator.Validate
	logger *zap.Logger
}

// NewDataService creates a new DataService.
func NewDataService(
	users repository.UserRepository,
	routines repository.RoutineRepository,
	exercises repository.ExerciseRepository,
	logs repository.TrainingLogRepository,
	notifications repository.NotificationRepository,
	store cache.Store,
	logger *zap.Logger,
) *DataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DataService{
		users:         users,
		routines:      routines,
		exercises:     exercises,
		logs:          logs,
		notifications: notifications,
		cache:         store,
		keys:          cache.NewDefaultKeySerializer(),
		check:         validator.New(),
		logger:        logger,
	}
}

// storeFailure logs the underlying error server-side and produces the generic
// failure envelope. Error detail never reaches the caller.
func storeFailure[T any](logger *zap.Logger, op string, err error) Result[T] {
	logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	return Fail[T](MsgStoreFailure)
}

// validateDoc runs boundary validation on a document decoded from the store.
// A document that fails validation is treated like a store failure: the data
// cannot be trusted by application code.
func (s *DataService) validateDoc(doc any) error {
	return s.check.Struct(doc)
}
