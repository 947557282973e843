package dataaccess

import (
	"context"
	"errors"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListExercises returns the whole exercise library. Every authenticated user
// may read it for routine composition.
func (s *DataService) ListExercises(ctx context.Context, sess *Session) Result[[]domain.Exercise] {
	if !requireRole(sess) {
		return Unauthorized[[]domain.Exercise]()
	}

	key := s.keys.SerializeKey("ListExercises")
	exercises, err := cache.GetOrFetch(ctx, s.cache, cache.TagExercises, key, func(ctx context.Context) ([]domain.Exercise, error) {
		list, err := s.exercises.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, ex := range list {
			if err := s.validateDoc(ex); err != nil {
				return nil, err
			}
		}
		return list, nil
	})
	if err != nil {
		return storeFailure[[]domain.Exercise](s.logger, "ListExercises", err)
	}
	return Ok(exercises)
}

// GetExercise fetches one exercise by id. A missing id is a normal empty
// result, not a failure.
func (s *DataService) GetExercise(ctx context.Context, sess *Session, id string) Result[*domain.Exercise] {
	if !requireRole(sess) {
		return Unauthorized[*domain.Exercise]()
	}

	exerciseID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Ok[*domain.Exercise](nil)
	}

	key := s.keys.SerializeKey("GetExercise", id)
	exercise, err := cache.GetOrFetch(ctx, s.cache, cache.ExerciseTag(id), key, func(ctx context.Context) (*domain.Exercise, error) {
		ex, err := s.exercises.GetByID(ctx, exerciseID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return ex, nil
	})
	if err != nil {
		return storeFailure[*domain.Exercise](s.logger, "GetExercise", err)
	}
	return Ok(exercise)
}

// CreateExercise adds an exercise to the library. Requires role coach.
// Dispatches the coach invalidation scope before reporting success.
func (s *DataService) CreateExercise(ctx context.Context, sess *Session, exercise domain.Exercise) Result[*domain.Exercise] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[*domain.Exercise]()
	}

	exercise.CreatedBy = sess.ID
	if err := s.check.Struct(exercise); err != nil {
		return Fail[*domain.Exercise]("Ejercicio inválido")
	}

	id, err := s.exercises.Create(ctx, &exercise)
	if err != nil {
		return storeFailure[*domain.Exercise](s.logger, "CreateExercise", err)
	}
	exercise.ID = id

	s.cache.Invalidate(cache.CoachScope()...)
	return Ok(&exercise)
}

// UpdateExercise replaces the mutable fields of an exercise. Requires role
// coach. Dispatches the coach scope plus the exercise's detail tag.
func (s *DataService) UpdateExercise(ctx context.Context, sess *Session, exercise domain.Exercise) Result[*domain.Exercise] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[*domain.Exercise]()
	}

	if err := s.check.Struct(exercise); err != nil {
		return Fail[*domain.Exercise]("Ejercicio inválido")
	}

	err := s.exercises.Update(ctx, &exercise)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Ok[*domain.Exercise](nil)
		}
		return storeFailure[*domain.Exercise](s.logger, "UpdateExercise", err)
	}

	tags := append(cache.CoachScope(), cache.ExerciseTag(exercise.ID.Hex()))
	s.cache.Invalidate(tags...)
	return Ok(&exercise)
}

// DeleteExercise removes an exercise the coach owns. Deleting an exercise that
// does not exist (or is not owned) is a normal empty result. Dispatches the
// coach scope plus the exercise's detail tag.
func (s *DataService) DeleteExercise(ctx context.Context, sess *Session, id string) Result[bool] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[bool]()
	}

	exerciseID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Ok(false)
	}

	err = s.exercises.Delete(ctx, exerciseID, sess.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Ok(false)
		}
		return storeFailure[bool](s.logger, "DeleteExercise", err)
	}

	tags := append(cache.CoachScope(), cache.ExerciseTag(id))
	s.cache.Invalidate(tags...)
	return Ok(true)
}
