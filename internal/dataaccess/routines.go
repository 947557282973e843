package dataaccess

import (
	"context"
	"errors"
	"fmt"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// GetRoutine fetches one routine by id. A missing id is a normal empty result,
// not a failure. Athletes can only read routines assigned to them; coaches can
// read any routine they own.
func (s *DataService) GetRoutine(ctx context.Context, sess *Session, id string) Result[*domain.Routine] {
	if !requireRole(sess) {
		return Unauthorized[*domain.Routine]()
	}

	routineID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Ok[*domain.Routine](nil)
	}

	key := s.keys.SerializeKey("GetRoutine", id)
	routine, err := cache.GetOrFetch(ctx, s.cache, cache.RoutineTag(id), key, func(ctx context.Context) (*domain.Routine, error) {
		r, err := s.routines.GetByID(ctx, routineID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if err := s.validateDoc(*r); err != nil {
			return nil, err
		}
		return r, nil
	})
	if err != nil {
		return storeFailure[*domain.Routine](s.logger, "GetRoutine", err)
	}
	if routine == nil {
		return Ok[*domain.Routine](nil)
	}

	if !canReadRoutine(sess, routine) {
		return Unauthorized[*domain.Routine]()
	}
	return Ok(routine)
}

// GetActiveRoutine fetches the session user's active routine. The athleteId
// filter runs in the store, so the active routine always belongs to the
// athlete viewing it. No active routine is a normal empty result.
func (s *DataService) GetActiveRoutine(ctx context.Context, sess *Session) Result[*domain.Routine] {
	if !requireRole(sess) {
		return Unauthorized[*domain.Routine]()
	}

	key := s.keys.SerializeKey("GetActiveRoutine", sess.ID.Hex())
	routine, err := cache.GetOrFetch(ctx, s.cache, cache.TagRoutines, key, func(ctx context.Context) (*domain.Routine, error) {
		r, err := s.routines.GetActiveByAthlete(ctx, sess.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if err := s.validateDoc(*r); err != nil {
			return nil, err
		}
		return r, nil
	})
	if err != nil {
		return storeFailure[*domain.Routine](s.logger, "GetActiveRoutine", err)
	}
	return Ok(routine)
}

// ListAthleteRoutines returns every routine assigned to the session user.
func (s *DataService) ListAthleteRoutines(ctx context.Context, sess *Session) Result[[]domain.Routine] {
	if !requireRole(sess) {
		return Unauthorized[[]domain.Routine]()
	}

	key := s.keys.SerializeKey("ListAthleteRoutines", sess.ID.Hex())
	routines, err := cache.GetOrFetch(ctx, s.cache, cache.TagRoutines, key, func(ctx context.Context) ([]domain.Routine, error) {
		return s.routines.ListByAthlete(ctx, sess.ID)
	})
	if err != nil {
		return storeFailure[[]domain.Routine](s.logger, "ListAthleteRoutines", err)
	}
	return Ok(routines)
}

// ListRoutineTemplates returns the coach's unassigned template routines.
// Requires role coach.
func (s *DataService) ListRoutineTemplates(ctx context.Context, sess *Session) Result[[]domain.Routine] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[[]domain.Routine]()
	}

	key := s.keys.SerializeKey("ListRoutineTemplates", sess.ID.Hex())
	routines, err := cache.GetOrFetch(ctx, s.cache, cache.TagRoutines, key, func(ctx context.Context) ([]domain.Routine, error) {
		return s.routines.ListTemplates(ctx, sess.ID)
	})
	if err != nil {
		return storeFailure[[]domain.Routine](s.logger, "ListRoutineTemplates", err)
	}
	return Ok(routines)
}

// SaveRoutine creates or replaces a routine owned by the coach session. The
// whole routine document is one logical write unit. Saving a routine assigned
// to an athlete notifies that athlete. Dispatches the coach invalidation
// scope, plus the routine's detail tag, before reporting success.
func (s *DataService) SaveRoutine(ctx context.Context, sess *Session, routine domain.Routine) Result[*domain.Routine] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[*domain.Routine]()
	}

	routine.CoachID = sess.ID
	if err := s.check.Struct(routine); err != nil {
		return Fail[*domain.Routine]("Rutina inválida")
	}

	id, err := s.routines.Save(ctx, &routine)
	if err != nil {
		return storeFailure[*domain.Routine](s.logger, "SaveRoutine", err)
	}
	routine.ID = id

	tags := append(cache.CoachScope(), cache.RoutineTag(id.Hex()))
	if routine.AthleteID != nil {
		s.notifyRoutineAssigned(ctx, routine)
		tags = append(tags, cache.TagAthleteNotifications)
	}
	s.cache.Invalidate(tags...)
	return Ok(&routine)
}

// notifyRoutineAssigned creates a routine-assigned notification for the
// athlete. The routine itself is already persisted; a failure here is logged
// and does not fail the call.
func (s *DataService) notifyRoutineAssigned(ctx context.Context, routine domain.Routine) {
	n := &domain.Notification{
		RecipientID: *routine.AthleteID,
		Kind:        domain.NotificationRoutineAssigned,
		Message:     fmt.Sprintf("Nueva rutina asignada: %s", routine.Name),
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("failed to create routine-assigned notification",
			zap.String("athleteId", routine.AthleteID.Hex()), zap.Error(err))
	}
}

// canReadRoutine applies the ownership rule for direct routine reads.
func canReadRoutine(sess *Session, r *domain.Routine) bool {
	switch sess.Role {
	case domain.RoleCoach, domain.RoleAdmin:
		return true
	default:
		return r.AthleteID != nil && *r.AthleteID == sess.ID
	}
}
