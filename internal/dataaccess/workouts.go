package dataaccess

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.uber.org/zap"
)

// historyLimit caps the workout history result set.
const historyLimit = 20

// WorkoutEntry is the transport shape for one completed session in the
// history view. CompletedAt is an ISO-8601 string.
type WorkoutEntry struct {
	ID              string  `json:"id"`
	RoutineDayName  string  `json:"routineDayName,omitempty"`
	CompletedAt     string  `json:"completedAt"`
	DurationSeconds int     `json:"durationSeconds"`
	TotalVolume     float64 `json:"totalVolume"`
	ExerciseCount   int     `json:"exerciseCount"`
}

// MonthlyStats aggregates the requesting user's sessions for the current
// calendar month.
type MonthlyStats struct {
	TotalSessions int     `json:"totalSessions"`
	TotalVolume   float64 `json:"totalVolume"`
	DurationHours float64 `json:"durationHours"`
}

func workoutEntryFromLog(l domain.TrainingLog) WorkoutEntry {
	return WorkoutEntry{
		ID:              l.ID.Hex(),
		RoutineDayName:  l.RoutineDayName,
		CompletedAt:     l.CompletedAt.UTC().Format(time.RFC3339),
		DurationSeconds: l.DurationSeconds,
		TotalVolume:     l.TotalVolume,
		ExerciseCount:   len(l.Exercises),
	}
}

// GetWorkoutHistory returns the session's own logs, newest first, capped at
// 20 entries. Ownership is a store-level filter: logs of any other user can
// never appear in the result set.
func (s *DataService) GetWorkoutHistory(ctx context.Context, sess *Session) Result[[]WorkoutEntry] {
	if !requireRole(sess) {
		return Unauthorized[[]WorkoutEntry]()
	}

	key := s.keys.SerializeKey("GetWorkoutHistory", sess.ID.Hex())
	entries, err := cache.GetOrFetch(ctx, s.cache, cache.TagTrainingLogs, key, func(ctx context.Context) ([]WorkoutEntry, error) {
		logs, err := s.logs.ListByUserDesc(ctx, sess.ID, historyLimit)
		if err != nil {
			return nil, err
		}
		out := make([]WorkoutEntry, 0, len(logs))
		for _, l := range logs {
			if err := s.validateDoc(l); err != nil {
				return nil, err
			}
			out = append(out, workoutEntryFromLog(l))
		}
		return out, nil
	})
	if err != nil {
		return storeFailure[[]WorkoutEntry](s.logger, "GetWorkoutHistory", err)
	}
	return Ok(entries)
}

// GetMonthlyStats aggregates the session's own logs since the first calendar
// day of the current month (UTC). Zero matching logs yields all-zero stats.
func (s *DataService) GetMonthlyStats(ctx context.Context, sess *Session) Result[MonthlyStats] {
	if !requireRole(sess) {
		return Unauthorized[MonthlyStats]()
	}

	now := time.Now().UTC()
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	key := s.keys.SerializeKey("GetMonthlyStats", sess.ID.Hex(), firstDay)
	stats, err := cache.GetOrFetch(ctx, s.cache, cache.TagCoachStats, key, func(ctx context.Context) (MonthlyStats, error) {
		logs, err := s.logs.ListByUserSince(ctx, sess.ID, firstDay)
		if err != nil {
			return MonthlyStats{}, err
		}
		return aggregateMonthly(logs), nil
	})
	if err != nil {
		return storeFailure[MonthlyStats](s.logger, "GetMonthlyStats", err)
	}
	return Ok(stats)
}

// aggregateMonthly sums session count, duration and volume over the result
// set. DurationHours is rounded to one decimal place.
func aggregateMonthly(logs []domain.TrainingLog) MonthlyStats {
	var stats MonthlyStats
	var totalSeconds int
	for _, l := range logs {
		stats.TotalSessions++
		totalSeconds += l.DurationSeconds
		stats.TotalVolume += l.TotalVolume
	}
	stats.DurationHours = math.Round(float64(totalSeconds)/3600*10) / 10
	return stats
}

// LogWorkout records one completed session for the athlete. The log is owned
// by the session user regardless of what the payload claims, is immutable
// after creation, and notifies the athlete's coach. Dispatches the athlete
// invalidation scope before reporting success.
func (s *DataService) LogWorkout(ctx context.Context, sess *Session, log domain.TrainingLog) Result[*domain.TrainingLog] {
	if !requireRole(sess, domain.RoleAthlete) {
		return Unauthorized[*domain.TrainingLog]()
	}

	log.UserID = sess.ID
	if log.TotalVolume == 0 {
		for _, e := range log.Exercises {
			log.TotalVolume += e.Volume()
		}
	}

	id, err := s.logs.Create(ctx, &log)
	if err != nil {
		return storeFailure[*domain.TrainingLog](s.logger, "LogWorkout", err)
	}
	log.ID = id

	s.notifyCoach(ctx, sess, log)
	s.cache.Invalidate(cache.AthleteScope()...)
	return Ok(&log)
}

// notifyCoach creates a workout-logged notification for the athlete's coach.
// The log itself is already persisted; a failure here is logged and does not
// fail the call, since each function owns at most one logical write unit.
func (s *DataService) notifyCoach(ctx context.Context, sess *Session, log domain.TrainingLog) {
	athlete, err := s.users.GetByID(ctx, sess.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Error("failed to load athlete for coach notification",
				zap.String("userId", sess.ID.Hex()), zap.Error(err))
		}
		return
	}
	if athlete.CoachID == nil {
		return
	}

	name := athlete.Name
	if name == "" {
		name = "Atleta"
	}
	n := &domain.Notification{
		RecipientID: *athlete.CoachID,
		Kind:        domain.NotificationWorkoutLogged,
		Message:     fmt.Sprintf("%s completó un entrenamiento", name),
	}
	if _, err := s.notifications.Create(ctx, n); err != nil {
		s.logger.Error("failed to create coach notification",
			zap.String("coachId", athlete.CoachID.Hex()), zap.Error(err))
	}
}

// SuggestNextLoad applies the RPE-based weight-adjustment rule: a reported
// RPE at least two points under target raises the next-session load by 5%, a
// reported RPE above target lowers it by 5%, otherwise the load is unchanged.
// The result snaps to 2.5 kg increments.
func SuggestNextLoad(lastWeight, targetRPE, reportedRPE float64) float64 {
	if lastWeight <= 0 || targetRPE <= 0 {
		return lastWeight
	}

	next := lastWeight
	switch {
	case reportedRPE <= targetRPE-2:
		next = lastWeight * 1.05
	case reportedRPE > targetRPE:
		next = lastWeight * 0.95
	}
	return math.Round(next/2.5) * 2.5
}
