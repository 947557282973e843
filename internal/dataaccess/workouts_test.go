package dataaccess

import (
	"context"
	"testing"
	"time"

	"entrena/gym-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedLog(deps *testDeps, userID primitive.ObjectID, completedAt time.Time, durationSeconds int, volume float64) domain.TrainingLog {
	l := domain.TrainingLog{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		CompletedAt:     completedAt,
		DurationSeconds: durationSeconds,
		TotalVolume:     volume,
	}
	deps.logs.logs = append(deps.logs.logs, l)
	return l
}

func TestGetWorkoutHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns own logs newest first", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		base := time.Date(2025, 7, 10, 8, 0, 0, 0, time.UTC)
		older := seedLog(deps, sess.ID, base, 3600, 1000)
		newer := seedLog(deps, sess.ID, base.Add(48*time.Hour), 1800, 500)

		res := deps.service.GetWorkoutHistory(ctx, sess)
		require.True(t, res.Success)
		require.Len(t, res.Data, 2)
		assert.Equal(t, newer.ID.Hex(), res.Data[0].ID)
		assert.Equal(t, older.ID.Hex(), res.Data[1].ID)
	})

	t.Run("caps at twenty entries", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		base := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
		for i := 0; i < 25; i++ {
			seedLog(deps, sess.ID, base.Add(time.Duration(i)*time.Hour), 600, 100)
		}

		res := deps.service.GetWorkoutHistory(ctx, sess)
		require.True(t, res.Success)
		assert.Len(t, res.Data, 20)
	})

	t.Run("never contains another user's logs", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		other := primitive.NewObjectID()
		seedLog(deps, other, time.Now().UTC(), 3600, 2000)
		mine := seedLog(deps, sess.ID, time.Now().UTC(), 1800, 800)

		res := deps.service.GetWorkoutHistory(ctx, sess)
		require.True(t, res.Success)
		require.Len(t, res.Data, 1)
		assert.Equal(t, mine.ID.Hex(), res.Data[0].ID)
	})

	t.Run("no logs is a successful empty result", func(t *testing.T) {
		deps := newTestService()

		res := deps.service.GetWorkoutHistory(ctx, athleteSession())
		require.True(t, res.Success)
		assert.Empty(t, res.Data)
	})

	t.Run("requires an authenticated session", func(t *testing.T) {
		deps := newTestService()

		res := deps.service.GetWorkoutHistory(ctx, nil)
		assert.False(t, res.Success)
		assert.Equal(t, MsgUnauthorized, res.Error)
		assert.Zero(t, deps.logs.listCalls)
	})

	t.Run("second read hits the cache", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedLog(deps, sess.ID, time.Now().UTC(), 1800, 800)

		deps.service.GetWorkoutHistory(ctx, sess)
		deps.service.GetWorkoutHistory(ctx, sess)
		assert.Equal(t, 1, deps.logs.listCalls)
	})
}

func TestGetMonthlyStats(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates the current month only", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedLog(deps, sess.ID, firstDay.Add(2*time.Hour), 3600, 1000)
		seedLog(deps, sess.ID, firstDay.Add(26*time.Hour), 1800, 500.5)
		seedLog(deps, sess.ID, firstDay.Add(-time.Hour), 7200, 9999) // previous month

		res := deps.service.GetMonthlyStats(ctx, sess)
		require.True(t, res.Success)
		assert.Equal(t, 2, res.Data.TotalSessions)
		assert.InDelta(t, 1500.5, res.Data.TotalVolume, 0.001)
		assert.InDelta(t, 1.5, res.Data.DurationHours, 0.001)
	})

	t.Run("zero sessions yields all-zero stats", func(t *testing.T) {
		deps := newTestService()

		res := deps.service.GetMonthlyStats(ctx, athleteSession())
		require.True(t, res.Success)
		assert.Equal(t, MonthlyStats{}, res.Data)
	})

	t.Run("excludes other users", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedLog(deps, primitive.NewObjectID(), firstDay.Add(time.Hour), 3600, 1000)

		res := deps.service.GetMonthlyStats(ctx, sess)
		require.True(t, res.Success)
		assert.Zero(t, res.Data.TotalSessions)
	})
}

func TestAggregateMonthly(t *testing.T) {
	tests := []struct {
		name string
		logs []domain.TrainingLog
		want MonthlyStats
	}{
		{
			name: "empty",
			want: MonthlyStats{},
		},
		{
			name: "duration rounds to one decimal",
			logs: []domain.TrainingLog{
				{DurationSeconds: 3000, TotalVolume: 100},
				{DurationSeconds: 2500, TotalVolume: 200},
			},
			// 5500s = 1.527h rounds to 1.5
			want: MonthlyStats{TotalSessions: 2, TotalVolume: 300, DurationHours: 1.5},
		},
		{
			name: "short session rounds down",
			logs: []domain.TrainingLog{{DurationSeconds: 4000}}, // 1.11h
			want: MonthlyStats{TotalSessions: 1, DurationHours: 1.1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregateMonthly(tt.logs))
		})
	}
}

func TestLogWorkout(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the log owned by the session user", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedUser(deps, domain.User{ID: sess.ID, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAthlete})

		res := deps.service.LogWorkout(ctx, sess, domain.TrainingLog{
			UserID:          primitive.NewObjectID(), // spoofed owner must be ignored
			CompletedAt:     time.Now().UTC(),
			DurationSeconds: 3600,
			TotalVolume:     1200,
		})
		require.True(t, res.Success)
		require.NotNil(t, res.Data)
		assert.Equal(t, sess.ID, res.Data.UserID)
		assert.False(t, res.Data.ID.IsZero())
	})

	t.Run("computes total volume from exercises when absent", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedUser(deps, domain.User{ID: sess.ID, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAthlete})

		res := deps.service.LogWorkout(ctx, sess, domain.TrainingLog{
			CompletedAt: time.Now().UTC(),
			Exercises: []domain.LoggedExercise{
				{Name: "Sentadilla", Sets: []domain.LoggedSet{
					{Weight: 100, Reps: 5},
					{Weight: 100, Reps: 5},
				}},
			},
		})
		require.True(t, res.Success)
		assert.InDelta(t, 1000, res.Data.TotalVolume, 0.001)
	})

	t.Run("notifies the assigned coach", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		coachID := primitive.NewObjectID()
		seedUser(deps, domain.User{ID: sess.ID, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAthlete, CoachID: &coachID})

		res := deps.service.LogWorkout(ctx, sess, domain.TrainingLog{CompletedAt: time.Now().UTC(), DurationSeconds: 1800})
		require.True(t, res.Success)

		inbox, err := deps.notifications.ListByRecipient(ctx, coachID, 10)
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		assert.Equal(t, domain.NotificationWorkoutLogged, inbox[0].Kind)
		assert.Equal(t, "Ana completó un entrenamiento", inbox[0].Message)
	})

	t.Run("no coach means no notification", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedUser(deps, domain.User{ID: sess.ID, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAthlete})

		res := deps.service.LogWorkout(ctx, sess, domain.TrainingLog{CompletedAt: time.Now().UTC()})
		require.True(t, res.Success)
		assert.Zero(t, deps.notifications.createCalls)
	})

	t.Run("notification failure does not fail the call", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		coachID := primitive.NewObjectID()
		seedUser(deps, domain.User{ID: sess.ID, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAthlete, CoachID: &coachID})
		deps.notifications.failWith = assert.AnError

		res := deps.service.LogWorkout(ctx, sess, domain.TrainingLog{CompletedAt: time.Now().UTC()})
		assert.True(t, res.Success, "the log is the only logical write unit")
	})

	t.Run("refreshes history, stats and notifications", func(t *testing.T) {
		deps := newTestService()
		sess := athleteSession()
		seedUser(deps, domain.User{ID: sess.ID, Name: "Ana", Email: "ana@example.com", Role: domain.RoleAthlete})

		deps.service.GetWorkoutHistory(ctx, sess)
		deps.service.GetMonthlyStats(ctx, sess)
		require.Equal(t, 2, deps.logs.listCalls)

		res := deps.service.LogWorkout(ctx, sess, domain.TrainingLog{CompletedAt: time.Now().UTC(), DurationSeconds: 1800, TotalVolume: 500})
		require.True(t, res.Success)

		history := deps.service.GetWorkoutHistory(ctx, sess)
		require.True(t, history.Success)
		require.Len(t, history.Data, 1)

		stats := deps.service.GetMonthlyStats(ctx, sess)
		require.True(t, stats.Success)
		assert.Equal(t, 1, stats.Data.TotalSessions)
		assert.Equal(t, 4, deps.logs.listCalls, "both cached reads must recompute after the write")
	})

	t.Run("coaches cannot log workouts", func(t *testing.T) {
		deps := newTestService()

		res := deps.service.LogWorkout(ctx, coachSession(), domain.TrainingLog{CompletedAt: time.Now().UTC()})
		assert.False(t, res.Success)
		assert.Equal(t, MsgUnauthorized, res.Error)
	})
}

func TestSuggestNextLoad(t *testing.T) {
	tests := []struct {
		name        string
		lastWeight  float64
		targetRPE   float64
		reportedRPE float64
		want        float64
	}{
		{name: "well under target raises load", lastWeight: 100, targetRPE: 8, reportedRPE: 6, want: 105},
		{name: "over target lowers load", lastWeight: 100, targetRPE: 8, reportedRPE: 9, want: 95},
		{name: "on target keeps load", lastWeight: 100, targetRPE: 8, reportedRPE: 8, want: 100},
		{name: "one under target keeps load", lastWeight: 100, targetRPE: 8, reportedRPE: 7, want: 100},
		{name: "snaps to 2.5 increments", lastWeight: 82.5, targetRPE: 8, reportedRPE: 6, want: 87.5},
		{name: "snap rounds down too", lastWeight: 82.5, targetRPE: 8, reportedRPE: 9, want: 77.5},
		{name: "zero weight passes through", lastWeight: 0, targetRPE: 8, reportedRPE: 6, want: 0},
		{name: "zero target passes through", lastWeight: 100, targetRPE: 0, reportedRPE: 6, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SuggestNextLoad(tt.lastWeight, tt.targetRPE, tt.reportedRPE), 0.001)
		})
	}
}
