package cache

// Tag names an invalidation group. Reads register under tags; mutations
// invalidate by tag. The set below is closed; per-entity detail tags are
// derived through the constructor functions.
type Tag string

const (
	TagCoachStats           Tag = "coach-stats"
	TagAthletes             Tag = "athletes"
	TagRoutines             Tag = "routines"
	TagExercises            Tag = "exercises"
	TagTrainingLogs         Tag = "training-logs"
	TagAthleteNotifications Tag = "athlete-notifications"
)

// RoutineTag is the detail tag for a single routine.
func RoutineTag(id string) Tag {
	return Tag("routine:" + id)
}

// ExerciseTag is the detail tag for a single exercise.
func ExerciseTag(id string) Tag {
	return Tag("exercise:" + id)
}

// CoachScope is the tag set that goes stale after any coach-side mutation.
func CoachScope() []Tag {
	return []Tag{TagCoachStats, TagAthletes, TagRoutines, TagExercises}
}

// AthleteScope is the tag set that goes stale after an athlete logs activity.
// It includes coach-stats so the coach's cached dashboard recomputes too.
func AthleteScope() []Tag {
	return []Tag{TagTrainingLogs, TagAthleteNotifications, TagCoachStats}
}
