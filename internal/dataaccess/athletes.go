package dataaccess

import (
	"context"
	"errors"
	"time"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AthleteSummary is the transport shape for one athlete row on the coach
// dashboard. Store timestamps are converted to ISO-8601 strings here.
type AthleteSummary struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	Role                domain.Role `json:"role"`
	AvatarURL           string      `json:"avatarUrl,omitempty"`
	OnboardingCompleted bool        `json:"onboardingCompleted"`
	TrainingGoal        string      `json:"trainingGoal,omitempty"`
	CreatedAt           string      `json:"createdAt"`
}

// athleteFromUser is the single document-to-entity mapping for athlete rows.
// Default policy: missing name falls back to "Atleta"; a missing role is
// defaulted to athlete but logged, since a User document without a role points
// at a data-integrity problem; onboardingCompleted zero-values to false.
func athleteFromUser(u domain.User, logger *zap.Logger) AthleteSummary {
	name := u.Name
	if name == "" {
		name = "Atleta"
	}
	role := u.Role
	if role == "" {
		role = domain.RoleAthlete
		logger.Warn("user document missing role, defaulting to athlete",
			zap.String("userId", u.ID.Hex()))
	}
	return AthleteSummary{
		ID:                  u.ID.Hex(),
		Name:                name,
		Email:               u.Email,
		Role:                role,
		AvatarURL:           u.AvatarURL,
		OnboardingCompleted: u.OnboardingCompleted,
		TrainingGoal:        u.TrainingGoal,
		CreatedAt:           u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListAthletes returns every non-coach user for the coach dashboard.
// Requires role coach.
func (s *DataService) ListAthletes(ctx context.Context, sess *Session) Result[[]AthleteSummary] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[[]AthleteSummary]()
	}

	key := s.keys.SerializeKey("ListAthletes")
	summaries, err := cache.GetOrFetch(ctx, s.cache, cache.TagAthletes, key, func(ctx context.Context) ([]AthleteSummary, error) {
		users, err := s.users.ListAthletes(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]AthleteSummary, 0, len(users))
		for _, u := range users {
			if err := s.validateDoc(u); err != nil {
				return nil, err
			}
			out = append(out, athleteFromUser(u, s.logger))
		}
		return out, nil
	})
	if err != nil {
		return storeFailure[[]AthleteSummary](s.logger, "ListAthletes", err)
	}
	return Ok(summaries)
}

// AssignAthlete makes the coach session responsible for the given athlete.
// An unknown athlete id is a normal empty result. Dispatches the athletes tag
// before reporting success.
func (s *DataService) AssignAthlete(ctx context.Context, sess *Session, athleteID string) Result[bool] {
	if !requireRole(sess, domain.RoleCoach) {
		return Unauthorized[bool]()
	}

	id, err := primitive.ObjectIDFromHex(athleteID)
	if err != nil {
		return Ok(false)
	}

	err = s.users.AssignCoach(ctx, id, sess.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Ok(false)
		}
		return storeFailure[bool](s.logger, "AssignAthlete", err)
	}

	s.cache.Invalidate(cache.TagAthletes)
	return Ok(true)
}
