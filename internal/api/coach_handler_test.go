package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"entrena/gym-app/internal/cache"
	"entrena/gym-app/internal/dataaccess"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// stubExerciseRepo is an in-memory ExerciseRepository for handler tests.
type stubExerciseRepo struct {
	exercises map[primitive.ObjectID]domain.Exercise
}

func newStubExerciseRepo() *stubExerciseRepo {
	return &stubExerciseRepo{exercises: make(map[primitive.ObjectID]domain.Exercise)}
}

func (r *stubExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	exercise.ID = id
	r.exercises[id] = *exercise
	return id, nil
}

func (r *stubExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	ex, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ex, nil
}

func (r *stubExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, ex := range r.exercises {
		out = append(out, ex)
	}
	return out, nil
}

func (r *stubExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	r.exercises[exercise.ID] = *exercise
	return nil
}

func (r *stubExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID, createdBy primitive.ObjectID) error {
	ex, ok := r.exercises[id]
	if !ok || ex.CreatedBy != createdBy {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func exerciseRouter(repo *stubExerciseRepo, sess *dataaccess.Session) *gin.Engine {
	gin.SetMode(gin.TestMode)
	data := dataaccess.NewDataService(nil, nil, repo, nil, nil,
		cache.NewStore(cache.DefaultOptions()), zap.NewNop())
	handler := NewCoachHandler(data)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextSessionKey, sess)
		c.Next()
	})
	router.PUT("/exercises/:id", handler.UpdateExercise)
	return router
}

func putJSON(router *gin.Engine, url string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, url, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateExercise(t *testing.T) {
	coach := &dataaccess.Session{ID: primitive.NewObjectID(), Role: domain.RoleCoach}

	t.Run("path id names the exercise to update", func(t *testing.T) {
		repo := newStubExerciseRepo()
		router := exerciseRouter(repo, coach)
		id := primitive.NewObjectID()
		repo.exercises[id] = domain.Exercise{ID: id, CreatedBy: coach.ID, Name: "Sentadilla"}

		w := putJSON(router, "/exercises/"+id.Hex(), gin.H{"name": "Sentadilla frontal"})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Sentadilla frontal", repo.exercises[id].Name)
	})

	t.Run("a body naming a different exercise is rejected", func(t *testing.T) {
		repo := newStubExerciseRepo()
		router := exerciseRouter(repo, coach)
		target := primitive.NewObjectID()
		other := primitive.NewObjectID()
		repo.exercises[target] = domain.Exercise{ID: target, CreatedBy: coach.ID, Name: "Sentadilla"}
		repo.exercises[other] = domain.Exercise{ID: other, CreatedBy: coach.ID, Name: "Peso muerto"}

		w := putJSON(router, "/exercises/"+target.Hex(), gin.H{
			"id":   other.Hex(),
			"name": "Secuestrado",
		})

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Sentadilla", repo.exercises[target].Name)
		assert.Equal(t, "Peso muerto", repo.exercises[other].Name)
	})

	t.Run("a body repeating the path id is accepted", func(t *testing.T) {
		repo := newStubExerciseRepo()
		router := exerciseRouter(repo, coach)
		id := primitive.NewObjectID()
		repo.exercises[id] = domain.Exercise{ID: id, CreatedBy: coach.ID, Name: "Sentadilla"}

		w := putJSON(router, "/exercises/"+id.Hex(), gin.H{
			"id":   id.Hex(),
			"name": "Sentadilla profunda",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Sentadilla profunda", repo.exercises[id].Name)
	})

	t.Run("malformed path id is rejected", func(t *testing.T) {
		repo := newStubExerciseRepo()
		router := exerciseRouter(repo, coach)

		w := putJSON(router, "/exercises/not-an-id", gin.H{"name": "Sentadilla"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id is a normal empty result", func(t *testing.T) {
		repo := newStubExerciseRepo()
		router := exerciseRouter(repo, coach)

		w := putJSON(router, fmt.Sprintf("/exercises/%s", primitive.NewObjectID().Hex()), gin.H{"name": "Sentadilla"})

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
