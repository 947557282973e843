package api

import (
	"net/http"

	"entrena/gym-app/internal/dataaccess"
	"entrena/gym-app/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachHandler exposes the coach-side use cases.
type CoachHandler struct {
	data *dataaccess.DataService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(data *dataaccess.DataService) *CoachHandler {
	return &CoachHandler{data: data}
}

// GetAthletes returns every athlete for the coach dashboard.
func (h *CoachHandler) GetAthletes(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.ListAthletes(c.Request.Context(), sess))
}

// AssignAthlete makes the authenticated coach responsible for an athlete.
func (h *CoachHandler) AssignAthlete(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.AssignAthlete(c.Request.Context(), sess, c.Param("athleteId")))
}

// SaveRoutine creates or replaces a routine.
func (h *CoachHandler) SaveRoutine(c *gin.Context) {
	var routine domain.Routine
	if err := c.ShouldBindJSON(&routine); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := sessionFromContext(c)
	respond(c, http.StatusCreated, h.data.SaveRoutine(c.Request.Context(), sess, routine))
}

// GetRoutineTemplates returns the coach's unassigned template routines.
func (h *CoachHandler) GetRoutineTemplates(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.ListRoutineTemplates(c.Request.Context(), sess))
}

// CreateExercise adds an exercise to the library.
func (h *CoachHandler) CreateExercise(c *gin.Context) {
	var exercise domain.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := sessionFromContext(c)
	respond(c, http.StatusCreated, h.data.CreateExercise(c.Request.Context(), sess, exercise))
}

// UpdateExercise replaces the mutable fields of the exercise named in the URL.
// The path id is authoritative; a body carrying a different id is rejected.
func (h *CoachHandler) UpdateExercise(c *gin.Context) {
	var exercise domain.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}
	if !exercise.ID.IsZero() && exercise.ID != id {
		abortWithError(c, http.StatusBadRequest, "Exercise ID in body does not match URL")
		return
	}
	exercise.ID = id

	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.UpdateExercise(c.Request.Context(), sess, exercise))
}

// DeleteExercise removes an exercise the coach owns.
func (h *CoachHandler) DeleteExercise(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.DeleteExercise(c.Request.Context(), sess, c.Param("id")))
}
