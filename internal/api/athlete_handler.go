package api

import (
	"net/http"
	"strconv"

	"entrena/gym-app/internal/dataaccess"
	"entrena/gym-app/internal/domain"

	"github.com/gin-gonic/gin"
)

// AthleteHandler exposes the athlete-side use cases.
type AthleteHandler struct {
	data *dataaccess.DataService
}

// NewAthleteHandler creates a new AthleteHandler.
func NewAthleteHandler(data *dataaccess.DataService) *AthleteHandler {
	return &AthleteHandler{data: data}
}

// GetWorkoutHistory returns the athlete's recent sessions, newest first.
func (h *AthleteHandler) GetWorkoutHistory(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.GetWorkoutHistory(c.Request.Context(), sess))
}

// GetMonthlyStats returns the athlete's aggregated stats for the current month.
func (h *AthleteHandler) GetMonthlyStats(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.GetMonthlyStats(c.Request.Context(), sess))
}

// LogWorkout records one completed training session.
func (h *AthleteHandler) LogWorkout(c *gin.Context) {
	var log domain.TrainingLog
	if err := c.ShouldBindJSON(&log); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := sessionFromContext(c)
	respond(c, http.StatusCreated, h.data.LogWorkout(c.Request.Context(), sess, log))
}

// GetActiveRoutine returns the athlete's currently active routine, if any.
func (h *AthleteHandler) GetActiveRoutine(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.GetActiveRoutine(c.Request.Context(), sess))
}

// GetMyRoutines returns every routine assigned to the athlete.
func (h *AthleteHandler) GetMyRoutines(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.ListAthleteRoutines(c.Request.Context(), sess))
}

// GetRoutine returns one routine by id.
func (h *AthleteHandler) GetRoutine(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.GetRoutine(c.Request.Context(), sess, c.Param("id")))
}

// GetExercises returns the exercise library.
func (h *AthleteHandler) GetExercises(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.ListExercises(c.Request.Context(), sess))
}

// GetNotifications returns the user's notification feed.
func (h *AthleteHandler) GetNotifications(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.ListNotifications(c.Request.Context(), sess))
}

// MarkNotificationRead flags one notification as read.
func (h *AthleteHandler) MarkNotificationRead(c *gin.Context) {
	sess := sessionFromContext(c)
	respond(c, http.StatusOK, h.data.MarkNotificationRead(c.Request.Context(), sess, c.Param("id")))
}

// SuggestNextLoad returns the RPE-adjusted load for the next session.
func (h *AthleteHandler) SuggestNextLoad(c *gin.Context) {
	lastWeight, err1 := strconv.ParseFloat(c.Query("lastWeight"), 64)
	targetRPE, err2 := strconv.ParseFloat(c.Query("targetRpe"), 64)
	reportedRPE, err3 := strconv.ParseFloat(c.Query("reportedRpe"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		abortWithError(c, http.StatusBadRequest, "lastWeight, targetRpe and reportedRpe are required numeric parameters")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"nextWeight": dataaccess.SuggestNextLoad(lastWeight, targetRPE, reportedRPE),
	})
}
