package api

import (
	"net/http"

	"entrena/gym-app/internal/dataaccess"
	"entrena/gym-app/internal/domain"
	"entrena/gym-app/internal/service"
	"entrena/gym-app/internal/storage"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all HTTP routes onto the Gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	imageKitPrivateKey string,
	authService service.AuthService,
	data *dataaccess.DataService,
	fileStorage storage.FileStorage,
) {
	authHandler := NewAuthHandler(authService)
	coachHandler := NewCoachHandler(data)
	athleteHandler := NewAthleteHandler(data)
	mediaHandler := NewMediaHandler(imageKitPrivateKey, fileStorage)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			sess := sessionFromContext(c)
			if sess == nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to resolve session")
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"userId":              sess.ID.Hex(),
				"role":                sess.Role,
				"onboardingCompleted": sess.OnboardingCompleted,
			})
		})
		protected.POST("/onboarding", authHandler.CompleteOnboarding)

		// --- Exercise Library ---
		exerciseGroup := protected.Group("/exercises")
		{
			// Everyone authenticated may read the library for routine composition.
			exerciseGroup.GET("", athleteHandler.GetExercises)

			exerciseGroup.POST("", RoleMiddleware(domain.RoleCoach), coachHandler.CreateExercise)
			exerciseGroup.PUT("/:id", RoleMiddleware(domain.RoleCoach), coachHandler.UpdateExercise)
			exerciseGroup.DELETE("/:id", RoleMiddleware(domain.RoleCoach), coachHandler.DeleteExercise)
		}

		// --- Coach Specific Routes ---
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.GET("/athletes", coachHandler.GetAthletes)
			coachGroup.POST("/athletes/:athleteId/assign", coachHandler.AssignAthlete)
			coachGroup.POST("/routines", coachHandler.SaveRoutine)
			coachGroup.GET("/routines/templates", coachHandler.GetRoutineTemplates)
		}

		// --- Athlete Routes ---
		protected.GET("/workouts", athleteHandler.GetWorkoutHistory)
		protected.POST("/workouts", RoleMiddleware(domain.RoleAthlete), athleteHandler.LogWorkout)
		protected.GET("/workouts/suggest-load", athleteHandler.SuggestNextLoad)
		protected.GET("/stats/monthly", athleteHandler.GetMonthlyStats)
		protected.GET("/routines", athleteHandler.GetMyRoutines)
		protected.GET("/routines/:id", athleteHandler.GetRoutine)
		protected.GET("/active-routine", athleteHandler.GetActiveRoutine)
		protected.GET("/notifications", athleteHandler.GetNotifications)
		protected.POST("/notifications/:id/read", athleteHandler.MarkNotificationRead)

		// --- Media ---
		mediaGroup := protected.Group("/media")
		{
			mediaGroup.GET("/imagekit-auth", mediaHandler.ImageKitAuth)
			mediaGroup.GET("/download-url", mediaHandler.GetDownloadURL)
			mediaGroup.POST("/upload-url", RoleMiddleware(domain.RoleCoach), mediaHandler.RequestUploadURL)
			mediaGroup.POST("/delete", RoleMiddleware(domain.RoleCoach), mediaHandler.DeleteMedia)
		}
	}
}
