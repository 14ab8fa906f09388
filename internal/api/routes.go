package api

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"alcyxob/fitness-admin/internal/service"
	"alcyxob/fitness-admin/internal/session"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Dependencies is everything the router needs.
type Dependencies struct {
	AuthService   service.AuthService
	MediaService  service.MediaService
	Guard         session.Guard
	SessionMaxAge time.Duration
	MaxUploadSize int64

	Categories    *repository.Manager[domain.Category]
	WorkoutTypes  *repository.Manager[domain.WorkoutType]
	Levels        *repository.Manager[domain.Level]
	Exercises     *repository.ExerciseRepository
	WorkoutPlans  *repository.Manager[domain.WorkoutPlan]
	PlanExercises *repository.Manager[domain.PlanExercise]
	Users         *repository.UserRepository
	Favorites     *repository.Manager[domain.UserFavorite]
	Sessions      *repository.WorkoutSessionRepository
	Progress      *repository.UserProgressRepository
	Settings      *repository.AdminSettingsRepository
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService, deps.SessionMaxAge)
	settingsHandler := NewSettingsHandler(deps.Settings)
	mediaHandler := NewMediaHandler(deps.MediaService, deps.MaxUploadSize)
	userHandler := NewUserHandler(deps.Users)
	sessionHandler := NewWorkoutSessionHandler(deps.Sessions)

	guard := deps.Guard
	requireGuest := GuardMiddleware(guard, session.Route{RequiresGuest: true})
	requireAdmin := GuardMiddleware(guard, session.Route{RequiresAdmin: true})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(SessionMiddleware(deps.AuthService))
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.SignUp)
			authGroup.POST("/login", requireGuest, authHandler.Login)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", requireAdmin, authHandler.Me)
		}

		apiV1.POST("/setup/admin", authHandler.SetupAdmin)
	}

	admin := apiV1.Group("/admin")
	admin.Use(requireAdmin)
	{
		NewCrudHandler("Category", deps.Categories, domain.NewCategory).
			Register(admin.Group("/categories"), true)
		NewCrudHandler("Workout type", deps.WorkoutTypes, domain.NewWorkoutType).
			Register(admin.Group("/workout-types"), true)
		NewCrudHandler("Level", deps.Levels, domain.NewLevel).
			Register(admin.Group("/levels"), true)
		NewCrudHandler("Exercise", deps.Exercises.Manager, domain.NewExercise).
			WithFilter("muscleGroup", func(ctx context.Context, group string, opts ListOptions) ([]domain.Exercise, error) {
				return deps.Exercises.ListByMuscleGroup(ctx, group, opts.ActiveOnly)
			}).
			Register(admin.Group("/exercises"), true)
		NewCrudHandler("Workout plan", deps.WorkoutPlans, domain.NewWorkoutPlan).
			Register(admin.Group("/workout-plans"), true)
		NewCrudHandler("Plan exercise", deps.PlanExercises, domain.NewPlanExercise).
			Register(admin.Group("/plan-exercises"), true)
		NewCrudHandler[domain.UserFavorite]("Favorite", deps.Favorites, nil).
			Register(admin.Group("/favorites"), true)

		// --- Users ---
		// Accounts are created through the auth provider, never as bare documents.
		users := admin.Group("/users")
		NewCrudHandler[domain.User]("User", deps.Users.Manager, nil).
			WithReadOnly("role", "email").
			WithFilter("role", func(ctx context.Context, role string, opts ListOptions) ([]domain.User, error) {
				return deps.Users.ListByRole(ctx, domain.Role(role), opts.Limit)
			}).
			Register(users, false)
		users.POST("", authHandler.RegisterUser)
		users.PATCH("/:id/role", userHandler.SetRole)

		// --- Workout history ---
		sessions := admin.Group("/sessions")
		NewCrudHandler("Workout session", deps.Sessions.Manager, domain.NewWorkoutSession).
			WithReadOnly("status").
			WithFilter("userId", func(ctx context.Context, id string, opts ListOptions) ([]domain.WorkoutSession, error) {
				return deps.Sessions.ListByUser(ctx, id, opts.Limit)
			}).
			WithFilter("levelId", func(ctx context.Context, id string, opts ListOptions) ([]domain.WorkoutSession, error) {
				return deps.Sessions.ListByLevel(ctx, id, opts.Limit)
			}).
			WithFilter("status", func(ctx context.Context, status string, opts ListOptions) ([]domain.WorkoutSession, error) {
				return deps.Sessions.ListByStatus(ctx, domain.SessionStatus(status), opts.Limit)
			}).
			WithDefaultList(func(ctx context.Context, opts ListOptions) ([]domain.WorkoutSession, error) {
				return deps.Sessions.ListRecent(ctx, opts.Limit)
			}).
			Register(sessions, true)
		sessions.PATCH("/:id/status", sessionHandler.UpdateStatus)

		NewCrudHandler[domain.UserProgress]("Progress entry", deps.Progress.Manager, nil).
			WithFilter("userId", func(ctx context.Context, id string, opts ListOptions) ([]domain.UserProgress, error) {
				return deps.Progress.ListByUser(ctx, id, opts.Limit)
			}).
			WithFilter("levelId", func(ctx context.Context, id string, opts ListOptions) ([]domain.UserProgress, error) {
				return deps.Progress.ListByLevel(ctx, id, opts.Limit)
			}).
			WithFilter("exerciseId", func(ctx context.Context, id string, opts ListOptions) ([]domain.UserProgress, error) {
				return deps.Progress.ListByExercise(ctx, id, opts.Limit)
			}).
			WithDefaultList(func(ctx context.Context, opts ListOptions) ([]domain.UserProgress, error) {
				return deps.Progress.ListRecent(ctx, opts.Limit)
			}).
			Register(admin.Group("/progress"), true)

		// --- Settings ---
		settings := admin.Group("/settings")
		{
			settings.GET("", settingsHandler.Get)
			settings.PUT("", settingsHandler.Put)
			settings.POST("/admin-emails", settingsHandler.AddAdminEmail)
			settings.DELETE("/admin-emails", settingsHandler.RemoveAdminEmail)
			settings.PUT("/app-version", settingsHandler.UpdateAppVersion)
			settings.PATCH("/features", settingsHandler.UpdateFeatures)
			settings.PATCH("/notifications", settingsHandler.UpdateNotifications)
		}

		// --- Media ---
		mediaGroup := admin.Group("/media")
		{
			mediaGroup.GET("", mediaHandler.List)
			mediaGroup.POST("/upload", mediaHandler.Upload)
			mediaGroup.POST("/animated-gif", mediaHandler.AnimatedGIF)
			mediaGroup.GET("/url", mediaHandler.URL)
			mediaGroup.DELETE("/*publicId", mediaHandler.Delete)
		}
	}
}
