package http

import (
	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, version string, cfg *config.Config) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	// Registration and login get a tighter window than the rest of the API
	authRL := middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authRL, h.Register)
		auth.POST("/login", authRL, h.Login)
		auth.POST("/logout", h.Logout)
	}

	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/users/lookup", middleware.JWT(), h.LookupUser)

	projects := v1.Group("/projects")
	projects.Use(middleware.JWT())
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:project_id", h.GetProject)
		projects.PATCH("/:project_id", h.UpdateProject)
		projects.DELETE("/:project_id", h.DeleteProject)

		projects.GET("/:project_id/members", h.ListMembers)
		projects.POST("/:project_id/members", h.AddMember)
		projects.GET("/:project_id/members/:user_id", h.GetMember)
		projects.PATCH("/:project_id/members/:user_id", h.UpdateMemberRole)
		projects.DELETE("/:project_id/members/:user_id", h.RemoveMember)

		projects.GET("/:project_id/tasks", h.ListTasks)
		projects.POST("/:project_id/tasks", h.CreateTask)
		projects.GET("/:project_id/tasks/:task_num", h.GetTask)
		projects.PATCH("/:project_id/tasks/:task_num", h.UpdateTask)
		projects.DELETE("/:project_id/tasks/:task_num", h.DeleteTask)

		projects.GET("/:project_id/tasks/:task_num/comments", h.ListComments)
		projects.POST("/:project_id/tasks/:task_num/comments", h.CreateComment)
		projects.GET("/:project_id/tasks/:task_num/comments/:comment_num", h.GetComment)
		projects.DELETE("/:project_id/tasks/:task_num/comments/:comment_num", h.DeleteComment)
	}
}
