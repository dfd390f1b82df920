package handlers

import (
	"errors"
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Auth     *service.AuthService
	Projects *service.ProjectService
	Members  *service.MembershipService
	Tasks    *service.TaskService
	Comments *service.CommentService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	members := repository.NewMembershipRepository(db)
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)

	return &Handler{
		DB:       db,
		Auth:     service.NewAuthService(users),
		Projects: service.NewProjectService(projects, members),
		Members:  service.NewMembershipService(users, projects, members),
		Tasks:    service.NewTaskService(projects, members, tasks),
		Comments: service.NewCommentService(projects, members, tasks, comments),
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// requireUserID aborts with 401 when the principal is missing. Routes behind
// the JWT middleware always have one; this is the handler-side check.
func requireUserID(c *gin.Context) (int64, bool) {
	uid, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	}
	return uid, ok
}

// respondError translates the domain error taxonomy into transport status
// codes. Unknown errors are logged and masked.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		logger.Error("internal error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// projectIDParam parses the :project_id path segment. A malformed id answers
// NotFound, same as an unknown one, so the URL space leaks nothing.
func projectIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.UUID{}, false
	}
	return id, true
}
