package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) CreateProject(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	project, err := h.Projects.Create(c.Request.Context(), uid, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) ListProjects(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}

	projects, err := h.Projects.ListVisible(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

// projectDetail nests the member list the way clients render a project page.
type projectDetail struct {
	*domain.Project
	Members []*domain.Member `json:"members"`
}

func (h *Handler) GetProject(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	project, err := h.Projects.Get(ctx, uid, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	members, err := h.Members.ListMembers(ctx, uid, projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projectDetail{Project: project, Members: members})
}

type ProjectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) UpdateProject(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req ProjectUpdateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	project, err := h.Projects.Update(c.Request.Context(), uid, projectID, service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), uid, projectID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
