package handlers

import (
	"net/http"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/logger"

	"github.com/gin-gonic/gin"
)

// memberUserIDParam parses the :user_id path segment.
func memberUserIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

func (h *Handler) ListMembers(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	members, err := h.Members.ListMembers(c.Request.Context(), uid, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if members == nil {
		members = []*domain.Member{}
	}
	c.JSON(http.StatusOK, members)
}

type AddMemberRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (h *Handler) AddMember(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req AddMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	m, err := h.Members.AddMember(c.Request.Context(), uid, projectID, req.UserID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("member added", "project_id", projectID, "user_id", req.UserID, "role", m.Role)
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetMember(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	targetID, ok := memberUserIDParam(c)
	if !ok {
		return
	}

	m, err := h.Members.GetMember(c.Request.Context(), uid, projectID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (h *Handler) UpdateMemberRole(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	targetID, ok := memberUserIDParam(c)
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	m, err := h.Members.UpdateRole(c.Request.Context(), uid, projectID, targetID, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("member role updated", "project_id", projectID, "user_id", targetID, "role", m.Role)
	c.JSON(http.StatusOK, m)
}

func (h *Handler) RemoveMember(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	targetID, ok := memberUserIDParam(c)
	if !ok {
		return
	}

	if err := h.Members.RemoveMember(c.Request.Context(), uid, projectID, targetID); err != nil {
		respondError(c, err)
		return
	}

	logger.Info("member removed", "project_id", projectID, "user_id", targetID)
	c.Status(http.StatusNoContent)
}
