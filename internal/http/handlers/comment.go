package handlers

import (
	"net/http"
	"strconv"

	"taskboard/internal/domain"

	"github.com/gin-gonic/gin"
)

func commentNumParam(c *gin.Context) (int64, bool) {
	num, err := strconv.ParseInt(c.Param("comment_num"), 10, 64)
	if err != nil || num <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return num, true
}

type CommentRequest struct {
	Body string `json:"body"`
}

func (h *Handler) CreateComment(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	taskNum, ok := taskNumParam(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	comment, err := h.Comments.Create(c.Request.Context(), uid, projectID, taskNum, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	taskNum, ok := taskNumParam(c)
	if !ok {
		return
	}

	comments, err := h.Comments.List(c.Request.Context(), uid, projectID, taskNum)
	if err != nil {
		respondError(c, err)
		return
	}
	if comments == nil {
		comments = []*domain.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) GetComment(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	taskNum, ok := taskNumParam(c)
	if !ok {
		return
	}
	num, ok := commentNumParam(c)
	if !ok {
		return
	}

	comment, err := h.Comments.Get(c.Request.Context(), uid, projectID, taskNum, num)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	taskNum, ok := taskNumParam(c)
	if !ok {
		return
	}
	num, ok := commentNumParam(c)
	if !ok {
		return
	}

	if err := h.Comments.Delete(c.Request.Context(), uid, projectID, taskNum, num); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
