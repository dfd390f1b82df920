package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const dueDateLayout = "2006-01-02"

func taskNumParam(c *gin.Context) (int64, bool) {
	num, err := strconv.ParseInt(c.Param("task_num"), 10, 64)
	if err != nil || num <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return num, true
}

func parseDueDate(c *gin.Context, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	d, err := time.Parse(dueDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}

type TaskCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    *int64 `json:"assignee"`
	DueDate     string `json:"due_date"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req TaskCreateRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	due, ok := parseDueDate(c, req.DueDate)
	if !ok {
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), uid, projectID, service.TaskCreate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.Assignee,
		DueDate:     due,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	tasks, err := h.Tasks.List(c.Request.Context(), uid, projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	num, ok := taskNumParam(c)
	if !ok {
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), uid, projectID, num)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Assignee    *int64  `json:"assignee"`
	DueDate     *string `json:"due_date"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	num, ok := taskNumParam(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	// a second decode of the cached body tells apart "assignee": null
	// (unassign) from the key being absent (leave as is)
	var rawFields map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&rawFields, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	_, assigneeSet := rawFields["assignee"]
	_, dueDateSet := rawFields["due_date"]

	upd := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.Assignee,
		AssigneeSet: assigneeSet,
		DueDateSet:  dueDateSet,
	}
	if dueDateSet && req.DueDate != nil {
		due, ok := parseDueDate(c, *req.DueDate)
		if !ok {
			return
		}
		upd.DueDate = due
	}

	task, err := h.Tasks.Update(c.Request.Context(), uid, projectID, num, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	uid, ok := requireUserID(c)
	if !ok {
		return
	}
	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}
	num, ok := taskNumParam(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), uid, projectID, num); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
