package handlers

import (
	"errors"
	"net/http"

	"tasks_api/internal/domain"
	"tasks_api/internal/repository"

	"github.com/gin-gonic/gin"
)

// TaskHandler exposes a TaskStore under /tasks.
type TaskHandler struct {
	Store repository.TaskStore
}

func NewTaskHandler(store repository.TaskStore) *TaskHandler {
	return &TaskHandler{Store: store}
}

// ListTasks handles GET /tasks/all
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.Store.FindAll(c.Request.Context())
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask handles GET /tasks?id=
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	task, err := h.Store.FindByID(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// CreateTask handles POST /tasks. A missing or null id is derived from the title.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req domain.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.Store.Save(c.Request.Context(), req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks?id=. The id in the body is ignored.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req domain.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.Store.Update(c.Request.Context(), id, req)
	if err != nil {
		writeStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /tasks?id=
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.Store.DeleteByID(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return "", false
	}
	return id, true
}

func writeStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, domain.ErrTaskConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "task already exists"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	}
}
