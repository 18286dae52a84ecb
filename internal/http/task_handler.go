package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zettel-todo/internal/domain"
	"zettel-todo/internal/service"
)

// TaskHandler mantiene dependencias para endpoints de tareas.
type TaskHandler struct {
	logger   *zap.Logger
	taskServ *service.TaskService
}

func NewTaskHandler(logger *zap.Logger, taskServ *service.TaskService) *TaskHandler {
	return &TaskHandler{
		logger:   logger,
		taskServ: taskServ,
	}
}

// CreateTask maneja POST /task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req struct {
		Title       string     `json:"title" binding:"required,max=150"`
		Description string     `json:"description"`
		AppointedAt *time.Time `json:"appointed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskServ.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AppointedAt: req.AppointedAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidTask) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task"})
			return
		}
		h.logger.Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task_id": task.ID})
}

// ListTasks maneja GET /task.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	tasks, pagination, err := h.taskServ.List(c.Request.Context(), userID, page, size)
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list tasks"})
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":      tasks,
		"pagination": pagination,
	})
}

// UpdateTask maneja PATCH /task/:task_id.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		AppointedAt *time.Time `json:"appointed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.taskServ.Update(c.Request.Context(), userID, c.Param("task_id"), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AppointedAt: req.AppointedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		case errors.Is(err, service.ErrInvalidTask):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task"})
			return
		default:
			h.logger.Error("update task failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update task"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// DeleteTask maneja DELETE /task/:task_id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := h.taskServ.Delete(c.Request.Context(), userID, c.Param("task_id")); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.logger.Error("delete task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
