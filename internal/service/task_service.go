package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"zettel-todo/internal/domain"
	"zettel-todo/internal/repository"
)

// TaskService coordina reglas de negocio para tareas.
type TaskService struct {
	logger *zap.Logger
	tasks  repository.TaskRepository
}

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidTask  = errors.New("invalid task")
)

const (
	maxTitleLength  = 150
	defaultPageSize = 10
	maxPageSize     = 100
)

func NewTaskService(logger *zap.Logger, tasks repository.TaskRepository) *TaskService {
	return &TaskService{
		logger: logger,
		tasks:  tasks,
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	AppointedAt *time.Time
}

type UpdateTaskInput struct {
	Title       *string
	Description *string
	AppointedAt *time.Time
}

// Pagination describe la página devuelta por List.
type Pagination struct {
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(title) > maxTitleLength {
		return domain.Task{}, ErrInvalidTask
	}

	task := domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		AppointedAt: input.AppointedAt,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (domain.Task, error) {
	task, err := s.tasks.GetByOwner(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return task, nil
}

// Update aplica cambios parciales: solo los campos no nulos del input.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, input UpdateTaskInput) (domain.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return domain.Task{}, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || len(title) > maxTitleLength {
			return domain.Task{}, ErrInvalidTask
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AppointedAt != nil {
		task.AppointedAt = input.AppointedAt
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	err := s.tasks.Delete(ctx, taskID, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTaskNotFound
	}
	return err
}

// List devuelve una página de tareas del usuario, más recientes primero.
func (s *TaskService) List(ctx context.Context, userID string, page, size int) ([]domain.Task, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	offset := (page - 1) * size
	tasks, err := s.tasks.ListByOwner(ctx, userID, size, offset)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := s.tasks.CountByOwner(ctx, userID)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := (total + size - 1) / size
	pagination := Pagination{
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    size,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
	return tasks, pagination, nil
}
