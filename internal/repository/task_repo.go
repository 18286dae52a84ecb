package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"zettel-todo/internal/domain"
)

// TaskRepository define el contrato de persistencia para tareas.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	GetByOwner(ctx context.Context, id, userID string) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) error
	Delete(ctx context.Context, id, userID string) error
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]domain.Task, error)
	CountByOwner(ctx context.Context, userID string) (int, error)
}

// PgTaskRepository implementa TaskRepository usando pgxpool.
type PgTaskRepository struct {
	pool *pgxpool.Pool
}

func NewPgTaskRepository(pool *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{pool: pool}
}

func (r *PgTaskRepository) Create(ctx context.Context, task domain.Task) error {
	const query = `
		INSERT INTO tasks (id, user_id, title, description, appointed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.AppointedAt,
		task.CreatedAt,
	)
	return err
}

func (r *PgTaskRepository) GetByOwner(ctx context.Context, id, userID string) (domain.Task, error) {
	const query = `
		SELECT id, user_id, title, description, appointed_at, created_at
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	var t domain.Task
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.AppointedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *PgTaskRepository) Update(ctx context.Context, task domain.Task) error {
	const query = `
		UPDATE tasks
		SET title = $3, description = $4, appointed_at = $5
		WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.AppointedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgTaskRepository) Delete(ctx context.Context, id, userID string) error {
	const query = `
		DELETE FROM tasks WHERE id = $1 AND user_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PgTaskRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]domain.Task, error) {
	const query = `
		SELECT id, user_id, title, description, appointed_at, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		err = rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.AppointedAt,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *PgTaskRepository) CountByOwner(ctx context.Context, userID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM tasks WHERE user_id = $1
	`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
