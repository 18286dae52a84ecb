package domain

import "time"

type Task struct {
	ID          string     `json:"task_id"`
	UserID      string     `json:"-"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AppointedAt *time.Time `json:"appointed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
