package model

import "time"

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

var (
	TaskStatuses   = []string{TaskStatusPending, TaskStatusCompleted}
	TaskPriorities = []string{"low", "medium", "high"}
)

type Board struct {
	Owned
	Name string `json:"name" db:"name"`
}

// Task belongs to a board; ownership is checked through the board.
type Task struct {
	ID          string    `json:"id" db:"id"`
	BoardID     string    `json:"boardId" db:"board_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Status      string    `json:"status" db:"status"`
	Priority    string    `json:"priority" db:"priority"`
	DueDate     *Date     `json:"dueDate,omitempty" db:"due_date"`
	Order       int       `json:"order" db:"position"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
