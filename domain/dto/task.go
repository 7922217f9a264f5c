package dto

import "time"

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest distinguishes an omitted key from an explicit null.
type UpdateTaskRequest struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Completed   Optional[bool]      `json:"completed"`
	Priority    Optional[string]    `json:"priority"`
	Category    Optional[string]    `json:"category"`
	DueDate     Optional[time.Time] `json:"due_date"`
}

// TaskFilterRequest holds the raw list query parameters.
type TaskFilterRequest struct {
	Skip      int     `query:"skip" validate:"min=0"`
	Limit     int     `query:"limit" validate:"min=1,max=1000"`
	Completed *bool   `query:"completed"`
	Priority  *string `query:"priority"`
	Category  *string `query:"category"`
	Search    *string `query:"search"`
}

const (
	DefaultListSkip  = 0
	DefaultListLimit = 100
)

type TaskResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type TaskStatsResponse struct {
	Total      int64            `json:"total"`
	Completed  int64            `json:"completed"`
	Pending    int64            `json:"pending"`
	ByPriority map[string]int64 `json:"by_priority"`
	ByCategory map[string]int64 `json:"by_category"`
}

type DeleteTaskResponse struct {
	Message   string `json:"message"`
	DeletedID uint   `json:"deleted_id"`
}
