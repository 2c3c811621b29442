package model

import "time"

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusReview     = "review"
	TaskStatusDone       = "done"
)

// TaskStatuses : допустимые статусы; переходы свободные, порядок не навязывается
var TaskStatuses = []string{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone}

type ProjectTask struct {
	UUID        string     `db:"uuid" json:"uuid"`
	ProjectUUID string     `db:"project_uuid" json:"project_uuid"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Status      string     `db:"status" json:"status"`
	Priority    string     `db:"priority" json:"priority"`
	DueDate     *string    `db:"due_date" json:"due_date,omitempty"`
	OrderIndex  int        `db:"order_index" json:"order_index"`
	// AssigneeUUID : денормализованный «основной» исполнитель, первый элемент
	// отсортированного списка task_assignees; пересчитывается при каждой записи
	AssigneeUUID *string    `db:"assignee_uuid" json:"assignee_uuid,omitempty"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`

	Assignees []string  `json:"assignees,omitempty"`
	Subtasks  []Subtask `json:"subtasks,omitempty"`
}

type Subtask struct {
	UUID        string `db:"uuid" json:"uuid"`
	TaskUUID    string `db:"task_uuid" json:"-"`
	Title       string `db:"title" json:"title"`
	IsCompleted bool   `db:"is_completed" json:"is_completed"`
	Position    int    `db:"position" json:"position"`
}

type TaskComment struct {
	UUID       string    `db:"uuid" json:"uuid"`
	TaskUUID   string    `db:"task_uuid" json:"task_uuid"`
	AuthorUUID string    `db:"author_uuid" json:"author_uuid"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
