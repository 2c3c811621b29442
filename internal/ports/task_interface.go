package ports

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// TaskRepository : SQL слой задач
type TaskRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, task *model.ProjectTask) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, taskUUID string) (*model.ProjectTask, error)
	Update(ctx context.Context, exec sqlx.ExtContext, task *model.ProjectTask) error
	UpdateOrderIndex(ctx context.Context, exec sqlx.ExtContext, taskUUID string, orderIndex int) error
	Delete(ctx context.Context, exec sqlx.ExtContext, taskUUID string) error
	ListByProject(ctx context.Context, exec sqlx.ExtContext, projectUUID string) ([]model.ProjectTask, error)
	ListAssignees(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]string, error)
	ReplaceAssignees(ctx context.Context, exec sqlx.ExtContext, taskUUID string, userUUIDs []string) error
	ListSubtasks(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]model.Subtask, error)
	ReplaceSubtasks(ctx context.Context, exec sqlx.ExtContext, taskUUID string, subtasks []model.Subtask) error
	CreateComment(ctx context.Context, exec sqlx.ExtContext, comment *model.TaskComment) error
	ListComments(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]model.TaskComment, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, caller access.Caller, task *model.ProjectTask, assignees []string, subtasks []model.Subtask) (*model.ProjectTask, error)
	GetTask(ctx context.Context, caller access.Caller, taskUUID string) (*model.ProjectTask, error)
	ListTasks(ctx context.Context, caller access.Caller, projectUUID string) ([]model.ProjectTask, error)
	UpdateTask(ctx context.Context, caller access.Caller, task *model.ProjectTask, assignees []string, subtasks []model.Subtask) (*model.ProjectTask, error)
	UpdateStatus(ctx context.Context, caller access.Caller, taskUUID, status string) (*model.ProjectTask, error)
	Reorder(ctx context.Context, caller access.Caller, taskUUID string, orderIndex int) error
	DeleteTask(ctx context.Context, caller access.Caller, taskUUID string) error
	AddComment(ctx context.Context, caller access.Caller, taskUUID, content string) (*model.TaskComment, error)
	ListComments(ctx context.Context, caller access.Caller, taskUUID string) ([]model.TaskComment, error)
}
