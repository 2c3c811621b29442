package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/util"

	"github.com/jmoiron/sqlx"
)

type TaskRepository struct {
	*config.Database
}

func NewTaskRepository(database *config.Database) *TaskRepository {
	return &TaskRepository{database}
}

func (r *TaskRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// Create : сохраняет новую задачу
func (r *TaskRepository) Create(ctx context.Context, exec sqlx.ExtContext, task *model.ProjectTask) error {
	query := `
		INSERT INTO project_tasks
			(uuid, project_uuid, title, description, status, priority, due_date, order_index, assignee_uuid, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := exec.ExecContext(ctx, query,
		task.UUID, task.ProjectUUID, task.Title, task.Description, task.Status,
		task.Priority, task.DueDate, task.OrderIndex, task.AssigneeUUID, task.CompletedAt)
	if err != nil {
		return util.LogError("[TaskRepo] не удалось сохранить задачу", err)
	}
	return nil
}

// GetByUUID : задача по UUID, без проверки прав
func (r *TaskRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, taskUUID string) (*model.ProjectTask, error) {
	query := `
		SELECT uuid, project_uuid, title, description, status, priority, due_date,
		       order_index, assignee_uuid, completed_at, created_at
		FROM project_tasks
		WHERE uuid = $1
	`
	var task model.ProjectTask
	err := sqlx.GetContext(ctx, exec, &task, query, taskUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[TaskRepo] задача не найдена: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[TaskRepo] не удалось получить задачу", err)
	}
	return &task, nil
}

// Update : перезаписывает поля задачи, включая completed_at и денормализованного исполнителя
func (r *TaskRepository) Update(ctx context.Context, exec sqlx.ExtContext, task *model.ProjectTask) error {
	query := `
		UPDATE project_tasks
		SET title = $2, description = $3, status = $4, priority = $5, due_date = $6,
		    assignee_uuid = $7, completed_at = $8
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		task.UUID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.AssigneeUUID, task.CompletedAt)
	if err != nil {
		return util.LogError("[TaskRepo] не удалось обновить задачу", err)
	}
	return nil
}

// UpdateOrderIndex : порядок в колонке меняется независимо от остальных полей
func (r *TaskRepository) UpdateOrderIndex(ctx context.Context, exec sqlx.ExtContext, taskUUID string, orderIndex int) error {
	query := `UPDATE project_tasks SET order_index = $2 WHERE uuid = $1`
	if _, err := exec.ExecContext(ctx, query, taskUUID, orderIndex); err != nil {
		return util.LogError("[TaskRepo] не удалось изменить порядок", err)
	}
	return nil
}

// Delete : удаляет задачу вместе с исполнителями, подзадачами и комментариями
func (r *TaskRepository) Delete(ctx context.Context, exec sqlx.ExtContext, taskUUID string) error {
	for _, query := range []string{
		`DELETE FROM task_assignees WHERE task_uuid = $1`,
		`DELETE FROM task_subtasks WHERE task_uuid = $1`,
		`DELETE FROM task_comments WHERE task_uuid = $1`,
		`DELETE FROM project_tasks WHERE uuid = $1`,
	} {
		if _, err := exec.ExecContext(ctx, query, taskUUID); err != nil {
			return util.LogError("[TaskRepo] не удалось удалить задачу", err)
		}
	}
	return nil
}

// ListByProject : задачи проекта, по order_index
func (r *TaskRepository) ListByProject(ctx context.Context, exec sqlx.ExtContext, projectUUID string) ([]model.ProjectTask, error) {
	query := `
		SELECT uuid, project_uuid, title, description, status, priority, due_date,
		       order_index, assignee_uuid, completed_at, created_at
		FROM project_tasks
		WHERE project_uuid = $1
		ORDER BY order_index ASC, created_at ASC
	`
	tasks := []model.ProjectTask{}
	if err := sqlx.SelectContext(ctx, exec, &tasks, query, projectUUID); err != nil {
		return nil, util.LogError("[TaskRepo] не удалось получить список задач", err)
	}
	return tasks, nil
}

// ListAssignees : исполнители задачи в детерминированном порядке
func (r *TaskRepository) ListAssignees(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]string, error) {
	var userUUIDs []string
	query := `SELECT user_uuid FROM task_assignees WHERE task_uuid = $1 ORDER BY user_uuid ASC`
	if err := sqlx.SelectContext(ctx, exec, &userUUIDs, query, taskUUID); err != nil {
		return nil, util.LogError("[TaskRepo] не удалось получить исполнителей", err)
	}
	return userUUIDs, nil
}

// ReplaceAssignees : полная замена исполнителей, вызов — только внутри транзакции
func (r *TaskRepository) ReplaceAssignees(ctx context.Context, exec sqlx.ExtContext, taskUUID string, userUUIDs []string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_uuid = $1`, taskUUID); err != nil {
		return util.LogError("[TaskRepo] не удалось очистить исполнителей", err)
	}
	for _, userUUID := range userUUIDs {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO task_assignees (task_uuid, user_uuid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskUUID, userUUID)
		if err != nil {
			return util.LogError("[TaskRepo] не удалось сохранить исполнителей", err)
		}
	}
	return nil
}

// ListSubtasks : подзадачи по position
func (r *TaskRepository) ListSubtasks(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]model.Subtask, error) {
	query := `
		SELECT uuid, task_uuid, title, is_completed, position
		FROM task_subtasks
		WHERE task_uuid = $1
		ORDER BY position ASC
	`
	subtasks := []model.Subtask{}
	if err := sqlx.SelectContext(ctx, exec, &subtasks, query, taskUUID); err != nil {
		return nil, util.LogError("[TaskRepo] не удалось получить подзадачи", err)
	}
	return subtasks, nil
}

// ReplaceSubtasks : полная замена подзадач, вызов — только внутри транзакции
func (r *TaskRepository) ReplaceSubtasks(ctx context.Context, exec sqlx.ExtContext, taskUUID string, subtasks []model.Subtask) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM task_subtasks WHERE task_uuid = $1`, taskUUID); err != nil {
		return util.LogError("[TaskRepo] не удалось очистить подзадачи", err)
	}
	for i, subtask := range subtasks {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO task_subtasks (uuid, task_uuid, title, is_completed, position) VALUES ($1, $2, $3, $4, $5)`,
			subtask.UUID, taskUUID, subtask.Title, subtask.IsCompleted, i)
		if err != nil {
			return util.LogError("[TaskRepo] не удалось сохранить подзадачи", err)
		}
	}
	return nil
}

// CreateComment : сохраняет комментарий к задаче
func (r *TaskRepository) CreateComment(ctx context.Context, exec sqlx.ExtContext, comment *model.TaskComment) error {
	query := `
		INSERT INTO task_comments (uuid, task_uuid, author_uuid, content)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := exec.ExecContext(ctx, query, comment.UUID, comment.TaskUUID, comment.AuthorUUID, comment.Content); err != nil {
		return util.LogError("[TaskRepo] не удалось сохранить комментарий", err)
	}
	return nil
}

// ListComments : комментарии задачи, старые сверху
func (r *TaskRepository) ListComments(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]model.TaskComment, error) {
	query := `
		SELECT uuid, task_uuid, author_uuid, content, created_at
		FROM task_comments
		WHERE task_uuid = $1
		ORDER BY created_at ASC
	`
	comments := []model.TaskComment{}
	if err := sqlx.SelectContext(ctx, exec, &comments, query, taskUUID); err != nil {
		return nil, util.LogError("[TaskRepo] не удалось получить комментарии", err)
	}
	return comments, nil
}
