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

type ProjectRepository struct {
	*config.Database
}

func NewProjectRepository(database *config.Database) *ProjectRepository {
	return &ProjectRepository{database}
}

func (r *ProjectRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// Create : сохраняет новый проект
func (r *ProjectRepository) Create(ctx context.Context, exec sqlx.ExtContext, project *model.Project) error {
	query := `
		INSERT INTO projects (uuid, owner_uuid, name, status, priority, visibility, color, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := exec.ExecContext(ctx, query,
		project.UUID, project.OwnerUUID, project.Name, project.Status,
		project.Priority, project.Visibility, project.Color, project.Archived)
	if err != nil {
		return util.LogError("[ProjectRepo] не удалось сохранить проект", err)
	}
	return nil
}

// GetByUUID : проект по UUID, без проверки прав
func (r *ProjectRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, projectUUID string) (*model.Project, error) {
	query := `
		SELECT uuid, owner_uuid, name, status, priority, visibility, color, archived, created_at
		FROM projects
		WHERE uuid = $1
	`
	var project model.Project
	err := sqlx.GetContext(ctx, exec, &project, query, projectUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[ProjectRepo] проект не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[ProjectRepo] не удалось получить проект", err)
	}
	return &project, nil
}

// Update : перезаписывает поля проекта
func (r *ProjectRepository) Update(ctx context.Context, exec sqlx.ExtContext, project *model.Project) error {
	query := `
		UPDATE projects
		SET name = $2, status = $3, priority = $4, visibility = $5, color = $6, archived = $7
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		project.UUID, project.Name, project.Status, project.Priority,
		project.Visibility, project.Color, project.Archived)
	if err != nil {
		return util.LogError("[ProjectRepo] не удалось обновить проект", err)
	}
	return nil
}

// Delete : удаляет проект вместе с участниками, задачами и их дочерними записями
func (r *ProjectRepository) Delete(ctx context.Context, exec sqlx.ExtContext, projectUUID string) error {
	for _, query := range []string{
		`DELETE FROM task_assignees WHERE task_uuid IN (SELECT uuid FROM project_tasks WHERE project_uuid = $1)`,
		`DELETE FROM task_subtasks WHERE task_uuid IN (SELECT uuid FROM project_tasks WHERE project_uuid = $1)`,
		`DELETE FROM task_comments WHERE task_uuid IN (SELECT uuid FROM project_tasks WHERE project_uuid = $1)`,
		`DELETE FROM project_tasks WHERE project_uuid = $1`,
		`DELETE FROM project_members WHERE project_uuid = $1`,
		`DELETE FROM projects WHERE uuid = $1`,
	} {
		if _, err := exec.ExecContext(ctx, query, projectUUID); err != nil {
			return util.LogError("[ProjectRepo] не удалось удалить проект", err)
		}
	}
	return nil
}

// ListVisible : проекты, видимые пользователю: публичные, свои и где он участник
func (r *ProjectRepository) ListVisible(ctx context.Context, exec sqlx.ExtContext, userUUID string, isAdmin bool, archived bool) ([]model.Project, error) {
	query := `
		SELECT DISTINCT p.uuid, p.owner_uuid, p.name, p.status, p.priority, p.visibility,
		       p.color, p.archived, p.created_at
		FROM projects AS p
		LEFT JOIN project_members AS m
		  ON p.uuid = m.project_uuid AND m.user_uuid = $1
		WHERE p.archived = $3
		  AND ($2 OR p.visibility = 'public' OR p.owner_uuid = $1 OR m.user_uuid IS NOT NULL)
		ORDER BY p.created_at DESC, p.uuid DESC
	`
	projects := []model.Project{}
	if err := sqlx.SelectContext(ctx, exec, &projects, query, userUUID, isAdmin, archived); err != nil {
		return nil, util.LogError("[ProjectRepo] не удалось получить список проектов", err)
	}
	return projects, nil
}

// AddMember : добавляет участника; повторное добавление не меняет роль
func (r *ProjectRepository) AddMember(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID, role string) error {
	query := `
		INSERT INTO project_members (project_uuid, user_uuid, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_uuid, user_uuid) DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, projectUUID, userUUID, role); err != nil {
		return util.LogError("[ProjectRepo] не удалось добавить участника", err)
	}
	return nil
}

// RemoveMember : убирает участника из проекта
func (r *ProjectRepository) RemoveMember(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID string) error {
	query := `DELETE FROM project_members WHERE project_uuid = $1 AND user_uuid = $2 AND role <> 'owner'`
	if _, err := exec.ExecContext(ctx, query, projectUUID, userUUID); err != nil {
		return util.LogError("[ProjectRepo] не удалось удалить участника", err)
	}
	return nil
}

// GetMemberRole : роль участника; пустая строка — не участник
func (r *ProjectRepository) GetMemberRole(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID string) (string, error) {
	var role string
	query := `SELECT role FROM project_members WHERE project_uuid = $1 AND user_uuid = $2`
	err := sqlx.GetContext(ctx, exec, &role, query, projectUUID, userUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", util.LogError("[ProjectRepo] ошибка проверки участника", err)
	}
	return role, nil
}

// ListMembers : участники проекта
func (r *ProjectRepository) ListMembers(ctx context.Context, exec sqlx.ExtContext, projectUUID string) ([]model.ProjectMember, error) {
	query := `
		SELECT project_uuid, user_uuid, role, created_at
		FROM project_members
		WHERE project_uuid = $1
		ORDER BY created_at ASC, user_uuid ASC
	`
	members := []model.ProjectMember{}
	if err := sqlx.SelectContext(ctx, exec, &members, query, projectUUID); err != nil {
		return nil, util.LogError("[ProjectRepo] не удалось получить участников", err)
	}
	return members, nil
}
