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

// PersonalRepository : простые персональные записи — ярлыки, задачи-заметки, заметки.
// Никакого шаринга, только владелец (и системные ярлыки с owner_uuid IS NULL).
type PersonalRepository struct {
	*config.Database
}

func NewPersonalRepository(database *config.Database) *PersonalRepository {
	return &PersonalRepository{database}
}

// --- ярлыки ---

// CreateShortcut : ownerUUID = nil — системный ярлык, виден всем
func (r *PersonalRepository) CreateShortcut(ctx context.Context, exec sqlx.ExtContext, shortcut *model.Shortcut) error {
	query := `
		INSERT INTO shortcuts (uuid, owner_uuid, title, url, icon, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := exec.ExecContext(ctx, query,
		shortcut.UUID, shortcut.OwnerUUID, shortcut.Title, shortcut.URL, shortcut.Icon, shortcut.Position)
	if err != nil {
		return util.LogError("[PersonalRepo] не удалось сохранить ярлык", err)
	}
	return nil
}

func (r *PersonalRepository) GetShortcut(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Shortcut, error) {
	query := `SELECT uuid, owner_uuid, title, url, icon, position, created_at FROM shortcuts WHERE uuid = $1`
	var shortcut model.Shortcut
	err := sqlx.GetContext(ctx, exec, &shortcut, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[PersonalRepo] ярлык не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить ярлык", err)
	}
	return &shortcut, nil
}

// ListShortcuts : персональные ярлыки владельца
func (r *PersonalRepository) ListShortcuts(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Shortcut, error) {
	query := `
		SELECT uuid, owner_uuid, title, url, icon, position, created_at
		FROM shortcuts
		WHERE owner_uuid = $1
		ORDER BY position ASC, created_at ASC
	`
	shortcuts := []model.Shortcut{}
	if err := sqlx.SelectContext(ctx, exec, &shortcuts, query, ownerUUID); err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить ярлыки", err)
	}
	return shortcuts, nil
}

// ListSystemShortcuts : системные ярлыки (owner_uuid IS NULL)
func (r *PersonalRepository) ListSystemShortcuts(ctx context.Context, exec sqlx.ExtContext) ([]model.Shortcut, error) {
	query := `
		SELECT uuid, owner_uuid, title, url, icon, position, created_at
		FROM shortcuts
		WHERE owner_uuid IS NULL
		ORDER BY position ASC, created_at ASC
	`
	shortcuts := []model.Shortcut{}
	if err := sqlx.SelectContext(ctx, exec, &shortcuts, query); err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить системные ярлыки", err)
	}
	return shortcuts, nil
}

func (r *PersonalRepository) UpdateShortcut(ctx context.Context, exec sqlx.ExtContext, shortcut *model.Shortcut) error {
	query := `UPDATE shortcuts SET title = $2, url = $3, icon = $4, position = $5 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, shortcut.UUID, shortcut.Title, shortcut.URL, shortcut.Icon, shortcut.Position)
	if err != nil {
		return util.LogError("[PersonalRepo] не удалось обновить ярлык", err)
	}
	return nil
}

func (r *PersonalRepository) DeleteShortcut(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM shortcuts WHERE uuid = $1`, uuid); err != nil {
		return util.LogError("[PersonalRepo] не удалось удалить ярлык", err)
	}
	return nil
}

// --- todo ---

func (r *PersonalRepository) CreateTodo(ctx context.Context, exec sqlx.ExtContext, todo *model.Todo) error {
	query := `
		INSERT INTO todos (uuid, owner_uuid, content, is_done, due_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := exec.ExecContext(ctx, query, todo.UUID, todo.OwnerUUID, todo.Content, todo.IsDone, todo.DueDate)
	if err != nil {
		return util.LogError("[PersonalRepo] не удалось сохранить todo", err)
	}
	return nil
}

func (r *PersonalRepository) GetTodo(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Todo, error) {
	query := `SELECT uuid, owner_uuid, content, is_done, due_date, created_at FROM todos WHERE uuid = $1`
	var todo model.Todo
	err := sqlx.GetContext(ctx, exec, &todo, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[PersonalRepo] todo не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить todo", err)
	}
	return &todo, nil
}

func (r *PersonalRepository) ListTodos(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Todo, error) {
	query := `
		SELECT uuid, owner_uuid, content, is_done, due_date, created_at
		FROM todos
		WHERE owner_uuid = $1
		ORDER BY created_at DESC
	`
	todos := []model.Todo{}
	if err := sqlx.SelectContext(ctx, exec, &todos, query, ownerUUID); err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить список todo", err)
	}
	return todos, nil
}

func (r *PersonalRepository) UpdateTodo(ctx context.Context, exec sqlx.ExtContext, todo *model.Todo) error {
	query := `UPDATE todos SET content = $2, is_done = $3, due_date = $4 WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, todo.UUID, todo.Content, todo.IsDone, todo.DueDate)
	if err != nil {
		return util.LogError("[PersonalRepo] не удалось обновить todo", err)
	}
	return nil
}

func (r *PersonalRepository) DeleteTodo(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM todos WHERE uuid = $1`, uuid); err != nil {
		return util.LogError("[PersonalRepo] не удалось удалить todo", err)
	}
	return nil
}

// --- заметки ---

func (r *PersonalRepository) CreateNote(ctx context.Context, exec sqlx.ExtContext, note *model.Note) error {
	query := `
		INSERT INTO notes (uuid, owner_uuid, title, content, color)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := exec.ExecContext(ctx, query, note.UUID, note.OwnerUUID, note.Title, note.Content, note.Color)
	if err != nil {
		return util.LogError("[PersonalRepo] не удалось сохранить заметку", err)
	}
	return nil
}

func (r *PersonalRepository) GetNote(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Note, error) {
	query := `SELECT uuid, owner_uuid, title, content, color, created_at, updated_at FROM notes WHERE uuid = $1`
	var note model.Note
	err := sqlx.GetContext(ctx, exec, &note, query, uuid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[PersonalRepo] заметка не найдена: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить заметку", err)
	}
	return &note, nil
}

func (r *PersonalRepository) ListNotes(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Note, error) {
	query := `
		SELECT uuid, owner_uuid, title, content, color, created_at, updated_at
		FROM notes
		WHERE owner_uuid = $1
		ORDER BY updated_at DESC
	`
	notes := []model.Note{}
	if err := sqlx.SelectContext(ctx, exec, &notes, query, ownerUUID); err != nil {
		return nil, util.LogError("[PersonalRepo] не удалось получить заметки", err)
	}
	return notes, nil
}

func (r *PersonalRepository) UpdateNote(ctx context.Context, exec sqlx.ExtContext, note *model.Note) error {
	query := `UPDATE notes SET title = $2, content = $3, color = $4, updated_at = NOW() WHERE uuid = $1`
	_, err := exec.ExecContext(ctx, query, note.UUID, note.Title, note.Content, note.Color)
	if err != nil {
		return util.LogError("[PersonalRepo] не удалось обновить заметку", err)
	}
	return nil
}

func (r *PersonalRepository) DeleteNote(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM notes WHERE uuid = $1`, uuid); err != nil {
		return util.LogError("[PersonalRepo] не удалось удалить заметку", err)
	}
	return nil
}
