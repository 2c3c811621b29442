package ports

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// PersonalRepository : SQL слой персональных записей
type PersonalRepository interface {
	CreateShortcut(ctx context.Context, exec sqlx.ExtContext, shortcut *model.Shortcut) error
	GetShortcut(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Shortcut, error)
	ListShortcuts(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Shortcut, error)
	ListSystemShortcuts(ctx context.Context, exec sqlx.ExtContext) ([]model.Shortcut, error)
	UpdateShortcut(ctx context.Context, exec sqlx.ExtContext, shortcut *model.Shortcut) error
	DeleteShortcut(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	CreateTodo(ctx context.Context, exec sqlx.ExtContext, todo *model.Todo) error
	GetTodo(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Todo, error)
	ListTodos(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, exec sqlx.ExtContext, todo *model.Todo) error
	DeleteTodo(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	CreateNote(ctx context.Context, exec sqlx.ExtContext, note *model.Note) error
	GetNote(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Note, error)
	ListNotes(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Note, error)
	UpdateNote(ctx context.Context, exec sqlx.ExtContext, note *model.Note) error
	DeleteNote(ctx context.Context, exec sqlx.ExtContext, uuid string) error
}

type PersonalService interface {
	CreateShortcut(ctx context.Context, caller access.Caller, shortcut *model.Shortcut, system bool) (*model.Shortcut, error)
	ListShortcuts(ctx context.Context, caller access.Caller) ([]model.Shortcut, error)
	ListSystemShortcuts(ctx context.Context) ([]model.Shortcut, error)
	UpdateShortcut(ctx context.Context, caller access.Caller, shortcut *model.Shortcut) error
	DeleteShortcut(ctx context.Context, caller access.Caller, uuid string) error
	CreateTodo(ctx context.Context, caller access.Caller, todo *model.Todo) (*model.Todo, error)
	ListTodos(ctx context.Context, caller access.Caller) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, caller access.Caller, todo *model.Todo) error
	DeleteTodo(ctx context.Context, caller access.Caller, uuid string) error
	CreateNote(ctx context.Context, caller access.Caller, note *model.Note) (*model.Note, error)
	ListNotes(ctx context.Context, caller access.Caller) ([]model.Note, error)
	UpdateNote(ctx context.Context, caller access.Caller, note *model.Note) error
	DeleteNote(ctx context.Context, caller access.Caller, uuid string) error
}
