package ports

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// ProjectRepository : SQL слой проектов
type ProjectRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, project *model.Project) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, projectUUID string) (*model.Project, error)
	Update(ctx context.Context, exec sqlx.ExtContext, project *model.Project) error
	Delete(ctx context.Context, exec sqlx.ExtContext, projectUUID string) error
	ListVisible(ctx context.Context, exec sqlx.ExtContext, userUUID string, isAdmin bool, archived bool) ([]model.Project, error)
	AddMember(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID, role string) error
	RemoveMember(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID string) error
	GetMemberRole(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID string) (string, error)
	ListMembers(ctx context.Context, exec sqlx.ExtContext, projectUUID string) ([]model.ProjectMember, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, caller access.Caller, project *model.Project, memberUUIDs []string) (*model.Project, error)
	GetProject(ctx context.Context, caller access.Caller, projectUUID string) (*model.Project, error)
	ListProjects(ctx context.Context, caller access.Caller, archived bool) ([]model.Project, error)
	UpdateProject(ctx context.Context, caller access.Caller, project *model.Project) (*model.Project, error)
	DeleteProject(ctx context.Context, caller access.Caller, projectUUID string) error
	AddMember(ctx context.Context, caller access.Caller, projectUUID, userUUID, role string) error
	RemoveMember(ctx context.Context, caller access.Caller, projectUUID, userUUID string) error
}
