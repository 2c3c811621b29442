package ports

import (
	"context"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error)
	FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error)
	UpdateProfile(ctx context.Context, exec sqlx.ExtContext, user *model.User) error
	UpdateAvatar(ctx context.Context, exec sqlx.ExtContext, uuid, avatarPath string) error
	UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error
	DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error
	Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error)
	ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error)
}

type UserService interface {
	Register(ctx context.Context, adminToken string, login string, password string, name string, role string) (*model.TokensPair, error)
	GetUser(ctx context.Context, uuid string) (*model.User, error)
	UpdateProfile(ctx context.Context, callerUUID string, isAdmin bool, updatedUser *model.User) error
	UpdatePassword(ctx context.Context, uuid string, newPassword string) error
	UpdateAvatar(ctx context.Context, uuid string, filename string) (string, string, error)
	DeleteUser(ctx context.Context, uuid string) error
	ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error)
}
