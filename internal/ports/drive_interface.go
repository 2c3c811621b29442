package ports

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// FolderRepository : SQL слой папок диска
type FolderRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, folderUUID string) (*model.Folder, error)
	Rename(ctx context.Context, exec sqlx.ExtContext, folderUUID, name string) error
	ListChildren(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID *string) ([]model.Folder, error)
	ListSharedWith(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Folder, error)
	GetShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID string) (*model.FolderShare, error)
	UpsertShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID, permission string) error
	RemoveShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID string) error
	ListShares(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]model.FolderShare, error)
	DeleteCascade(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]string, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

// FileRepository : SQL слой файлов диска
type FileRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, file *model.DriveFile) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.DriveFile, error)
	ListByFolder(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, folderUUID *string) ([]model.DriveFile, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (string, error)
}

type DriveService interface {
	CreateFolder(ctx context.Context, caller access.Caller, parentUUID *string, name string) (*model.Folder, error)
	GetFolder(ctx context.Context, caller access.Caller, folderUUID string) (*model.Folder, []model.FolderShare, error)
	ListFolder(ctx context.Context, caller access.Caller, folderUUID *string) ([]model.Folder, []model.DriveFile, error)
	RenameFolder(ctx context.Context, caller access.Caller, folderUUID, name string) error
	DeleteFolder(ctx context.Context, caller access.Caller, folderUUID string) error
	ShareFolder(ctx context.Context, caller access.Caller, folderUUID, targetUserUUID, permission string) error
	RemoveFolderShare(ctx context.Context, caller access.Caller, folderUUID, targetUserUUID string) error
	UploadFile(ctx context.Context, caller access.Caller, file *model.DriveFile) (string, error)
	GetFileURL(ctx context.Context, caller access.Caller, fileUUID string) (*model.DriveFile, string, error)
	DeleteFile(ctx context.Context, caller access.Caller, fileUUID string) error
}
