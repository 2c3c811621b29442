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

type FileRepository struct {
	*config.Database
}

func NewFileRepository(database *config.Database) *FileRepository {
	return &FileRepository{database}
}

// Create : сохраняет метаданные загруженного файла
func (r *FileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.DriveFile) error {
	query := `
		INSERT INTO drive_files (uuid, owner_uuid, folder_uuid, filename_original, mime_type, size_bytes, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := exec.ExecContext(ctx, query,
		file.UUID, file.OwnerUUID, file.FolderUUID, file.FilenameOriginal,
		file.MimeType, file.SizeBytes, file.StoragePath)
	if err != nil {
		return util.LogError("[FileRepo] не удалось сохранить файл", err)
	}
	return nil
}

// GetByUUID : файл по UUID, без проверки прав
func (r *FileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.DriveFile, error) {
	query := `
		SELECT uuid, owner_uuid, folder_uuid, filename_original, mime_type, size_bytes, storage_path, created_at
		FROM drive_files
		WHERE uuid = $1
	`
	var file model.DriveFile
	err := sqlx.GetContext(ctx, exec, &file, query, fileUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[FileRepo] файл не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить файл", err)
	}
	return &file, nil
}

// ListByFolder : файлы папки; folderUUID = nil — корневые файлы владельца
func (r *FileRepository) ListByFolder(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, folderUUID *string) ([]model.DriveFile, error) {
	queryRoot := `
		SELECT uuid, owner_uuid, folder_uuid, filename_original, mime_type, size_bytes, storage_path, created_at
		FROM drive_files
		WHERE owner_uuid = $1 AND folder_uuid IS NULL
		ORDER BY filename_original ASC
	`
	queryFolder := `
		SELECT uuid, owner_uuid, folder_uuid, filename_original, mime_type, size_bytes, storage_path, created_at
		FROM drive_files
		WHERE folder_uuid = $1
		ORDER BY filename_original ASC
	`

	files := []model.DriveFile{}
	var err error
	if folderUUID == nil {
		err = sqlx.SelectContext(ctx, exec, &files, queryRoot, ownerUUID)
	} else {
		err = sqlx.SelectContext(ctx, exec, &files, queryFolder, *folderUUID)
	}
	if err != nil {
		return nil, util.LogError("[FileRepo] не удалось получить список файлов", err)
	}
	return files, nil
}

// Delete : удаляет файл, возвращает storage_path для очистки хранилища
func (r *FileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (string, error) {
	query := `DELETE FROM drive_files WHERE uuid = $1 RETURNING storage_path`
	var storagePath string
	err := sqlx.GetContext(ctx, exec, &storagePath, query, fileUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("[FileRepo] файл не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return "", util.LogError("[FileRepo] не удалось удалить файл", err)
	}
	return storagePath, nil
}
