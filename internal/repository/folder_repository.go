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

type FolderRepository struct {
	*config.Database
}

func NewFolderRepository(database *config.Database) *FolderRepository {
	return &FolderRepository{database}
}

func (r *FolderRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// Create : сохраняет новую папку
func (r *FolderRepository) Create(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) error {
	query := `
		INSERT INTO folders (uuid, owner_uuid, parent_uuid, name)
		VALUES ($1, $2, $3, $4)
	`
	_, err := exec.ExecContext(ctx, query, folder.UUID, folder.OwnerUUID, folder.ParentUUID, folder.Name)
	if err != nil {
		return util.LogError("[FolderRepo] не удалось сохранить папку", err)
	}
	return nil
}

// GetByUUID : папка по UUID, без проверки прав
func (r *FolderRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, folderUUID string) (*model.Folder, error) {
	query := `SELECT uuid, owner_uuid, parent_uuid, name, created_at FROM folders WHERE uuid = $1`
	var folder model.Folder
	err := sqlx.GetContext(ctx, exec, &folder, query, folderUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[FolderRepo] папка не найдена: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[FolderRepo] не удалось получить папку", err)
	}
	return &folder, nil
}

// Rename : переименовывает папку
func (r *FolderRepository) Rename(ctx context.Context, exec sqlx.ExtContext, folderUUID, name string) error {
	query := `UPDATE folders SET name = $2 WHERE uuid = $1`
	if _, err := exec.ExecContext(ctx, query, folderUUID, name); err != nil {
		return util.LogError("[FolderRepo] не удалось переименовать папку", err)
	}
	return nil
}

// ListChildren : подпапки; parentUUID = nil — корень владельца
func (r *FolderRepository) ListChildren(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID *string) ([]model.Folder, error) {
	queryRoot := `
		SELECT uuid, owner_uuid, parent_uuid, name, created_at
		FROM folders
		WHERE owner_uuid = $1 AND parent_uuid IS NULL
		ORDER BY name ASC
	`
	queryChild := `
		SELECT uuid, owner_uuid, parent_uuid, name, created_at
		FROM folders
		WHERE parent_uuid = $1
		ORDER BY name ASC
	`

	folders := []model.Folder{}
	var err error
	if parentUUID == nil {
		err = sqlx.SelectContext(ctx, exec, &folders, queryRoot, ownerUUID)
	} else {
		err = sqlx.SelectContext(ctx, exec, &folders, queryChild, *parentUUID)
	}
	if err != nil {
		return nil, util.LogError("[FolderRepo] не удалось получить список папок", err)
	}
	return folders, nil
}

// ListSharedWith : папки, расшаренные на пользователя
func (r *FolderRepository) ListSharedWith(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Folder, error) {
	query := `
		SELECT f.uuid, f.owner_uuid, f.parent_uuid, f.name, f.created_at
		FROM folders AS f
		INNER JOIN folder_shares AS s ON f.uuid = s.folder_uuid
		WHERE s.user_uuid = $1
		ORDER BY f.name ASC
	`
	folders := []model.Folder{}
	if err := sqlx.SelectContext(ctx, exec, &folders, query, userUUID); err != nil {
		return nil, util.LogError("[FolderRepo] не удалось получить расшаренные папки", err)
	}
	return folders, nil
}

// GetShare : строка доступа пользователя к папке; nil — доступа нет
func (r *FolderRepository) GetShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID string) (*model.FolderShare, error) {
	query := `
		SELECT folder_uuid, user_uuid, permission, created_at
		FROM folder_shares
		WHERE folder_uuid = $1 AND user_uuid = $2
	`
	var share model.FolderShare
	err := sqlx.GetContext(ctx, exec, &share, query, folderUUID, userUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, util.LogError("[FolderRepo] ошибка проверки доступа", err)
	}
	return &share, nil
}

// UpsertShare : выдаёт или обновляет доступ, last-write-wins по (folder_uuid, user_uuid)
func (r *FolderRepository) UpsertShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID, permission string) error {
	query := `
		INSERT INTO folder_shares (folder_uuid, user_uuid, permission, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (folder_uuid, user_uuid) DO UPDATE
		SET permission = EXCLUDED.permission, created_at = NOW()
	`
	if _, err := exec.ExecContext(ctx, query, folderUUID, userUUID, permission); err != nil {
		return util.LogError("[FolderRepo] не удалось сохранить доступ к папке", err)
	}
	return nil
}

// RemoveShare : отзывает доступ пользователя к папке
func (r *FolderRepository) RemoveShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID string) error {
	query := `DELETE FROM folder_shares WHERE folder_uuid = $1 AND user_uuid = $2`
	if _, err := exec.ExecContext(ctx, query, folderUUID, userUUID); err != nil {
		return util.LogError("[FolderRepo] не удалось отозвать доступ", err)
	}
	return nil
}

// ListShares : все строки доступа папки
func (r *FolderRepository) ListShares(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]model.FolderShare, error) {
	query := `
		SELECT folder_uuid, user_uuid, permission, created_at
		FROM folder_shares
		WHERE folder_uuid = $1
		ORDER BY user_uuid
	`
	shares := []model.FolderShare{}
	if err := sqlx.SelectContext(ctx, exec, &shares, query, folderUUID); err != nil {
		return nil, util.LogError("[FolderRepo] не удалось получить список доступа", err)
	}
	return shares, nil
}

// DeleteCascade : удаляет папку со всеми подпапками и файлами.
// Поддерево собирается рекурсивным CTE, вызов — только внутри транзакции.
// Возвращает storage_path удалённых файлов для очистки объектного хранилища.
func (r *FolderRepository) DeleteCascade(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]string, error) {
	subtree := `
		WITH RECURSIVE subtree AS (
			SELECT uuid FROM folders WHERE uuid = $1
			UNION ALL
			SELECT f.uuid FROM folders AS f
			INNER JOIN subtree AS s ON f.parent_uuid = s.uuid
		)
	`

	var storagePaths []string
	err := sqlx.SelectContext(ctx, exec, &storagePaths,
		subtree+`SELECT storage_path FROM drive_files WHERE folder_uuid IN (SELECT uuid FROM subtree)`,
		folderUUID)
	if err != nil {
		return nil, util.LogError("[FolderRepo] не удалось получить файлы поддерева", err)
	}

	for _, query := range []string{
		subtree + `DELETE FROM drive_files WHERE folder_uuid IN (SELECT uuid FROM subtree)`,
		subtree + `DELETE FROM folder_shares WHERE folder_uuid IN (SELECT uuid FROM subtree)`,
		subtree + `DELETE FROM folders WHERE uuid IN (SELECT uuid FROM subtree)`,
	} {
		if _, err := exec.ExecContext(ctx, query, folderUUID); err != nil {
			return nil, util.LogError("[FolderRepo] не удалось удалить поддерево", err)
		}
	}

	return storagePaths, nil
}
