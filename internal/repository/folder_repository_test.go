package repository_test

import (
	"context"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFolderRepository(t *testing.T) (*repository.FolderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	database := &config.Database{DB: sqlx.NewDb(db, "sqlmock")}
	return repository.NewFolderRepository(database), mock
}

func TestFolderRepository_GetByUUID_NotFound(t *testing.T) {
	repo, mock := newTestFolderRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT uuid, owner_uuid, parent_uuid, name, created_at FROM folders").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "owner_uuid", "parent_uuid", "name", "created_at"}))

	_, err := repo.GetByUUID(ctx, repo.DB, "missing")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_GetShare_NoRowIsNotAnError(t *testing.T) {
	repo, mock := newTestFolderRepository(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT folder_uuid, user_uuid, permission, created_at").
		WithArgs("f1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"folder_uuid", "user_uuid", "permission", "created_at"}))

	share, err := repo.GetShare(ctx, repo.DB, "f1", "u1")

	require.NoError(t, err)
	assert.Nil(t, share)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_UpsertShare(t *testing.T) {
	repo, mock := newTestFolderRepository(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO folder_shares").
		WithArgs("f1", "u1", model.PermissionWrite).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpsertShare(ctx, repo.DB, "f1", "u1", model.PermissionWrite)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFolderRepository_DeleteCascade(t *testing.T) {
	repo, mock := newTestFolderRepository(t)
	ctx := context.Background()

	mock.ExpectBegin()

	mock.ExpectQuery("WITH RECURSIVE subtree").
		WithArgs("f1").
		WillReturnRows(sqlmock.NewRows([]string{"storage_path"}).
			AddRow("drive/owner/a.pdf").
			AddRow("drive/owner/b.pdf"))

	mock.ExpectExec("DELETE FROM drive_files").WithArgs("f1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM folder_shares").WithArgs("f1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM folders").WithArgs("f1").WillReturnResult(sqlmock.NewResult(0, 3))

	mock.ExpectCommit()

	exec, rollback, commit, err := repo.BeginTX(ctx)
	require.NoError(t, err)
	defer rollback()

	storagePaths, err := repo.DeleteCascade(ctx, exec, "f1")
	require.NoError(t, err)
	require.NoError(t, commit())

	assert.Equal(t, []string{"drive/owner/a.pdf", "drive/owner/b.pdf"}, storagePaths)
	assert.NoError(t, mock.ExpectationsWereMet())
}
