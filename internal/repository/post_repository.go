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

type PostRepository struct {
	*config.Database
}

func NewPostRepository(database *config.Database) *PostRepository {
	return &PostRepository{database}
}

func (r *PostRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// Create : сохраняет новый пост
func (r *PostRepository) Create(ctx context.Context, exec sqlx.ExtContext, post *model.Post) error {
	query := `
		INSERT INTO posts (uuid, author_uuid, content, is_urgent)
		VALUES ($1, $2, $3, $4)
	`
	_, err := exec.ExecContext(ctx, query, post.UUID, post.AuthorUUID, post.Content, post.IsUrgent)
	if err != nil {
		return util.LogError("[PostRepo] не удалось сохранить пост", err)
	}
	return nil
}

// AddAttachment : сохраняет вложение поста
func (r *PostRepository) AddAttachment(ctx context.Context, exec sqlx.ExtContext, attachment *model.Attachment) error {
	query := `
		INSERT INTO post_attachments (uuid, post_uuid, filename_original, mime_type, size_bytes, is_image, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := exec.ExecContext(ctx, query,
		attachment.UUID, attachment.PostUUID, attachment.FilenameOriginal,
		attachment.MimeType, attachment.SizeBytes, attachment.IsImage, attachment.StoragePath)
	if err != nil {
		return util.LogError("[PostRepo] не удалось сохранить вложение", err)
	}
	return nil
}

// GetByUUID : возвращает пост со счётчиками лайков и комментариев
func (r *PostRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, postUUID string) (*model.Post, error) {
	query := `
		SELECT p.uuid, p.author_uuid, u.name AS author_name, p.content, p.is_urgent, p.created_at,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_uuid = p.uuid) AS like_count,
		       (SELECT COUNT(*) FROM post_comments c WHERE c.post_uuid = p.uuid) AS comment_count
		FROM posts AS p
		JOIN users AS u ON u.uuid = p.author_uuid
		WHERE p.uuid = $1
	`
	var post model.Post
	err := sqlx.GetContext(ctx, exec, &post, query, postUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[PostRepo] пост не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить пост", err)
	}
	return &post, nil
}

// ListAll : все посты со счётчиками, новые сверху
func (r *PostRepository) ListAll(ctx context.Context, exec sqlx.ExtContext) ([]model.Post, error) {
	query := `
		SELECT p.uuid, p.author_uuid, u.name AS author_name, p.content, p.is_urgent, p.created_at,
		       (SELECT COUNT(*) FROM post_likes l WHERE l.post_uuid = p.uuid) AS like_count,
		       (SELECT COUNT(*) FROM post_comments c WHERE c.post_uuid = p.uuid) AS comment_count
		FROM posts AS p
		JOIN users AS u ON u.uuid = p.author_uuid
		ORDER BY p.created_at DESC, p.uuid DESC
	`
	posts := []model.Post{}
	if err := sqlx.SelectContext(ctx, exec, &posts, query); err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить список постов", err)
	}
	return posts, nil
}

// ListAttachments : вложения для набора постов
func (r *PostRepository) ListAttachments(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]model.Attachment, error) {
	query := `
		SELECT uuid, post_uuid, filename_original, mime_type, size_bytes, is_image, storage_path, created_at
		FROM post_attachments
		WHERE post_uuid = $1
		ORDER BY created_at ASC
	`
	attachments := []model.Attachment{}
	if err := sqlx.SelectContext(ctx, exec, &attachments, query, postUUID); err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить вложения", err)
	}
	return attachments, nil
}

// Delete : удаляет пост вместе с вложениями, лайками и комментариями
func (r *PostRepository) Delete(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]string, error) {
	var storagePaths []string
	err := sqlx.SelectContext(ctx, exec, &storagePaths,
		`SELECT storage_path FROM post_attachments WHERE post_uuid = $1`, postUUID)
	if err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить вложения поста", err)
	}

	for _, query := range []string{
		`DELETE FROM post_attachments WHERE post_uuid = $1`,
		`DELETE FROM post_likes WHERE post_uuid = $1`,
		`DELETE FROM post_comments WHERE post_uuid = $1`,
		`DELETE FROM posts WHERE uuid = $1`,
	} {
		if _, err := exec.ExecContext(ctx, query, postUUID); err != nil {
			return nil, util.LogError("[PostRepo] не удалось удалить пост", err)
		}
	}

	return storagePaths, nil
}

// Like : идемпотентный лайк
func (r *PostRepository) Like(ctx context.Context, exec sqlx.ExtContext, postUUID, userUUID string) error {
	query := `
		INSERT INTO post_likes (post_uuid, user_uuid)
		VALUES ($1, $2)
		ON CONFLICT (post_uuid, user_uuid) DO NOTHING
	`
	if _, err := exec.ExecContext(ctx, query, postUUID, userUUID); err != nil {
		return util.LogError("[PostRepo] не удалось сохранить лайк", err)
	}
	return nil
}

// Unlike : снимает лайк, отсутствие строки не считается ошибкой
func (r *PostRepository) Unlike(ctx context.Context, exec sqlx.ExtContext, postUUID, userUUID string) error {
	query := `DELETE FROM post_likes WHERE post_uuid = $1 AND user_uuid = $2`
	if _, err := exec.ExecContext(ctx, query, postUUID, userUUID); err != nil {
		return util.LogError("[PostRepo] не удалось удалить лайк", err)
	}
	return nil
}

// CreateComment : сохраняет комментарий к посту
func (r *PostRepository) CreateComment(ctx context.Context, exec sqlx.ExtContext, comment *model.PostComment) error {
	query := `
		INSERT INTO post_comments (uuid, post_uuid, author_uuid, content)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := exec.ExecContext(ctx, query, comment.UUID, comment.PostUUID, comment.AuthorUUID, comment.Content); err != nil {
		return util.LogError("[PostRepo] не удалось сохранить комментарий", err)
	}
	return nil
}

// GetComment : комментарий по UUID
func (r *PostRepository) GetComment(ctx context.Context, exec sqlx.ExtContext, commentUUID string) (*model.PostComment, error) {
	query := `
		SELECT uuid, post_uuid, author_uuid, content, created_at
		FROM post_comments WHERE uuid = $1
	`
	var comment model.PostComment
	err := sqlx.GetContext(ctx, exec, &comment, query, commentUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[PostRepo] комментарий не найден: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить комментарий", err)
	}
	return &comment, nil
}

// ListComments : комментарии поста, старые сверху
func (r *PostRepository) ListComments(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]model.PostComment, error) {
	query := `
		SELECT c.uuid, c.post_uuid, c.author_uuid, u.name AS author_name, c.content, c.created_at
		FROM post_comments AS c
		JOIN users AS u ON u.uuid = c.author_uuid
		WHERE c.post_uuid = $1
		ORDER BY c.created_at ASC
	`
	comments := []model.PostComment{}
	if err := sqlx.SelectContext(ctx, exec, &comments, query, postUUID); err != nil {
		return nil, util.LogError("[PostRepo] не удалось получить комментарии", err)
	}
	return comments, nil
}

// DeleteComment : удаляет комментарий
func (r *PostRepository) DeleteComment(ctx context.Context, exec sqlx.ExtContext, commentUUID string) error {
	query := `DELETE FROM post_comments WHERE uuid = $1`
	if _, err := exec.ExecContext(ctx, query, commentUUID); err != nil {
		return util.LogError("[PostRepo] не удалось удалить комментарий", err)
	}
	return nil
}
