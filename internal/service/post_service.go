package service

import (
	"context"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/access"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PostService struct {
	postRepository ports.PostRepository
	userRepository ports.UserRepository
	storage        ports.S3Storage
	db             *config.Database
	ttl            time.Duration
}

func NewPostService(
	postRepository ports.PostRepository,
	userRepository ports.UserRepository,
	storage ports.S3Storage,
	db *config.Database,
	ttl time.Duration,
) *PostService {
	return &PostService{
		postRepository: postRepository,
		userRepository: userRepository,
		storage:        storage,
		db:             db,
		ttl:            ttl,
	}
}

// CreatePost : создаёт пост с вложениями в одной транзакции,
// возвращает pre-signed PUT URL для каждого вложения (ключ — UUID вложения)
func (s *PostService) CreatePost(ctx context.Context, caller access.Caller, post *model.Post, attachments []model.Attachment) (map[string]string, error) {
	if strings.TrimSpace(post.Content) == "" && len(attachments) == 0 {
		return nil, fmt.Errorf("[PostService] пост не может быть пустым: %w", apperr.ErrValidation)
	}

	post.UUID = uuid.New().String()
	post.AuthorUUID = caller.UserUUID

	exec, rollback, commit, err := s.postRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[PostService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.postRepository.Create(ctx, exec, post); err != nil {
		return nil, util.LogError("[PostService] не удалось сохранить пост", err)
	}

	putURLs := make(map[string]string, len(attachments))
	for i := range attachments {
		attachment := &attachments[i]
		attachment.UUID = uuid.New().String()
		attachment.PostUUID = post.UUID
		attachment.StoragePath = fmt.Sprintf("posts/%s/%s%s", post.UUID, attachment.UUID, filepath.Ext(attachment.FilenameOriginal))

		if err := s.postRepository.AddAttachment(ctx, exec, attachment); err != nil {
			return nil, util.LogError("[PostService] не удалось сохранить вложение", err)
		}

		putURL, err := s.storage.GeneratePresignedPutURL(ctx, attachment.StoragePath, s.ttl)
		if err != nil {
			return nil, util.LogError("[PostService] не удалось сгенерировать pre-signed PUT URL", err)
		}
		putURLs[attachment.UUID] = putURL
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[PostService] не удалось закоммитить транзакцию", err)
	}

	log.Printf("[PostService] пост %s создан, вложений: %d", post.UUID, len(attachments))

	return putURLs, nil
}

// GetPost : пост со счётчиками и вложениями, лента видна всем сотрудникам
func (s *PostService) GetPost(ctx context.Context, postUUID string) (*model.Post, error) {
	post, err := s.postRepository.GetByUUID(ctx, s.db, postUUID)
	if err != nil {
		return nil, util.LogError("[PostService] пост не найден", err)
	}

	attachments, err := s.postRepository.ListAttachments(ctx, s.db, postUUID)
	if err != nil {
		return nil, util.LogError("[PostService] не удалось получить вложения", err)
	}
	post.Attachments = attachments

	return post, nil
}

// DeletePost : автор или администратор; файлы вложений удаляются из S3 после коммита
func (s *PostService) DeletePost(ctx context.Context, caller access.Caller, postUUID string) error {
	exec, rollback, commit, err := s.postRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[PostService] не удалось начать транзакцию", err)
	}
	defer rollback()

	post, err := s.postRepository.GetByUUID(ctx, exec, postUUID)
	if err != nil {
		return util.LogError("[PostService] пост не найден", err)
	}

	if !access.CanModifyPost(caller, post.AuthorUUID) {
		return fmt.Errorf("[PostService] удалять пост может только автор или администратор: %w", apperr.ErrForbidden)
	}

	storagePaths, err := s.postRepository.Delete(ctx, exec, postUUID)
	if err != nil {
		return util.LogError("[PostService] не удалось удалить пост", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[PostService] не удалось закоммитить транзакцию", err)
	}

	for _, storagePath := range storagePaths {
		if err := s.storage.DeleteObject(ctx, storagePath); err != nil {
			log.Printf("[PostService] не удалось удалить объект %s из S3: %v", storagePath, err)
		}
	}

	return nil
}

// LikePost : повторный лайк не ошибка, счётчик не меняется
func (s *PostService) LikePost(ctx context.Context, caller access.Caller, postUUID string) error {
	if _, err := s.postRepository.GetByUUID(ctx, s.db, postUUID); err != nil {
		return util.LogError("[PostService] пост не найден", err)
	}

	return s.postRepository.Like(ctx, s.db, postUUID, caller.UserUUID)
}

func (s *PostService) UnlikePost(ctx context.Context, caller access.Caller, postUUID string) error {
	if _, err := s.postRepository.GetByUUID(ctx, s.db, postUUID); err != nil {
		return util.LogError("[PostService] пост не найден", err)
	}

	return s.postRepository.Unlike(ctx, s.db, postUUID, caller.UserUUID)
}

func (s *PostService) AddComment(ctx context.Context, caller access.Caller, postUUID, content string) (*model.PostComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("[PostService] комментарий не может быть пустым: %w", apperr.ErrValidation)
	}

	if _, err := s.postRepository.GetByUUID(ctx, s.db, postUUID); err != nil {
		return nil, util.LogError("[PostService] пост не найден", err)
	}

	comment := &model.PostComment{
		UUID:       uuid.New().String(),
		PostUUID:   postUUID,
		AuthorUUID: caller.UserUUID,
	}
	comment.Content = content

	if err := s.postRepository.CreateComment(ctx, s.db, comment); err != nil {
		return nil, util.LogError("[PostService] не удалось сохранить комментарий", err)
	}

	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, postUUID string) ([]model.PostComment, error) {
	if _, err := s.postRepository.GetByUUID(ctx, s.db, postUUID); err != nil {
		return nil, util.LogError("[PostService] пост не найден", err)
	}

	return s.postRepository.ListComments(ctx, s.db, postUUID)
}

// DeleteComment : автор комментария или администратор
func (s *PostService) DeleteComment(ctx context.Context, caller access.Caller, commentUUID string) error {
	comment, err := s.postRepository.GetComment(ctx, s.db, commentUUID)
	if err != nil {
		return util.LogError("[PostService] комментарий не найден", err)
	}

	if comment.AuthorUUID != caller.UserUUID && !caller.IsAdmin() {
		return fmt.Errorf("[PostService] удалять комментарий может только автор или администратор: %w", apperr.ErrForbidden)
	}

	return s.postRepository.DeleteComment(ctx, s.db, commentUUID)
}
