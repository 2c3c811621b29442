package ports

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// PostRepository : SQL слой ленты постов
type PostRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, post *model.Post) error
	AddAttachment(ctx context.Context, exec sqlx.ExtContext, attachment *model.Attachment) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, postUUID string) (*model.Post, error)
	ListAll(ctx context.Context, exec sqlx.ExtContext) ([]model.Post, error)
	ListAttachments(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]model.Attachment, error)
	Delete(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]string, error)
	Like(ctx context.Context, exec sqlx.ExtContext, postUUID, userUUID string) error
	Unlike(ctx context.Context, exec sqlx.ExtContext, postUUID, userUUID string) error
	CreateComment(ctx context.Context, exec sqlx.ExtContext, comment *model.PostComment) error
	GetComment(ctx context.Context, exec sqlx.ExtContext, commentUUID string) (*model.PostComment, error)
	ListComments(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]model.PostComment, error)
	DeleteComment(ctx context.Context, exec sqlx.ExtContext, commentUUID string) error
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type PostService interface {
	CreatePost(ctx context.Context, caller access.Caller, post *model.Post, attachments []model.Attachment) (map[string]string, error)
	GetPost(ctx context.Context, postUUID string) (*model.Post, error)
	DeletePost(ctx context.Context, caller access.Caller, postUUID string) error
	LikePost(ctx context.Context, caller access.Caller, postUUID string) error
	UnlikePost(ctx context.Context, caller access.Caller, postUUID string) error
	AddComment(ctx context.Context, caller access.Caller, postUUID, content string) (*model.PostComment, error)
	ListComments(ctx context.Context, postUUID string) ([]model.PostComment, error)
	DeleteComment(ctx context.Context, caller access.Caller, commentUUID string) error
}

// FeedService : агрегатор общей ленты
type FeedService interface {
	GetFeed(ctx context.Context, caller access.Caller) ([]model.FeedItem, error)
}
