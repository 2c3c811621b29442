package requestresponse

import "intranet-portal/internal/model"

// AttachmentMeta : мета-данные вложения поста
type AttachmentMeta struct {
	Name    string `json:"name" example:"photo.jpg"`
	Mime    string `json:"mime" example:"image/jpeg"`
	Size    int64  `json:"size" example:"102400"`
	IsImage bool   `json:"is_image" example:"true"`
}

// CreatePostRequest : тело запроса на создание поста
type CreatePostRequest struct {
	Content     string           `json:"content" example:"Всем привет!"`
	IsUrgent    bool             `json:"is_urgent" example:"false"`
	Attachments []AttachmentMeta `json:"attachments,omitempty"`
}

// CreatePostResponse : пост и pre-signed PUT URL по UUID вложения
type CreatePostResponse struct {
	Data struct {
		Post    *model.Post       `json:"post"`
		PutURLs map[string]string `json:"put_urls,omitempty"`
	} `json:"data"`
}

// PostResponse : один пост со счётчиками и вложениями
type PostResponse struct {
	Data *model.Post `json:"data"`
}

// CreateCommentRequest : тело комментария
type CreateCommentRequest struct {
	Content string `json:"content" example:"Отличная новость"`
}

// CommentResponse : один комментарий
type CommentResponse struct {
	Data *model.PostComment `json:"data"`
}

// ListCommentsResponse : комментарии поста
type ListCommentsResponse struct {
	Data  []model.PostComment `json:"data"`
	Count int                 `json:"count" example:"3"`
}

// FeedResponse : общая лента — посты и видимые события
type FeedResponse struct {
	Data  []model.FeedItem `json:"data"`
	Count int              `json:"count" example:"10"`
}
