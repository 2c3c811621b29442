package handler

import (
	"encoding/json"
	"intranet-portal/internal/model"
	"intranet-portal/internal/model/requestresponse"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	ports.PostService
	ports.FeedService
}

func NewPostHandler(postService ports.PostService, feedService ports.FeedService) *PostHandler {
	return &PostHandler{postService, feedService}
}

// GetFeed godoc
// @Summary Общая лента
// @Description Посты и видимые вызывающему события календаря, от новых к старым.
// @Tags Feed
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FeedResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/feed [get]
// @Security BearerAuth
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	items, err := h.FeedService.GetFeed(r.Context(), caller)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.FeedResponse{Data: items, Count: len(items)})
}

// CreatePost godoc
// @Summary Создание поста
// @Description Создаёт пост с вложениями, возвращает pre-signed PUT URL для каждого вложения.
// @Tags Posts
// @Accept json
// @Produce json
// @Param body body requestresponse.CreatePostRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CreatePostResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts [post]
// @Security BearerAuth
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreatePostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	post := &model.Post{
		Content:  req.Content,
		IsUrgent: req.IsUrgent,
	}

	attachments := make([]model.Attachment, 0, len(req.Attachments))
	for _, meta := range req.Attachments {
		attachments = append(attachments, model.Attachment{
			FilenameOriginal: meta.Name,
			MimeType:         meta.Mime,
			SizeBytes:        meta.Size,
			IsImage:          meta.IsImage,
		})
	}

	putURLs, err := h.PostService.CreatePost(r.Context(), caller, post, attachments)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	post.Attachments = attachments

	resp := requestresponse.CreatePostResponse{}
	resp.Data.Post = post
	resp.Data.PutURLs = putURLs

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetPost godoc
// @Summary Один пост
// @Description Пост со счётчиками лайков, комментариев и вложениями.
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PostResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/{uuid} [get]
// @Security BearerAuth
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, ok := callerFrom(w, r); !ok {
		return
	}

	post, err := h.PostService.GetPost(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.PostResponse{Data: post})
}

// DeletePost godoc
// @Summary Удаление поста
// @Description Удаляет пост вместе с лайками, комментариями и вложениями. Автор или администратор.
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Пост удалён"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/{uuid} [delete]
// @Security BearerAuth
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LikePost godoc
// @Summary Лайк поста
// @Description Ставит лайк. Повторный лайк того же пользователя не меняет счётчик.
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/{uuid}/like [put]
// @Security BearerAuth
func (h *PostHandler) LikePost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PostService.LikePost(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// UnlikePost godoc
// @Summary Снятие лайка
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/{uuid}/like [delete]
// @Security BearerAuth
func (h *PostHandler) UnlikePost(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PostService.UnlikePost(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// AddComment godoc
// @Summary Комментарий к посту
// @Tags Posts
// @Accept json
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param body body requestresponse.CreateCommentRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CommentResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/{uuid}/comments [post]
// @Security BearerAuth
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	comment, err := h.PostService.AddComment(r.Context(), caller, chi.URLParam(r, "uuid"), req.Content)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.CommentResponse{Data: comment})
}

// ListComments godoc
// @Summary Комментарии поста
// @Tags Posts
// @Produce json
// @Param uuid path string true "UUID поста"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListCommentsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/{uuid}/comments [get]
// @Security BearerAuth
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, ok := callerFrom(w, r); !ok {
		return
	}

	comments, err := h.PostService.ListComments(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListCommentsResponse{Data: comments, Count: len(comments)})
}

// DeleteComment godoc
// @Summary Удаление комментария
// @Description Удаляет комментарий. Автор комментария или администратор.
// @Tags Posts
// @Produce json
// @Param commentUUID path string true "UUID комментария"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Комментарий удалён"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/posts/comments/{commentUUID} [delete]
// @Security BearerAuth
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeleteComment(r.Context(), caller, chi.URLParam(r, "commentUUID")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
