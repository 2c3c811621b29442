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

type TaskHandler struct {
	ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService}
}

func taskFromRequest(req *requestresponse.TaskRequest) (*model.ProjectTask, []model.Subtask) {
	task := &model.ProjectTask{
		ProjectUUID: req.ProjectUUID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	subtasks := make([]model.Subtask, 0, len(req.Subtasks))
	for _, item := range req.Subtasks {
		subtasks = append(subtasks, model.Subtask{
			Title:       item.Title,
			IsCompleted: item.IsCompleted,
		})
	}

	return task, subtasks
}

// CreateTask godoc
// @Summary Создание задачи
// @Description Создаёт задачу с исполнителями и подзадачами. Участники проекта кроме viewer.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body requestresponse.TaskRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TaskResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks [post]
// @Security BearerAuth
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.TaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	task, subtasks := taskFromRequest(&req)

	created, err := h.TaskService.CreateTask(r.Context(), caller, task, req.Assignees, subtasks)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TaskResponse{Data: created})
}

// GetTask godoc
// @Summary Одна задача
// @Description Задача с исполнителями и подзадачами, если проект видим вызывающему.
// @Tags Tasks
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TaskResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid} [get]
// @Security BearerAuth
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.GetTask(r.Context(), caller, chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TaskResponse{Data: task})
}

// ListTasks godoc
// @Summary Задачи проекта
// @Description Задачи в порядке order_index, с исполнителями и подзадачами.
// @Tags Tasks
// @Produce json
// @Param project_uuid query string true "UUID проекта"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListTasksResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks [get]
// @Security BearerAuth
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	projectUUID := r.URL.Query().Get("project_uuid")
	if projectUUID == "" {
		sendErrorResponse(w, 400, "project_uuid обязателен")
		return
	}

	tasks, err := h.TaskService.ListTasks(r.Context(), caller, projectUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListTasksResponse{Data: tasks, Count: len(tasks)})
}

// UpdateTask godoc
// @Summary Обновление задачи
// @Description Изменяет задачу; исполнители и подзадачи заменяются целиком. Уведомления получают только новые исполнители.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param body body requestresponse.TaskRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TaskResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid} [put]
// @Security BearerAuth
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.TaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	task, subtasks := taskFromRequest(&req)
	task.UUID = chi.URLParam(r, "uuid")

	updated, err := h.TaskService.UpdateTask(r.Context(), caller, task, req.Assignees, subtasks)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TaskResponse{Data: updated})
}

// UpdateTaskStatus godoc
// @Summary Смена статуса задачи
// @Description Переходы между статусами свободные. Переход в done фиксирует completed_at, выход из done сбрасывает его.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param body body requestresponse.UpdateTaskStatusRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TaskResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid}/status [put]
// @Security BearerAuth
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateTaskStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	task, err := h.TaskService.UpdateStatus(r.Context(), caller, chi.URLParam(r, "uuid"), req.Status)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TaskResponse{Data: task})
}

// ReorderTask godoc
// @Summary Перемещение задачи
// @Description Меняет позицию задачи в колонке, остальные поля не трогает.
// @Tags Tasks
// @Accept json
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param body body requestresponse.ReorderTaskRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid}/reorder [put]
// @Security BearerAuth
func (h *TaskHandler) ReorderTask(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.ReorderTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.TaskService.Reorder(r.Context(), caller, chi.URLParam(r, "uuid"), req.OrderIndex); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// DeleteTask godoc
// @Summary Удаление задачи
// @Description Удаляет задачу вместе с исполнителями, подзадачами и комментариями.
// @Tags Tasks
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Задача удалена"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid} [delete]
// @Security BearerAuth
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddTaskComment godoc
// @Summary Комментарий к задаче
// @Tags Tasks
// @Accept json
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param body body requestresponse.CreateCommentRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TaskCommentResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid}/comments [post]
// @Security BearerAuth
func (h *TaskHandler) AddTaskComment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	comment, err := h.TaskService.AddComment(r.Context(), caller, chi.URLParam(r, "uuid"), req.Content)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TaskCommentResponse{Data: comment})
}

// ListTaskComments godoc
// @Summary Комментарии задачи
// @Tags Tasks
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListTaskCommentsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/tasks/{uuid}/comments [get]
// @Security BearerAuth
func (h *TaskHandler) ListTaskComments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	comments, err := h.TaskService.ListComments(r.Context(), caller, chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListTaskCommentsResponse{Data: comments, Count: len(comments)})
}
