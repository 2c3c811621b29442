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

type PersonalHandler struct {
	ports.PersonalService
}

func NewPersonalHandler(personalService ports.PersonalService) *PersonalHandler {
	return &PersonalHandler{personalService}
}

// CreateShortcut godoc
// @Summary Создание ярлыка
// @Description Создаёт личный ярлык быстрого доступа.
// @Tags Personal
// @Accept json
// @Produce json
// @Param body body requestresponse.ShortcutRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ShortcutResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shortcuts [post]
// @Security BearerAuth
func (h *PersonalHandler) CreateShortcut(w http.ResponseWriter, r *http.Request) {
	h.createShortcut(w, r, false)
}

// CreateSystemShortcut godoc
// @Summary Создание системного ярлыка
// @Description Системный ярлык виден всем сотрудникам. Только администратор.
// @Tags Personal
// @Accept json
// @Produce json
// @Param body body requestresponse.ShortcutRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ShortcutResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/system-shortcuts [post]
// @Security BearerAuth
func (h *PersonalHandler) CreateSystemShortcut(w http.ResponseWriter, r *http.Request) {
	h.createShortcut(w, r, true)
}

func (h *PersonalHandler) createShortcut(w http.ResponseWriter, r *http.Request, system bool) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.ShortcutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	shortcut := &model.Shortcut{
		Title:    req.Title,
		URL:      req.URL,
		Icon:     req.Icon,
		Position: req.Position,
	}

	created, err := h.PersonalService.CreateShortcut(r.Context(), caller, shortcut, system)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ShortcutResponse{Data: created})
}

// ListShortcuts godoc
// @Summary Ярлыки вызывающего
// @Description Системные ярлыки плюс личные ярлыки вызывающего.
// @Tags Personal
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListShortcutsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shortcuts [get]
// @Security BearerAuth
func (h *PersonalHandler) ListShortcuts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	shortcuts, err := h.PersonalService.ListShortcuts(r.Context(), caller)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListShortcutsResponse{Data: shortcuts, Count: len(shortcuts)})
}

// ListSystemShortcuts godoc
// @Summary Системные ярлыки
// @Description Общие для всех сотрудников ярлыки без личных.
// @Tags Personal
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListShortcutsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/system-shortcuts [get]
// @Security BearerAuth
func (h *PersonalHandler) ListSystemShortcuts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, ok := callerFrom(w, r); !ok {
		return
	}

	shortcuts, err := h.PersonalService.ListSystemShortcuts(r.Context())
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListShortcutsResponse{Data: shortcuts, Count: len(shortcuts)})
}

// UpdateShortcut godoc
// @Summary Обновление ярлыка
// @Description Личный ярлык меняет владелец, системный — администратор.
// @Tags Personal
// @Accept json
// @Produce json
// @Param uuid path string true "UUID ярлыка"
// @Param body body requestresponse.ShortcutRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shortcuts/{uuid} [put]
// @Security BearerAuth
func (h *PersonalHandler) UpdateShortcut(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.ShortcutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	shortcut := &model.Shortcut{
		UUID:     chi.URLParam(r, "uuid"),
		Title:    req.Title,
		URL:      req.URL,
		Icon:     req.Icon,
		Position: req.Position,
	}

	if err := h.PersonalService.UpdateShortcut(r.Context(), caller, shortcut); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// DeleteShortcut godoc
// @Summary Удаление ярлыка
// @Tags Personal
// @Produce json
// @Param uuid path string true "UUID ярлыка"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Ярлык удалён"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/shortcuts/{uuid} [delete]
// @Security BearerAuth
func (h *PersonalHandler) DeleteShortcut(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PersonalService.DeleteShortcut(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTodo godoc
// @Summary Создание личной задачи
// @Tags Personal
// @Accept json
// @Produce json
// @Param body body requestresponse.TodoRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.TodoResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/todos [post]
// @Security BearerAuth
func (h *PersonalHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.TodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	todo := &model.Todo{
		Content: req.Content,
		IsDone:  req.IsDone,
		DueDate: req.DueDate,
	}

	created, err := h.PersonalService.CreateTodo(r.Context(), caller, todo)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.TodoResponse{Data: created})
}

// ListTodos godoc
// @Summary Личные задачи вызывающего
// @Tags Personal
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListTodosResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/todos [get]
// @Security BearerAuth
func (h *PersonalHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	todos, err := h.PersonalService.ListTodos(r.Context(), caller)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListTodosResponse{Data: todos, Count: len(todos)})
}

// UpdateTodo godoc
// @Summary Обновление личной задачи
// @Tags Personal
// @Accept json
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param body body requestresponse.TodoRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/todos/{uuid} [put]
// @Security BearerAuth
func (h *PersonalHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.TodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	todo := &model.Todo{
		UUID:    chi.URLParam(r, "uuid"),
		Content: req.Content,
		IsDone:  req.IsDone,
		DueDate: req.DueDate,
	}

	if err := h.PersonalService.UpdateTodo(r.Context(), caller, todo); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// DeleteTodo godoc
// @Summary Удаление личной задачи
// @Tags Personal
// @Produce json
// @Param uuid path string true "UUID задачи"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Задача удалена"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/todos/{uuid} [delete]
// @Security BearerAuth
func (h *PersonalHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PersonalService.DeleteTodo(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateNote godoc
// @Summary Создание заметки
// @Tags Personal
// @Accept json
// @Produce json
// @Param body body requestresponse.NoteRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.NoteResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/notes [post]
// @Security BearerAuth
func (h *PersonalHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.NoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	note := &model.Note{
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	}

	created, err := h.PersonalService.CreateNote(r.Context(), caller, note)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.NoteResponse{Data: created})
}

// ListNotes godoc
// @Summary Заметки вызывающего
// @Tags Personal
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListNotesResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/notes [get]
// @Security BearerAuth
func (h *PersonalHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	notes, err := h.PersonalService.ListNotes(r.Context(), caller)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListNotesResponse{Data: notes, Count: len(notes)})
}

// UpdateNote godoc
// @Summary Обновление заметки
// @Tags Personal
// @Accept json
// @Produce json
// @Param uuid path string true "UUID заметки"
// @Param body body requestresponse.NoteRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/notes/{uuid} [put]
// @Security BearerAuth
func (h *PersonalHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.NoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	note := &model.Note{
		UUID:    chi.URLParam(r, "uuid"),
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	}

	if err := h.PersonalService.UpdateNote(r.Context(), caller, note); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// DeleteNote godoc
// @Summary Удаление заметки
// @Tags Personal
// @Produce json
// @Param uuid path string true "UUID заметки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Заметка удалена"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/notes/{uuid} [delete]
// @Security BearerAuth
func (h *PersonalHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.PersonalService.DeleteNote(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
