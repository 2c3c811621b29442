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

type ProjectHandler struct {
	ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService}
}

func projectFromRequest(req *requestresponse.ProjectRequest) *model.Project {
	return &model.Project{
		Name:       req.Name,
		Status:     req.Status,
		Priority:   req.Priority,
		Visibility: req.Visibility,
		Color:      req.Color,
		Archived:   req.Archived,
	}
}

// CreateProject godoc
// @Summary Создание проекта
// @Description Создатель становится владельцем и единственной записью участника с ролью owner.
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body requestresponse.ProjectRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ProjectResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects [post]
// @Security BearerAuth
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	project, err := h.ProjectService.CreateProject(r.Context(), caller, projectFromRequest(&req), req.Members)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ProjectResponse{Data: project})
}

// GetProject godoc
// @Summary Один проект
// @Description Проект с участниками, если он видим вызывающему.
// @Tags Projects
// @Produce json
// @Param uuid path string true "UUID проекта"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ProjectResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects/{uuid} [get]
// @Security BearerAuth
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	project, err := h.ProjectService.GetProject(r.Context(), caller, chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ProjectResponse{Data: project})
}

// ListProjects godoc
// @Summary Список проектов
// @Description Проекты, видимые вызывающему. Параметр archived переключает архив.
// @Tags Projects
// @Produce json
// @Param archived query bool false "Показать архивные"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListProjectsResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects [get]
// @Security BearerAuth
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	archived := r.URL.Query().Get("archived") == "true"

	projects, err := h.ProjectService.ListProjects(r.Context(), caller, archived)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListProjectsResponse{Data: projects, Count: len(projects)})
}

// UpdateProject godoc
// @Summary Обновление проекта
// @Description Изменяет проект. Владелец или администратор.
// @Tags Projects
// @Accept json
// @Produce json
// @Param uuid path string true "UUID проекта"
// @Param body body requestresponse.ProjectRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ProjectResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects/{uuid} [put]
// @Security BearerAuth
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.ProjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	project := projectFromRequest(&req)
	project.UUID = chi.URLParam(r, "uuid")

	updated, err := h.ProjectService.UpdateProject(r.Context(), caller, project)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ProjectResponse{Data: updated})
}

// DeleteProject godoc
// @Summary Удаление проекта
// @Description Удаляет проект вместе с задачами и участниками. Владелец или администратор.
// @Tags Projects
// @Produce json
// @Param uuid path string true "UUID проекта"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Проект удалён"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects/{uuid} [delete]
// @Security BearerAuth
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.ProjectService.DeleteProject(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMember godoc
// @Summary Добавление участника
// @Description Добавляет участника с ролью admin, member или viewer. Владелец проекта или администратор.
// @Tags Projects
// @Accept json
// @Produce json
// @Param uuid path string true "UUID проекта"
// @Param body body requestresponse.AddMemberRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects/{uuid}/members [post]
// @Security BearerAuth
func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.AddMemberRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.ProjectService.AddMember(r.Context(), caller, chi.URLParam(r, "uuid"), req.UserUUID, req.Role); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// RemoveMember godoc
// @Summary Удаление участника
// @Description Удаляет участника проекта. Запись владельца удалить нельзя.
// @Tags Projects
// @Produce json
// @Param uuid path string true "UUID проекта"
// @Param userUUID path string true "UUID участника"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Участник удалён"
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/projects/{uuid}/members/{userUUID} [delete]
// @Security BearerAuth
func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.ProjectService.RemoveMember(r.Context(), caller, chi.URLParam(r, "uuid"), chi.URLParam(r, "userUUID")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
