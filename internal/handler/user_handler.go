package handler

import (
	"encoding/json"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"
	"intranet-portal/internal/model/requestresponse"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/security"
	"intranet-portal/internal/util"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// RegisterUser godoc
// @Summary Регистрация нового сотрудника
// @Description Создаёт сотрудника с логином, паролем и ролью. Требуется токен администратора из config.yaml.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RegisterResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/register [post]
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tokens, err := h.UserService.Register(r.Context(), req.Token, req.Login, req.Password, req.Name, req.Role)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.RegisterResponse{
		Response: requestresponse.RegisterData{
			Login:        req.Login,
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		},
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetUser godoc
// @Summary Карточка сотрудника
// @Description Возвращает данные сотрудника. Доступна любому авторизованному пользователю.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID сотрудника"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [get]
// @Security BearerAuth
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, ok := callerFrom(w, r); !ok {
		return
	}

	user, err := h.UserService.GetUser(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	user.PasswordHash = ""

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.UserResponse{Data: user})
}

// UpdateProfile godoc
// @Summary Обновление профиля сотрудника
// @Description Имя, отдел и должность меняет сам сотрудник либо администратор.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID сотрудника"
// @Param body body requestresponse.UpdateProfileRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [put]
// @Security BearerAuth
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	targetUUID := chi.URLParam(r, "uuid")
	updatedUser := &model.User{
		UUID:       targetUUID,
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
	}

	if err := h.UserService.UpdateProfile(r.Context(), caller.UserUUID, caller.IsAdmin(), updatedUser); err != nil {
		util.HandleAppError(w, err)
		return
	}

	updatedUser.PasswordHash = ""

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.UserResponse{Data: updatedUser})
}

// UpdatePassword godoc
// @Summary Обновление пароля
// @Description Позволяет сотруднику обновить свой пароль. Доступен только владельцу.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID сотрудника"
// @Param body body requestresponse.UpdatePasswordRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdatePasswordResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/password [put]
// @Security BearerAuth
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	targetUUID := chi.URLParam(r, "uuid")
	if caller.UserUUID != targetUUID {
		sendErrorResponse(w, 403, "доступ запрещён")
		return
	}

	var req requestresponse.UpdatePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.UserService.UpdatePassword(r.Context(), targetUUID, req.NewPassword); err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.UpdatePasswordResponse{}
	resp.Response.Updated = true

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UploadAvatar godoc
// @Summary Загрузка аватара
// @Description Сохраняет путь аватара и возвращает pre-signed PUT URL для загрузки файла в хранилище.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID сотрудника"
// @Param body body requestresponse.UploadAvatarRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadAvatarResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid}/avatar [put]
// @Security BearerAuth
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	targetUUID := chi.URLParam(r, "uuid")
	if caller.UserUUID != targetUUID && !caller.IsAdmin() {
		sendErrorResponse(w, 403, "доступ запрещён")
		return
	}

	var req requestresponse.UploadAvatarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	avatarPath, putURL, err := h.UserService.UpdateAvatar(r.Context(), targetUUID, req.Filename)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.UploadAvatarResponse{}
	resp.Response.AvatarPath = avatarPath
	resp.Response.PutURL = putURL

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteUser godoc
// @Summary Удаление сотрудника
// @Description Удаляет сотрудника. Доступен только администратору.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID сотрудника"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Сотрудник удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/{uuid} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if !caller.IsAdmin() {
		sendErrorResponse(w, 403, "доступ запрещён")
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUsers godoc
// @Summary Справочник сотрудников
// @Description Возвращает список сотрудников с постраничной навигацией (cursor-based).
// @Tags Users
// @Produce json
// @Param cursor query string false "Курсор для пагинации"
// @Param limit query int false "Количество сотрудников в списке" default(50) minimum(1) maximum(100)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, ok := callerFrom(w, r); !ok {
		return
	}

	cursor := r.URL.Query().Get("cursor")
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}

	users, nextCursor, err := h.UserService.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	for _, user := range users {
		user.PasswordHash = ""
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Data.Users = users
	resp.Data.NextCursor = nextCursor

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке, если декодирование не удалось.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
			Error: requestresponse.ErrorDetail{
				Code: 400,
				Text: "invalid request body",
			},
		})
		return err
	}
	return nil
}

// callerFrom достаёт claims из контекста и превращает их в access.Caller
func callerFrom(w http.ResponseWriter, r *http.Request) (access.Caller, bool) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
			Error: requestresponse.ErrorDetail{
				Code: http.StatusUnauthorized,
				Text: "unauthorized",
			},
		})
		return access.Caller{}, false
	}
	return access.CallerFromClaims(claims), true
}

// sendErrorResponse отправляет ответ об ошибке JSON с указанным кодом статуса и сообщением
func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}
