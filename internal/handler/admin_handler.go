package handler

import (
	"encoding/json"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model/requestresponse"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	ports.AdminService
	ports.HolidayService
}

func NewAdminHandler(adminService ports.AdminService, holidayService ports.HolidayService) *AdminHandler {
	return &AdminHandler{adminService, holidayService}
}

// GetSetting godoc
// @Summary Чтение настройки портала
// @Description Возвращает настройку по ключу. Только администратор.
// @Tags Admin
// @Produce json
// @Param key path string true "Ключ настройки" example(appearance)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SettingResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/admin/settings/{key} [get]
// @Security BearerAuth
func (h *AdminHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	if !caller.IsAdmin() {
		util.HandleAppError(w, apperr.ErrForbidden)
		return
	}

	setting, err := h.AdminService.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SettingResponse{Data: setting})
}

// SetSetting godoc
// @Summary Запись настройки портала
// @Description Полностью заменяет значение настройки. Только администратор.
// @Tags Admin
// @Accept json
// @Produce json
// @Param key path string true "Ключ настройки" example(appearance)
// @Param body body requestresponse.SetSettingRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/admin/settings/{key} [put]
// @Security BearerAuth
func (h *AdminHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	if !caller.IsAdmin() {
		util.HandleAppError(w, apperr.ErrForbidden)
		return
	}

	var req requestresponse.SetSettingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AdminService.SetSetting(r.Context(), chi.URLParam(r, "key"), req.Value); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// SetSettingField godoc
// @Summary Точечное обновление поля настройки
// @Description Меняет одно поле jsonb-значения настройки. Только администратор.
// @Tags Admin
// @Accept json
// @Produce json
// @Param key path string true "Ключ настройки" example(appearance)
// @Param body body requestresponse.SetSettingFieldRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/admin/settings/{key}/field [put]
// @Security BearerAuth
func (h *AdminHandler) SetSettingField(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	if !caller.IsAdmin() {
		util.HandleAppError(w, apperr.ErrForbidden)
		return
	}

	var req requestresponse.SetSettingFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Field == "" {
		sendErrorResponse(w, http.StatusBadRequest, "поле field обязательно")
		return
	}

	if err := h.AdminService.SetSettingField(r.Context(), chi.URLParam(r, "key"), req.Field, req.Value); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// UploadSettingFile godoc
// @Summary Загрузка файла настройки
// @Description Выдаёт pre-signed PUT URL для файла (логотип, фавикон) и записывает путь в настройку. Только администратор.
// @Tags Admin
// @Accept json
// @Produce json
// @Param key path string true "Ключ настройки" example(appearance)
// @Param body body requestresponse.UploadSettingFileRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadSettingFileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/admin/settings/{key}/file [post]
// @Security BearerAuth
func (h *AdminHandler) UploadSettingFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	if !caller.IsAdmin() {
		util.HandleAppError(w, apperr.ErrForbidden)
		return
	}

	var req requestresponse.UploadSettingFileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Field == "" || req.Filename == "" {
		sendErrorResponse(w, http.StatusBadRequest, "поля field и filename обязательны")
		return
	}

	storagePath, putURL, err := h.AdminService.UploadSettingFile(r.Context(), chi.URLParam(r, "key"), req.Field, req.Filename)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	var resp requestresponse.UploadSettingFileResponse
	resp.Response.StoragePath = storagePath
	resp.Response.PutURL = putURL

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// TestLDAP godoc
// @Summary Проверка LDAP-конфигурации
// @Description Передаёт конфигурацию внешнему сервису проверки и возвращает его вердикт. Только администратор.
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body object true "LDAP-конфигурация"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.LDAPTestResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 502 {object} requestresponse.ErrorResponse
// @Router /api/admin/ldap-test [post]
// @Security BearerAuth
func (h *AdminHandler) TestLDAP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}
	if !caller.IsAdmin() {
		util.HandleAppError(w, apperr.ErrForbidden)
		return
	}

	var rawConfig json.RawMessage
	if err := decodeJSON(w, r, &rawConfig); err != nil {
		return
	}

	result, err := h.AdminService.TestLDAP(r.Context(), rawConfig)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	var resp requestresponse.LDAPTestResponse
	resp.Data.Success = result.Success
	resp.Data.Details = result.Details

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ListHolidays godoc
// @Summary Производственный календарь
// @Description Государственные и корпоративные праздники за год. По умолчанию текущий год.
// @Tags Admin
// @Produce json
// @Param year query int false "Год" example(2025)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListHolidaysResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 502 {object} requestresponse.ErrorResponse
// @Router /api/holidays [get]
// @Security BearerAuth
func (h *AdminHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if _, ok := callerFrom(w, r); !ok {
		return
	}

	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 2100 {
			sendErrorResponse(w, http.StatusBadRequest, "некорректный параметр year")
			return
		}
		year = parsed
	}

	holidays, err := h.HolidayService.Holidays(r.Context(), year)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ListHolidaysResponse{Data: holidays, Count: len(holidays)})
}
