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

type DriveHandler struct {
	ports.DriveService
}

func NewDriveHandler(driveService ports.DriveService) *DriveHandler {
	return &DriveHandler{driveService}
}

// CreateFolder godoc
// @Summary Создание папки
// @Description Создаёт папку в корне своего диска или внутри папки, к которой есть WRITE-доступ.
// @Tags Drive
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateFolderRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FolderResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/folders [post]
// @Security BearerAuth
func (h *DriveHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.CreateFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	folder, err := h.DriveService.CreateFolder(r.Context(), caller, req.ParentUUID, req.Name)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.FolderResponse{}
	resp.Data.Folder = folder

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetFolder godoc
// @Summary Папка и её список доступа
// @Tags Drive
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FolderResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/folders/{uuid} [get]
// @Security BearerAuth
func (h *DriveHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	folder, shares, err := h.DriveService.GetFolder(r.Context(), caller, chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.FolderResponse{}
	resp.Data.Folder = folder
	resp.Data.Shares = shares

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ListDrive godoc
// @Summary Содержимое диска
// @Description Без folder_uuid — корень: свои папки, доступные по шарингу и файлы без папки.
// @Tags Drive
// @Produce json
// @Param folder_uuid query string false "UUID папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ListFolderResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive [get]
// @Security BearerAuth
func (h *DriveHandler) ListDrive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var folderUUID *string
	if v := r.URL.Query().Get("folder_uuid"); v != "" {
		folderUUID = &v
	}

	folders, files, err := h.DriveService.ListFolder(r.Context(), caller, folderUUID)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.ListFolderResponse{}
	resp.Data.Folders = folders
	resp.Data.Files = files

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// RenameFolder godoc
// @Summary Переименование папки
// @Tags Drive
// @Accept json
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param body body requestresponse.RenameFolderRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/folders/{uuid} [put]
// @Security BearerAuth
func (h *DriveHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.RenameFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.DriveService.RenameFolder(r.Context(), caller, chi.URLParam(r, "uuid"), req.Name); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// DeleteFolder godoc
// @Summary Удаление папки
// @Description Каскадно удаляет папку, все подпапки и файлы. Только владелец.
// @Tags Drive
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Папка удалена"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/folders/{uuid} [delete]
// @Security BearerAuth
func (h *DriveHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.DriveService.DeleteFolder(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ShareFolder godoc
// @Summary Выдача доступа к папке
// @Description Только владелец; повторная выдача тому же пользователю перезаписывает уровень доступа.
// @Tags Drive
// @Accept json
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param body body requestresponse.ShareFolderRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/folders/{uuid}/share [post]
// @Security BearerAuth
func (h *DriveHandler) ShareFolder(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.ShareFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.DriveService.ShareFolder(r.Context(), caller, chi.URLParam(r, "uuid"), req.TargetUserUUID, req.Permission); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// RemoveFolderShare godoc
// @Summary Снятие доступа к папке
// @Description Владелец снимает любой доступ, пользователь — только свой.
// @Tags Drive
// @Accept json
// @Produce json
// @Param uuid path string true "UUID папки"
// @Param body body requestresponse.RemoveFolderShareRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/folders/{uuid}/share [delete]
// @Security BearerAuth
func (h *DriveHandler) RemoveFolderShare(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.RemoveFolderShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.DriveService.RemoveFolderShare(r.Context(), caller, chi.URLParam(r, "uuid"), req.TargetUserUUID); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.SuccessResponse{Message: "Операция выполнена успешно"})
}

// UploadFile godoc
// @Summary Загрузка файла
// @Description Сохраняет мета-данные и возвращает pre-signed PUT URL; контент уходит напрямую в хранилище.
// @Tags Drive
// @Accept json
// @Produce json
// @Param body body requestresponse.UploadFileRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UploadFileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/files [post]
// @Security BearerAuth
func (h *DriveHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	var req requestresponse.UploadFileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	file := &model.DriveFile{
		FolderUUID:       req.FolderUUID,
		FilenameOriginal: req.Name,
		MimeType:         req.Mime,
		SizeBytes:        req.Size,
	}

	putURL, err := h.DriveService.UploadFile(r.Context(), caller, file)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.UploadFileResponse{}
	resp.Data.File = file
	resp.Data.PutURL = putURL

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetFile godoc
// @Summary Скачивание файла
// @Description Мета-данные и pre-signed GET URL. Файл наследует доступы своей папки.
// @Tags Drive
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/files/{uuid} [get]
// @Security BearerAuth
func (h *DriveHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	file, getURL, err := h.DriveService.GetFileURL(r.Context(), caller, chi.URLParam(r, "uuid"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	resp := requestresponse.FileResponse{}
	resp.Data.File = file
	resp.Data.GetURL = getURL

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Удаляет файл из БД и хранилища. Владелец или администратор; WRITE-доступ к папке права на удаление не даёт.
// @Tags Drive
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 204 "Файл удалён"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/drive/files/{uuid} [delete]
// @Security BearerAuth
func (h *DriveHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFrom(w, r)
	if !ok {
		return
	}

	if err := h.DriveService.DeleteFile(r.Context(), caller, chi.URLParam(r, "uuid")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
