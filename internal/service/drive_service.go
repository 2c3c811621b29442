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

type DriveService struct {
	folderRepository ports.FolderRepository
	fileRepository   ports.FileRepository
	userRepository   ports.UserRepository
	notifier         ports.NotificationDispatcher
	storage          ports.S3Storage
	db               *config.Database
	ttl              time.Duration
}

func NewDriveService(
	folderRepository ports.FolderRepository,
	fileRepository ports.FileRepository,
	userRepository ports.UserRepository,
	dispatcher ports.NotificationDispatcher,
	storage ports.S3Storage,
	db *config.Database,
	ttl time.Duration,
) *DriveService {
	return &DriveService{
		folderRepository: folderRepository,
		fileRepository:   fileRepository,
		userRepository:   userRepository,
		notifier:         dispatcher,
		storage:          storage,
		db:               db,
		ttl:              ttl,
	}
}

// folderShareFor : nil когда share-строки нет
func (s *DriveService) folderShareFor(ctx context.Context, folderUUID, userUUID string) (*model.FolderShare, error) {
	share, err := s.folderRepository.GetShare(ctx, s.db, folderUUID, userUUID)
	if err != nil {
		return nil, util.LogError("[DriveService] ошибка проверки доступа к папке", err)
	}
	return share, nil
}

// CreateFolder : в корне — у себя; в чужой папке нужен WRITE-доступ
func (s *DriveService) CreateFolder(ctx context.Context, caller access.Caller, parentUUID *string, name string) (*model.Folder, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("[DriveService] имя папки обязательно: %w", apperr.ErrValidation)
	}

	folder := &model.Folder{
		UUID:       uuid.New().String(),
		OwnerUUID:  caller.UserUUID,
		ParentUUID: parentUUID,
		Name:       name,
	}

	if parentUUID != nil {
		parent, err := s.folderRepository.GetByUUID(ctx, s.db, *parentUUID)
		if err != nil {
			return nil, util.LogError("[DriveService] родительская папка не найдена", err)
		}

		share, err := s.folderShareFor(ctx, parent.UUID, caller.UserUUID)
		if err != nil {
			return nil, err
		}

		if !access.CanUploadToFolder(caller, parent, share) {
			return nil, fmt.Errorf("[DriveService] нет прав на создание в этой папке: %w", apperr.ErrForbidden)
		}

		// подпапка в чужом дереве принадлежит владельцу дерева
		folder.OwnerUUID = parent.OwnerUUID
	}

	if err := s.folderRepository.Create(ctx, s.db, folder); err != nil {
		return nil, util.LogError("[DriveService] не удалось создать папку", err)
	}

	return folder, nil
}

// GetFolder : папка и её share-список
func (s *DriveService) GetFolder(ctx context.Context, caller access.Caller, folderUUID string) (*model.Folder, []model.FolderShare, error) {
	folder, err := s.folderRepository.GetByUUID(ctx, s.db, folderUUID)
	if err != nil {
		return nil, nil, util.LogError("[DriveService] папка не найдена", err)
	}

	share, err := s.folderShareFor(ctx, folderUUID, caller.UserUUID)
	if err != nil {
		return nil, nil, err
	}

	if !access.CanReadFolder(caller, folder, share) {
		return nil, nil, fmt.Errorf("[DriveService] доступ к папке запрещён: %w", apperr.ErrForbidden)
	}

	shares, err := s.folderRepository.ListShares(ctx, s.db, folderUUID)
	if err != nil {
		return nil, nil, util.LogError("[DriveService] не удалось получить список доступа", err)
	}

	return folder, shares, nil
}

// ListFolder : содержимое папки; folderUUID == nil — корень диска вызывающего
// плюс папки, которыми с ним поделились
func (s *DriveService) ListFolder(ctx context.Context, caller access.Caller, folderUUID *string) ([]model.Folder, []model.DriveFile, error) {
	if folderUUID == nil {
		folders, err := s.folderRepository.ListChildren(ctx, s.db, caller.UserUUID, nil)
		if err != nil {
			return nil, nil, util.LogError("[DriveService] не удалось получить корневые папки", err)
		}

		shared, err := s.folderRepository.ListSharedWith(ctx, s.db, caller.UserUUID)
		if err != nil {
			return nil, nil, util.LogError("[DriveService] не удалось получить доступные папки", err)
		}
		folders = append(folders, shared...)

		files, err := s.fileRepository.ListByFolder(ctx, s.db, caller.UserUUID, nil)
		if err != nil {
			return nil, nil, util.LogError("[DriveService] не удалось получить файлы", err)
		}

		return folders, files, nil
	}

	folder, err := s.folderRepository.GetByUUID(ctx, s.db, *folderUUID)
	if err != nil {
		return nil, nil, util.LogError("[DriveService] папка не найдена", err)
	}

	share, err := s.folderShareFor(ctx, folder.UUID, caller.UserUUID)
	if err != nil {
		return nil, nil, err
	}

	if !access.CanReadFolder(caller, folder, share) {
		return nil, nil, fmt.Errorf("[DriveService] доступ к папке запрещён: %w", apperr.ErrForbidden)
	}

	folders, err := s.folderRepository.ListChildren(ctx, s.db, folder.OwnerUUID, folderUUID)
	if err != nil {
		return nil, nil, util.LogError("[DriveService] не удалось получить подпапки", err)
	}

	files, err := s.fileRepository.ListByFolder(ctx, s.db, folder.OwnerUUID, folderUUID)
	if err != nil {
		return nil, nil, util.LogError("[DriveService] не удалось получить файлы", err)
	}

	return folders, files, nil
}

// RenameFolder : владелец или WRITE-доступ
func (s *DriveService) RenameFolder(ctx context.Context, caller access.Caller, folderUUID, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("[DriveService] имя папки обязательно: %w", apperr.ErrValidation)
	}

	folder, err := s.folderRepository.GetByUUID(ctx, s.db, folderUUID)
	if err != nil {
		return util.LogError("[DriveService] папка не найдена", err)
	}

	share, err := s.folderShareFor(ctx, folderUUID, caller.UserUUID)
	if err != nil {
		return err
	}

	if !access.CanUploadToFolder(caller, folder, share) {
		return fmt.Errorf("[DriveService] нет прав на изменение папки: %w", apperr.ErrForbidden)
	}

	return s.folderRepository.Rename(ctx, s.db, folderUUID, name)
}

// DeleteFolder : только владелец; каскад поддерева и файлов в одной транзакции,
// объекты S3 удаляются после коммита
func (s *DriveService) DeleteFolder(ctx context.Context, caller access.Caller, folderUUID string) error {
	exec, rollback, commit, err := s.folderRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[DriveService] не удалось начать транзакцию", err)
	}
	defer rollback()

	folder, err := s.folderRepository.GetByUUID(ctx, exec, folderUUID)
	if err != nil {
		return util.LogError("[DriveService] папка не найдена", err)
	}

	if !access.CanDeleteFolder(caller, folder) {
		return fmt.Errorf("[DriveService] удалять папку может только владелец: %w", apperr.ErrForbidden)
	}

	storagePaths, err := s.folderRepository.DeleteCascade(ctx, exec, folderUUID)
	if err != nil {
		return util.LogError("[DriveService] не удалось удалить папку", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[DriveService] не удалось закоммитить транзакцию", err)
	}

	for _, storagePath := range storagePaths {
		if err := s.storage.DeleteObject(ctx, storagePath); err != nil {
			log.Printf("[DriveService] не удалось удалить объект %s из S3: %v", storagePath, err)
		}
	}

	log.Printf("[DriveService] папка %s удалена, файлов: %d", folderUUID, len(storagePaths))

	return nil
}

// ShareFolder : только владелец; повторный share перезаписывает permission
func (s *DriveService) ShareFolder(ctx context.Context, caller access.Caller, folderUUID, targetUserUUID, permission string) error {
	if permission != model.PermissionRead && permission != model.PermissionWrite {
		return fmt.Errorf("[DriveService] неизвестный уровень доступа %q: %w", permission, apperr.ErrValidation)
	}

	folder, err := s.folderRepository.GetByUUID(ctx, s.db, folderUUID)
	if err != nil {
		return util.LogError("[DriveService] папка не найдена", err)
	}

	if folder.OwnerUUID != caller.UserUUID {
		return fmt.Errorf("[DriveService] делиться папкой может только владелец: %w", apperr.ErrForbidden)
	}

	if targetUserUUID == caller.UserUUID {
		return fmt.Errorf("[DriveService] нельзя поделиться папкой с самим собой: %w", apperr.ErrValidation)
	}

	exists, err := s.userRepository.Exists(ctx, s.db, targetUserUUID)
	if err != nil {
		return util.LogError("[DriveService] ошибка проверки пользователя", err)
	}
	if !exists {
		return fmt.Errorf("[DriveService] пользователь для шаринга не найден: %w", apperr.ErrNotFound)
	}

	if err := s.folderRepository.UpsertShare(ctx, s.db, folderUUID, targetUserUUID, permission); err != nil {
		return util.LogError("[DriveService] не удалось сохранить доступ", err)
	}

	s.notifier.Send(targetUserUUID, "folder_share",
		"Доступ к папке",
		fmt.Sprintf("С вами поделились папкой «%s»", folder.Name),
		"drive")

	return nil
}

// RemoveFolderShare : владелец снимает любой доступ, пользователь — только свой
func (s *DriveService) RemoveFolderShare(ctx context.Context, caller access.Caller, folderUUID, targetUserUUID string) error {
	folder, err := s.folderRepository.GetByUUID(ctx, s.db, folderUUID)
	if err != nil {
		return util.LogError("[DriveService] папка не найдена", err)
	}

	if folder.OwnerUUID != caller.UserUUID && targetUserUUID != caller.UserUUID {
		return fmt.Errorf("[DriveService] нет прав на снятие доступа: %w", apperr.ErrForbidden)
	}

	return s.folderRepository.RemoveShare(ctx, s.db, folderUUID, targetUserUUID)
}

// UploadFile : метаданные в БД, контент — напрямую в S3 по pre-signed PUT URL
func (s *DriveService) UploadFile(ctx context.Context, caller access.Caller, file *model.DriveFile) (string, error) {
	if strings.TrimSpace(file.FilenameOriginal) == "" {
		return "", fmt.Errorf("[DriveService] имя файла обязательно: %w", apperr.ErrValidation)
	}

	file.UUID = uuid.New().String()
	file.OwnerUUID = caller.UserUUID

	if file.FolderUUID != nil {
		folder, err := s.folderRepository.GetByUUID(ctx, s.db, *file.FolderUUID)
		if err != nil {
			return "", util.LogError("[DriveService] папка не найдена", err)
		}

		share, err := s.folderShareFor(ctx, folder.UUID, caller.UserUUID)
		if err != nil {
			return "", err
		}

		if !access.CanUploadToFolder(caller, folder, share) {
			return "", fmt.Errorf("[DriveService] нет прав на загрузку в эту папку: %w", apperr.ErrForbidden)
		}

		// файл в чужой папке принадлежит владельцу папки
		file.OwnerUUID = folder.OwnerUUID
	}

	file.StoragePath = fmt.Sprintf("drive/%s/%s%s", file.OwnerUUID, file.UUID, filepath.Ext(file.FilenameOriginal))

	putURL, err := s.storage.GeneratePresignedPutURL(ctx, file.StoragePath, s.ttl)
	if err != nil {
		return "", util.LogError("[DriveService] не удалось сгенерировать pre-signed PUT URL", err)
	}

	if err := s.fileRepository.Create(ctx, s.db, file); err != nil {
		return "", util.LogError("[DriveService] не удалось сохранить файл", err)
	}

	return putURL, nil
}

// GetFileURL : метаданные плюс pre-signed GET URL; файл наследует доступы своей папки
func (s *DriveService) GetFileURL(ctx context.Context, caller access.Caller, fileUUID string) (*model.DriveFile, string, error) {
	file, err := s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return nil, "", util.LogError("[DriveService] файл не найден", err)
	}

	var folder *model.Folder
	var share *model.FolderShare
	if file.FolderUUID != nil {
		folder, err = s.folderRepository.GetByUUID(ctx, s.db, *file.FolderUUID)
		if err != nil {
			return nil, "", util.LogError("[DriveService] папка файла не найдена", err)
		}

		share, err = s.folderShareFor(ctx, folder.UUID, caller.UserUUID)
		if err != nil {
			return nil, "", err
		}
	}

	if !access.CanReadFile(caller, file, folder, share) {
		return nil, "", fmt.Errorf("[DriveService] доступ к файлу запрещён: %w", apperr.ErrForbidden)
	}

	getURL, err := s.storage.GeneratePresignedGetURL(ctx, file.StoragePath, s.ttl)
	if err != nil {
		return nil, "", util.LogError("[DriveService] не удалось сгенерировать pre-signed GET URL", err)
	}

	return file, getURL, nil
}

// DeleteFile : владелец или администратор; WRITE-доступ к папке права на удаление не даёт
func (s *DriveService) DeleteFile(ctx context.Context, caller access.Caller, fileUUID string) error {
	file, err := s.fileRepository.GetByUUID(ctx, s.db, fileUUID)
	if err != nil {
		return util.LogError("[DriveService] файл не найден", err)
	}

	if !access.CanDeleteFile(caller, file) {
		return fmt.Errorf("[DriveService] удалять файл может только владелец или администратор: %w", apperr.ErrForbidden)
	}

	storagePath, err := s.fileRepository.Delete(ctx, s.db, fileUUID)
	if err != nil {
		return util.LogError("[DriveService] не удалось удалить файл", err)
	}

	if err := s.storage.DeleteObject(ctx, storagePath); err != nil {
		log.Printf("[DriveService] не удалось удалить объект %s из S3: %v", storagePath, err)
	}

	return nil
}
