package access

import (
	"intranet-portal/internal/model"
	"intranet-portal/internal/security"
)

// Пакет access — единая точка проверки прав на ресурсы портала.
// Правило чтения общее для всех расшариваемых сущностей: ресурс публичный,
// либо вызывающий — владелец, либо есть в списке доступа, либо ADMIN.
// Правило записи сужается до владельца и ADMIN; исключение одно — папки,
// где share с permission=WRITE даёт право создавать и загружать, но не удалять.

type Caller struct {
	UserUUID string
	Role     string
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

func CallerFromClaims(claims *security.Claims) Caller {
	return Caller{UserUUID: claims.UserUUID, Role: claims.Role}
}

// CanReadEvent : public — читают все; иначе автор, участник шаринга или ADMIN
func CanReadEvent(caller Caller, event *model.CalendarEvent, isSharee bool) bool {
	if event.Visibility == model.VisibilityPublic {
		return true
	}
	return event.AuthorUUID == caller.UserUUID || isSharee || caller.IsAdmin()
}

// CanWriteEvent : редактирование и удаление — только автор или ADMIN,
// членство в шаринге прав на запись не даёт
func CanWriteEvent(caller Caller, event *model.CalendarEvent) bool {
	return event.AuthorUUID == caller.UserUUID || caller.IsAdmin()
}

// CanReadFolder : владелец, любой share (независимо от permission) или ADMIN
func CanReadFolder(caller Caller, folder *model.Folder, share *model.FolderShare) bool {
	return folder.OwnerUUID == caller.UserUUID || share != nil || caller.IsAdmin()
}

// CanUploadToFolder : создание подпапок и загрузка файлов — владелец
// или share с permission=WRITE
func CanUploadToFolder(caller Caller, folder *model.Folder, share *model.FolderShare) bool {
	if folder.OwnerUUID == caller.UserUUID {
		return true
	}
	return share != nil && share.Permission == model.PermissionWrite
}

// CanDeleteFolder : только владелец. ADMIN намеренно не является исключением —
// асимметрия с остальными ресурсами сохранена сознательно
func CanDeleteFolder(caller Caller, folder *model.Folder) bool {
	return folder.OwnerUUID == caller.UserUUID
}

// CanReadFile : файл в папке наследует доступы папки, файл в корне виден только владельцу
func CanReadFile(caller Caller, file *model.DriveFile, folder *model.Folder, share *model.FolderShare) bool {
	if file.OwnerUUID == caller.UserUUID || caller.IsAdmin() {
		return true
	}
	if file.FolderUUID == nil || folder == nil {
		return false
	}
	return CanReadFolder(caller, folder, share)
}

// CanDeleteFile : владелец файла или ADMIN; WRITE-доступ к папке удаления не даёт
func CanDeleteFile(caller Caller, file *model.DriveFile) bool {
	return file.OwnerUUID == caller.UserUUID || caller.IsAdmin()
}

// CanModifyPost : посты читают все, менять и удалять может автор или ADMIN
func CanModifyPost(caller Caller, authorUUID string) bool {
	return authorUUID == caller.UserUUID || caller.IsAdmin()
}

// CanReadProject : public — читают все; иначе владелец, участник (любая роль) или ADMIN
func CanReadProject(caller Caller, project *model.Project, isMember bool) bool {
	if project.Visibility == model.VisibilityPublic {
		return true
	}
	return project.OwnerUUID == caller.UserUUID || isMember || caller.IsAdmin()
}

// CanWriteProject : редактирование и удаление проекта — владелец или ADMIN
func CanWriteProject(caller Caller, project *model.Project) bool {
	return project.OwnerUUID == caller.UserUUID || caller.IsAdmin()
}

// CanEditTasks : задачи меняют участники проекта кроме viewer, владелец и ADMIN
func CanEditTasks(caller Caller, project *model.Project, memberRole string) bool {
	if project.OwnerUUID == caller.UserUUID || caller.IsAdmin() {
		return true
	}
	return memberRole != "" && memberRole != model.MemberRoleViewer
}
