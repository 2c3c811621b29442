package access_test

import (
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	owner   = access.Caller{UserUUID: "owner", Role: model.RoleUser}
	member  = access.Caller{UserUUID: "member", Role: model.RoleUser}
	someone = access.Caller{UserUUID: "someone", Role: model.RoleUser}
	admin   = access.Caller{UserUUID: "admin", Role: model.RoleAdmin}
)

func TestCanReadEvent(t *testing.T) {
	publicEvent := &model.CalendarEvent{AuthorUUID: "owner", Visibility: model.VisibilityPublic}
	privateEvent := &model.CalendarEvent{AuthorUUID: "owner", Visibility: model.VisibilityPrivate}
	sharedEvent := &model.CalendarEvent{AuthorUUID: "owner", Visibility: model.VisibilityShared}

	tests := []struct {
		name     string
		caller   access.Caller
		event    *model.CalendarEvent
		isSharee bool
		want     bool
	}{
		{"публичное событие видно всем", someone, publicEvent, false, true},
		{"приватное событие видно автору", owner, privateEvent, false, true},
		{"приватное событие скрыто от остальных", someone, privateEvent, false, false},
		{"приватное событие видно администратору", admin, privateEvent, false, true},
		{"shared видно участнику шаринга", member, sharedEvent, true, true},
		{"shared скрыто от не-участника", someone, sharedEvent, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.CanReadEvent(tt.caller, tt.event, tt.isSharee))
		})
	}
}

func TestCanWriteEvent_ShareeCannotWrite(t *testing.T) {
	event := &model.CalendarEvent{AuthorUUID: "owner", Visibility: model.VisibilityShared}

	assert.True(t, access.CanWriteEvent(owner, event))
	assert.True(t, access.CanWriteEvent(admin, event))
	// членство в шаринге даёт только чтение
	assert.False(t, access.CanWriteEvent(member, event))
}

func TestFolderPermissions(t *testing.T) {
	folder := &model.Folder{UUID: "f1", OwnerUUID: "owner"}
	readShare := &model.FolderShare{FolderUUID: "f1", UserUUID: "member", Permission: model.PermissionRead}
	writeShare := &model.FolderShare{FolderUUID: "f1", UserUUID: "member", Permission: model.PermissionWrite}

	t.Run("READ даёт чтение, но не загрузку", func(t *testing.T) {
		assert.True(t, access.CanReadFolder(member, folder, readShare))
		assert.False(t, access.CanUploadToFolder(member, folder, readShare))
	})

	t.Run("WRITE даёт загрузку, но не удаление папки", func(t *testing.T) {
		assert.True(t, access.CanUploadToFolder(member, folder, writeShare))
		assert.False(t, access.CanDeleteFolder(member, folder))
	})

	t.Run("удаление папки доступно только владельцу, даже не администратору", func(t *testing.T) {
		assert.True(t, access.CanDeleteFolder(owner, folder))
		assert.False(t, access.CanDeleteFolder(admin, folder))
	})

	t.Run("без share папка не читается", func(t *testing.T) {
		assert.False(t, access.CanReadFolder(someone, folder, nil))
		assert.True(t, access.CanReadFolder(admin, folder, nil))
	})
}

func TestCanReadFile_InheritsFolderAccess(t *testing.T) {
	folderUUID := "f1"
	folder := &model.Folder{UUID: folderUUID, OwnerUUID: "owner"}
	readShare := &model.FolderShare{FolderUUID: folderUUID, UserUUID: "member", Permission: model.PermissionRead}
	fileInFolder := &model.DriveFile{UUID: "file1", OwnerUUID: "owner", FolderUUID: &folderUUID}
	rootFile := &model.DriveFile{UUID: "file2", OwnerUUID: "owner"}

	assert.True(t, access.CanReadFile(member, fileInFolder, folder, readShare))
	assert.False(t, access.CanReadFile(someone, fileInFolder, folder, nil))
	// файл в корне виден только владельцу
	assert.False(t, access.CanReadFile(member, rootFile, nil, nil))
	assert.True(t, access.CanReadFile(owner, rootFile, nil, nil))
}

func TestCanDeleteFile_WriteShareDoesNotAllow(t *testing.T) {
	folderUUID := "f1"
	file := &model.DriveFile{UUID: "file1", OwnerUUID: "owner", FolderUUID: &folderUUID}

	assert.True(t, access.CanDeleteFile(owner, file))
	assert.True(t, access.CanDeleteFile(admin, file))
	assert.False(t, access.CanDeleteFile(member, file))
}

func TestCanModifyPost(t *testing.T) {
	assert.True(t, access.CanModifyPost(owner, "owner"))
	assert.True(t, access.CanModifyPost(admin, "owner"))
	assert.False(t, access.CanModifyPost(someone, "owner"))
}

func TestProjectAccess(t *testing.T) {
	publicProject := &model.Project{OwnerUUID: "owner", Visibility: model.VisibilityPublic}
	privateProject := &model.Project{OwnerUUID: "owner", Visibility: model.VisibilityPrivate}

	assert.True(t, access.CanReadProject(someone, publicProject, false))
	assert.False(t, access.CanReadProject(someone, privateProject, false))
	assert.True(t, access.CanReadProject(member, privateProject, true))
	assert.True(t, access.CanReadProject(admin, privateProject, false))

	assert.True(t, access.CanWriteProject(owner, privateProject))
	assert.False(t, access.CanWriteProject(member, privateProject))
}

func TestCanEditTasks_ViewerIsReadOnly(t *testing.T) {
	project := &model.Project{OwnerUUID: "owner", Visibility: model.VisibilityTeam}

	assert.True(t, access.CanEditTasks(owner, project, ""))
	assert.True(t, access.CanEditTasks(member, project, model.MemberRoleMember))
	assert.True(t, access.CanEditTasks(member, project, model.MemberRoleAdmin))
	assert.False(t, access.CanEditTasks(member, project, model.MemberRoleViewer))
	assert.False(t, access.CanEditTasks(someone, project, ""))
}
