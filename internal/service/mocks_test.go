package service_test

import (
	"context"
	"database/sql"
	"intranet-portal/internal/model"
	"intranet-portal/internal/security"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

// ===== Общие моки репозиториев для тестов сервисов =====

type fakeTx struct{}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return &sql.Row{}
}
func (f *fakeTx) QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error) {
	return nil, nil
}
func (f *fakeTx) QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row {
	return &sqlx.Row{}
}
func (f *fakeTx) BindNamed(query string, arg interface{}) (string, []interface{}, error) {
	return "", nil, nil
}
func (f *fakeTx) DriverName() string         { return "fake" }
func (f *fakeTx) Rebind(query string) string { return query }

func noopTx() (sqlx.ExtContext, func() error, func() error, error) {
	return &fakeTx{}, func() error { return nil }, func() error { return nil }, nil
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(userUUID, kind, title, body, contextTag string) {
	m.Called(userUUID, kind, title, body, contextTag)
}

type MockS3Storage struct{ mock.Mock }

func (m *MockS3Storage) GeneratePresignedPutURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) GeneratePresignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockS3Storage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, exec sqlx.ExtContext, user *model.User) (*model.User, error) {
	args := m.Called(ctx, exec, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.User, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByLogin(ctx context.Context, exec sqlx.ExtContext, login string) (*model.User, error) {
	args := m.Called(ctx, exec, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, exec sqlx.ExtContext, user *model.User) error {
	return m.Called(ctx, exec, user).Error(0)
}

func (m *MockUserRepository) UpdateAvatar(ctx context.Context, exec sqlx.ExtContext, uuid, avatarPath string) error {
	return m.Called(ctx, exec, uuid, avatarPath).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, exec sqlx.ExtContext, uuid, newPasswordHash string) error {
	return m.Called(ctx, exec, uuid, newPasswordHash).Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	return m.Called(ctx, exec, uuid).Error(0)
}

func (m *MockUserRepository) Exists(ctx context.Context, exec sqlx.ExtContext, uuid string) (bool, error) {
	args := m.Called(ctx, exec, uuid)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, exec sqlx.ExtContext, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, exec, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.User), args.String(1), args.Error(2)
}

type MockJWTRepository struct{ mock.Mock }

func (m *MockJWTRepository) FindByUUID(ctx context.Context, uuid string) (*model.RefreshToken, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockJWTRepository) MarkRefreshTokenUsedByUUID(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

func (m *MockJWTRepository) SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

type MockJWTService struct{ mock.Mock }

func (m *MockJWTService) GenerateAccessRefreshTokens(userUUID string, role string) (*model.TokensPair, *model.RefreshToken, error) {
	args := m.Called(userUUID, role)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.TokensPair), args.Get(1).(*model.RefreshToken), args.Error(2)
}

func (m *MockJWTService) ValidateJWT(tokenString string, secret []byte) (*security.Claims, error) {
	args := m.Called(tokenString, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Claims), args.Error(1)
}

type MockPostRepository struct{ mock.Mock }

func (m *MockPostRepository) Create(ctx context.Context, exec sqlx.ExtContext, post *model.Post) error {
	return m.Called(ctx, exec, post).Error(0)
}

func (m *MockPostRepository) AddAttachment(ctx context.Context, exec sqlx.ExtContext, attachment *model.Attachment) error {
	return m.Called(ctx, exec, attachment).Error(0)
}

func (m *MockPostRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, postUUID string) (*model.Post, error) {
	args := m.Called(ctx, exec, postUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListAll(ctx context.Context, exec sqlx.ExtContext) ([]model.Post, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) ListAttachments(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]model.Attachment, error) {
	args := m.Called(ctx, exec, postUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockPostRepository) Delete(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]string, error) {
	args := m.Called(ctx, exec, postUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPostRepository) Like(ctx context.Context, exec sqlx.ExtContext, postUUID, userUUID string) error {
	return m.Called(ctx, exec, postUUID, userUUID).Error(0)
}

func (m *MockPostRepository) Unlike(ctx context.Context, exec sqlx.ExtContext, postUUID, userUUID string) error {
	return m.Called(ctx, exec, postUUID, userUUID).Error(0)
}

func (m *MockPostRepository) CreateComment(ctx context.Context, exec sqlx.ExtContext, comment *model.PostComment) error {
	return m.Called(ctx, exec, comment).Error(0)
}

func (m *MockPostRepository) GetComment(ctx context.Context, exec sqlx.ExtContext, commentUUID string) (*model.PostComment, error) {
	args := m.Called(ctx, exec, commentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PostComment), args.Error(1)
}

func (m *MockPostRepository) ListComments(ctx context.Context, exec sqlx.ExtContext, postUUID string) ([]model.PostComment, error) {
	args := m.Called(ctx, exec, postUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PostComment), args.Error(1)
}

func (m *MockPostRepository) DeleteComment(ctx context.Context, exec sqlx.ExtContext, commentUUID string) error {
	return m.Called(ctx, exec, commentUUID).Error(0)
}

func (m *MockPostRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return noopTx()
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Create(ctx context.Context, exec sqlx.ExtContext, event *model.CalendarEvent) error {
	return m.Called(ctx, exec, event).Error(0)
}

func (m *MockEventRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, eventUUID string) (*model.CalendarEvent, error) {
	args := m.Called(ctx, exec, eventUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalendarEvent), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, exec sqlx.ExtContext, event *model.CalendarEvent) error {
	return m.Called(ctx, exec, event).Error(0)
}

func (m *MockEventRepository) Delete(ctx context.Context, exec sqlx.ExtContext, eventUUID string) error {
	return m.Called(ctx, exec, eventUUID).Error(0)
}

func (m *MockEventRepository) IsSharee(ctx context.Context, exec sqlx.ExtContext, eventUUID, userUUID string) (bool, error) {
	args := m.Called(ctx, exec, eventUUID, userUUID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) ListShares(ctx context.Context, exec sqlx.ExtContext, eventUUID string) ([]string, error) {
	args := m.Called(ctx, exec, eventUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEventRepository) ReplaceShares(ctx context.Context, exec sqlx.ExtContext, eventUUID string, userUUIDs []string) error {
	return m.Called(ctx, exec, eventUUID, userUUIDs).Error(0)
}

func (m *MockEventRepository) ListVisible(ctx context.Context, exec sqlx.ExtContext, userUUID string, isAdmin bool) ([]model.CalendarEvent, error) {
	args := m.Called(ctx, exec, userUUID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

func (m *MockEventRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return noopTx()
}

type MockProjectRepository struct{ mock.Mock }

func (m *MockProjectRepository) Create(ctx context.Context, exec sqlx.ExtContext, project *model.Project) error {
	return m.Called(ctx, exec, project).Error(0)
}

func (m *MockProjectRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, projectUUID string) (*model.Project, error) {
	args := m.Called(ctx, exec, projectUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, exec sqlx.ExtContext, project *model.Project) error {
	return m.Called(ctx, exec, project).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, exec sqlx.ExtContext, projectUUID string) error {
	return m.Called(ctx, exec, projectUUID).Error(0)
}

func (m *MockProjectRepository) ListVisible(ctx context.Context, exec sqlx.ExtContext, userUUID string, isAdmin bool, archived bool) ([]model.Project, error) {
	args := m.Called(ctx, exec, userUUID, isAdmin, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepository) AddMember(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID, role string) error {
	return m.Called(ctx, exec, projectUUID, userUUID, role).Error(0)
}

func (m *MockProjectRepository) RemoveMember(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID string) error {
	return m.Called(ctx, exec, projectUUID, userUUID).Error(0)
}

func (m *MockProjectRepository) GetMemberRole(ctx context.Context, exec sqlx.ExtContext, projectUUID, userUUID string) (string, error) {
	args := m.Called(ctx, exec, projectUUID, userUUID)
	return args.String(0), args.Error(1)
}

func (m *MockProjectRepository) ListMembers(ctx context.Context, exec sqlx.ExtContext, projectUUID string) ([]model.ProjectMember, error) {
	args := m.Called(ctx, exec, projectUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMember), args.Error(1)
}

func (m *MockProjectRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return noopTx()
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) Create(ctx context.Context, exec sqlx.ExtContext, task *model.ProjectTask) error {
	return m.Called(ctx, exec, task).Error(0)
}

func (m *MockTaskRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, taskUUID string) (*model.ProjectTask, error) {
	args := m.Called(ctx, exec, taskUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectTask), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, exec sqlx.ExtContext, task *model.ProjectTask) error {
	return m.Called(ctx, exec, task).Error(0)
}

func (m *MockTaskRepository) UpdateOrderIndex(ctx context.Context, exec sqlx.ExtContext, taskUUID string, orderIndex int) error {
	return m.Called(ctx, exec, taskUUID, orderIndex).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, exec sqlx.ExtContext, taskUUID string) error {
	return m.Called(ctx, exec, taskUUID).Error(0)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, exec sqlx.ExtContext, projectUUID string) ([]model.ProjectTask, error) {
	args := m.Called(ctx, exec, projectUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectTask), args.Error(1)
}

func (m *MockTaskRepository) ListAssignees(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]string, error) {
	args := m.Called(ctx, exec, taskUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTaskRepository) ReplaceAssignees(ctx context.Context, exec sqlx.ExtContext, taskUUID string, userUUIDs []string) error {
	return m.Called(ctx, exec, taskUUID, userUUIDs).Error(0)
}

func (m *MockTaskRepository) ListSubtasks(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]model.Subtask, error) {
	args := m.Called(ctx, exec, taskUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Subtask), args.Error(1)
}

func (m *MockTaskRepository) ReplaceSubtasks(ctx context.Context, exec sqlx.ExtContext, taskUUID string, subtasks []model.Subtask) error {
	return m.Called(ctx, exec, taskUUID, subtasks).Error(0)
}

func (m *MockTaskRepository) CreateComment(ctx context.Context, exec sqlx.ExtContext, comment *model.TaskComment) error {
	return m.Called(ctx, exec, comment).Error(0)
}

func (m *MockTaskRepository) ListComments(ctx context.Context, exec sqlx.ExtContext, taskUUID string) ([]model.TaskComment, error) {
	args := m.Called(ctx, exec, taskUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskComment), args.Error(1)
}

func (m *MockTaskRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return noopTx()
}

type MockFolderRepository struct{ mock.Mock }

func (m *MockFolderRepository) Create(ctx context.Context, exec sqlx.ExtContext, folder *model.Folder) error {
	return m.Called(ctx, exec, folder).Error(0)
}

func (m *MockFolderRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, folderUUID string) (*model.Folder, error) {
	args := m.Called(ctx, exec, folderUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderRepository) Rename(ctx context.Context, exec sqlx.ExtContext, folderUUID, name string) error {
	return m.Called(ctx, exec, folderUUID, name).Error(0)
}

func (m *MockFolderRepository) ListChildren(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, parentUUID *string) ([]model.Folder, error) {
	args := m.Called(ctx, exec, ownerUUID, parentUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepository) ListSharedWith(ctx context.Context, exec sqlx.ExtContext, userUUID string) ([]model.Folder, error) {
	args := m.Called(ctx, exec, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderRepository) GetShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID string) (*model.FolderShare, error) {
	args := m.Called(ctx, exec, folderUUID, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FolderShare), args.Error(1)
}

func (m *MockFolderRepository) UpsertShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID, permission string) error {
	return m.Called(ctx, exec, folderUUID, userUUID, permission).Error(0)
}

func (m *MockFolderRepository) RemoveShare(ctx context.Context, exec sqlx.ExtContext, folderUUID, userUUID string) error {
	return m.Called(ctx, exec, folderUUID, userUUID).Error(0)
}

func (m *MockFolderRepository) ListShares(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]model.FolderShare, error) {
	args := m.Called(ctx, exec, folderUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FolderShare), args.Error(1)
}

func (m *MockFolderRepository) DeleteCascade(ctx context.Context, exec sqlx.ExtContext, folderUUID string) ([]string, error) {
	args := m.Called(ctx, exec, folderUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFolderRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	m.Called(ctx)
	return noopTx()
}

type MockFileRepository struct{ mock.Mock }

func (m *MockFileRepository) Create(ctx context.Context, exec sqlx.ExtContext, file *model.DriveFile) error {
	return m.Called(ctx, exec, file).Error(0)
}

func (m *MockFileRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (*model.DriveFile, error) {
	args := m.Called(ctx, exec, fileUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DriveFile), args.Error(1)
}

func (m *MockFileRepository) ListByFolder(ctx context.Context, exec sqlx.ExtContext, ownerUUID string, folderUUID *string) ([]model.DriveFile, error) {
	args := m.Called(ctx, exec, ownerUUID, folderUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DriveFile), args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, exec sqlx.ExtContext, fileUUID string) (string, error) {
	args := m.Called(ctx, exec, fileUUID)
	return args.String(0), args.Error(1)
}
