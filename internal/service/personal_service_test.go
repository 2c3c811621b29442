package service_test

import (
	"context"
	"testing"

	"intranet-portal/internal/access"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPersonalRepository struct {
	mock.Mock
}

func (m *MockPersonalRepository) CreateShortcut(ctx context.Context, exec sqlx.ExtContext, shortcut *model.Shortcut) error {
	args := m.Called(ctx, exec, shortcut)
	return args.Error(0)
}

func (m *MockPersonalRepository) GetShortcut(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Shortcut, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Shortcut), args.Error(1)
}

func (m *MockPersonalRepository) ListShortcuts(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Shortcut, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Shortcut), args.Error(1)
}

func (m *MockPersonalRepository) ListSystemShortcuts(ctx context.Context, exec sqlx.ExtContext) ([]model.Shortcut, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Shortcut), args.Error(1)
}

func (m *MockPersonalRepository) UpdateShortcut(ctx context.Context, exec sqlx.ExtContext, shortcut *model.Shortcut) error {
	args := m.Called(ctx, exec, shortcut)
	return args.Error(0)
}

func (m *MockPersonalRepository) DeleteShortcut(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockPersonalRepository) CreateTodo(ctx context.Context, exec sqlx.ExtContext, todo *model.Todo) error {
	args := m.Called(ctx, exec, todo)
	return args.Error(0)
}

func (m *MockPersonalRepository) GetTodo(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Todo, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Todo), args.Error(1)
}

func (m *MockPersonalRepository) ListTodos(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Todo, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *MockPersonalRepository) UpdateTodo(ctx context.Context, exec sqlx.ExtContext, todo *model.Todo) error {
	args := m.Called(ctx, exec, todo)
	return args.Error(0)
}

func (m *MockPersonalRepository) DeleteTodo(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func (m *MockPersonalRepository) CreateNote(ctx context.Context, exec sqlx.ExtContext, note *model.Note) error {
	args := m.Called(ctx, exec, note)
	return args.Error(0)
}

func (m *MockPersonalRepository) GetNote(ctx context.Context, exec sqlx.ExtContext, uuid string) (*model.Note, error) {
	args := m.Called(ctx, exec, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockPersonalRepository) ListNotes(ctx context.Context, exec sqlx.ExtContext, ownerUUID string) ([]model.Note, error) {
	args := m.Called(ctx, exec, ownerUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockPersonalRepository) UpdateNote(ctx context.Context, exec sqlx.ExtContext, note *model.Note) error {
	args := m.Called(ctx, exec, note)
	return args.Error(0)
}

func (m *MockPersonalRepository) DeleteNote(ctx context.Context, exec sqlx.ExtContext, uuid string) error {
	args := m.Called(ctx, exec, uuid)
	return args.Error(0)
}

func newTestPersonalService() (*service.PersonalService, *MockPersonalRepository) {
	repo := new(MockPersonalRepository)
	return service.NewPersonalService(repo, nil), repo
}

// ===== Тесты ярлыков =====

func TestCreateShortcut_PersonalGetsOwner(t *testing.T) {
	svc, repo := newTestPersonalService()
	caller := access.Caller{UserUUID: "u1", Role: "USER"}

	repo.On("CreateShortcut", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := svc.CreateShortcut(context.Background(), caller, &model.Shortcut{Title: "Портал", URL: "https://portal.local"}, false)
	require.NoError(t, err)
	require.NotNil(t, created.OwnerUUID)
	assert.Equal(t, "u1", *created.OwnerUUID)
	assert.NotEmpty(t, created.UUID)
}

func TestCreateShortcut_SystemRequiresAdmin(t *testing.T) {
	svc, _ := newTestPersonalService()
	caller := access.Caller{UserUUID: "u1", Role: "USER"}

	_, err := svc.CreateShortcut(context.Background(), caller, &model.Shortcut{Title: "Wiki", URL: "https://wiki.local"}, true)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCreateShortcut_SystemHasNoOwner(t *testing.T) {
	svc, repo := newTestPersonalService()
	caller := access.Caller{UserUUID: "adm", Role: "ADMIN"}

	repo.On("CreateShortcut", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := svc.CreateShortcut(context.Background(), caller, &model.Shortcut{Title: "Wiki", URL: "https://wiki.local"}, true)
	require.NoError(t, err)
	assert.Nil(t, created.OwnerUUID)
}

func TestCreateShortcut_EmptyURL(t *testing.T) {
	svc, _ := newTestPersonalService()
	caller := access.Caller{UserUUID: "u1", Role: "USER"}

	_, err := svc.CreateShortcut(context.Background(), caller, &model.Shortcut{Title: "Портал", URL: "  "}, false)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestListShortcuts_SystemFirstThenPersonal(t *testing.T) {
	svc, repo := newTestPersonalService()
	caller := access.Caller{UserUUID: "u1", Role: "USER"}

	repo.On("ListSystemShortcuts", mock.Anything, mock.Anything).
		Return([]model.Shortcut{{UUID: "sys-1", Title: "Wiki"}}, nil)
	repo.On("ListShortcuts", mock.Anything, mock.Anything, "u1").
		Return([]model.Shortcut{{UUID: "own-1", Title: "CRM"}}, nil)

	list, err := svc.ListShortcuts(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "sys-1", list[0].UUID)
	assert.Equal(t, "own-1", list[1].UUID)
}

func TestListSystemShortcuts_ReturnsOnlySystemRows(t *testing.T) {
	svc, repo := newTestPersonalService()

	repo.On("ListSystemShortcuts", mock.Anything, mock.Anything).
		Return([]model.Shortcut{{UUID: "sys-1", Title: "Wiki"}, {UUID: "sys-2", Title: "HR"}}, nil)

	list, err := svc.ListSystemShortcuts(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Nil(t, list[0].OwnerUUID)
	repo.AssertNotCalled(t, "ListShortcuts", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateShortcut_SystemOnlyAdmin(t *testing.T) {
	svc, repo := newTestPersonalService()

	repo.On("GetShortcut", mock.Anything, mock.Anything, "sys-1").
		Return(&model.Shortcut{UUID: "sys-1", OwnerUUID: nil}, nil)

	err := svc.UpdateShortcut(context.Background(), access.Caller{UserUUID: "u1", Role: "USER"}, &model.Shortcut{UUID: "sys-1", Title: "Wiki", URL: "https://wiki.local"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestDeleteShortcut_ForeignForbidden(t *testing.T) {
	svc, repo := newTestPersonalService()
	owner := "someone"

	repo.On("GetShortcut", mock.Anything, mock.Anything, "sc-1").
		Return(&model.Shortcut{UUID: "sc-1", OwnerUUID: &owner}, nil)

	err := svc.DeleteShortcut(context.Background(), access.Caller{UserUUID: "u1", Role: "USER"}, "sc-1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

// ===== Тесты списка дел =====

func TestUpdateTodo_OwnerPreserved(t *testing.T) {
	svc, repo := newTestPersonalService()
	caller := access.Caller{UserUUID: "u1", Role: "USER"}

	repo.On("GetTodo", mock.Anything, mock.Anything, "td-1").
		Return(&model.Todo{UUID: "td-1", OwnerUUID: "u1", Content: "старый текст"}, nil)
	repo.On("UpdateTodo", mock.Anything, mock.Anything, mock.MatchedBy(func(todo *model.Todo) bool {
		return todo.OwnerUUID == "u1" && todo.IsDone
	})).Return(nil)

	err := svc.UpdateTodo(context.Background(), caller, &model.Todo{UUID: "td-1", OwnerUUID: "intruder", Content: "новый текст", IsDone: true})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateTodo_ForeignForbidden(t *testing.T) {
	svc, repo := newTestPersonalService()

	repo.On("GetTodo", mock.Anything, mock.Anything, "td-1").
		Return(&model.Todo{UUID: "td-1", OwnerUUID: "someone"}, nil)

	err := svc.UpdateTodo(context.Background(), access.Caller{UserUUID: "u1", Role: "USER"}, &model.Todo{UUID: "td-1", Content: "текст"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCreateTodo_EmptyContent(t *testing.T) {
	svc, _ := newTestPersonalService()

	_, err := svc.CreateTodo(context.Background(), access.Caller{UserUUID: "u1", Role: "USER"}, &model.Todo{Content: "   "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

// ===== Тесты заметок =====

func TestCreateNote_TitleOrContentEnough(t *testing.T) {
	svc, repo := newTestPersonalService()
	caller := access.Caller{UserUUID: "u1", Role: "USER"}

	repo.On("CreateNote", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	created, err := svc.CreateNote(context.Background(), caller, &model.Note{Content: "только текст"})
	require.NoError(t, err)
	assert.Equal(t, "u1", created.OwnerUUID)
}

func TestCreateNote_EmptyRejected(t *testing.T) {
	svc, _ := newTestPersonalService()

	_, err := svc.CreateNote(context.Background(), access.Caller{UserUUID: "u1", Role: "USER"}, &model.Note{Title: " ", Content: ""})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteNote_ForeignForbidden(t *testing.T) {
	svc, repo := newTestPersonalService()

	repo.On("GetNote", mock.Anything, mock.Anything, "nt-1").
		Return(&model.Note{UUID: "nt-1", OwnerUUID: "someone"}, nil)

	err := svc.DeleteNote(context.Background(), access.Caller{UserUUID: "u1", Role: "USER"}, "nt-1")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
