package service_test

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestTaskService() (*service.TaskService, *MockTaskRepository, *MockProjectRepository, *MockNotifier) {
	mockTaskRepo := new(MockTaskRepository)
	mockProjectRepo := new(MockProjectRepository)
	mockNotifier := new(MockNotifier)

	svc := service.NewTaskService(mockTaskRepo, mockProjectRepo, mockNotifier, nil)

	return svc, mockTaskRepo, mockProjectRepo, mockNotifier
}

func ownProject(ownerUUID string) *model.Project {
	return &model.Project{UUID: "p1", OwnerUUID: ownerUUID, Name: "Портал", Visibility: model.VisibilityTeam}
}

// ===== Тесты CreateTask =====

func TestCreateTask_NotifiesAssigneesExceptCaller(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, mockNotifier := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	task := &model.ProjectTask{ProjectUUID: "p1", Title: "Завести базу"}

	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)

	mockTaskRepo.On("BeginTX", ctx).Return()
	mockTaskRepo.On("Create", ctx, mock.Anything, task).Return(nil)
	mockTaskRepo.On("ReplaceAssignees", ctx, mock.Anything, mock.Anything, []string{"owner", "u2"}).Return(nil)
	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, mock.Anything).Return([]string{"owner", "u2"}, nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, mock.Anything).Return([]model.Subtask{}, nil)

	// сам вызывающий уведомление не получает
	mockNotifier.On("Send", "u2", "task_assigned", mock.Anything, mock.Anything, "tasks").Return()

	created, err := svc.CreateTask(ctx, caller, task, []string{"owner", "u2"}, nil)

	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusTodo, created.Status)
	require.NotNil(t, created.AssigneeUUID)
	assert.Equal(t, "owner", *created.AssigneeUUID)
	assert.Nil(t, created.CompletedAt)
	mockNotifier.AssertNumberOfCalls(t, "Send", 1)
	mockTaskRepo.AssertExpectations(t)
}

func TestCreateTask_SubtasksGetDistinctUUIDs(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	task := &model.ProjectTask{ProjectUUID: "p1", Title: "Подготовить релиз"}
	subtasks := []model.Subtask{
		{Title: "Собрать сборку"},
		{Title: "Обновить документацию"},
	}

	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)

	mockTaskRepo.On("BeginTX", ctx).Return()
	mockTaskRepo.On("Create", ctx, mock.Anything, task).Return(nil)
	mockTaskRepo.On("ReplaceSubtasks", ctx, mock.Anything, mock.Anything, mock.MatchedBy(func(saved []model.Subtask) bool {
		return len(saved) == 2 &&
			saved[0].UUID != "" && saved[1].UUID != "" &&
			saved[0].UUID != saved[1].UUID &&
			saved[0].Title == "Собрать сборку" && saved[1].Title == "Обновить документацию"
	})).Return(nil)
	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, mock.Anything).Return([]string{}, nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, mock.Anything).Return(subtasks, nil)

	_, err := svc.CreateTask(ctx, caller, task, nil, subtasks)

	require.NoError(t, err)
	mockTaskRepo.AssertExpectations(t)
}

func TestCreateTask_DoneAtCreationSetsCompletedAt(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	task := &model.ProjectTask{ProjectUUID: "p1", Title: "Мигрировать данные", Status: model.TaskStatusDone}

	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)

	mockTaskRepo.On("BeginTX", ctx).Return()
	mockTaskRepo.On("Create", ctx, mock.Anything, task).Return(nil)
	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, mock.Anything).Return([]string{}, nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, mock.Anything).Return([]model.Subtask{}, nil)

	created, err := svc.CreateTask(ctx, caller, task, nil, nil)

	require.NoError(t, err)
	require.NotNil(t, created.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *created.CompletedAt, time.Minute)
}

func TestCreateTask_ViewerForbidden(t *testing.T) {
	svc, _, mockProjectRepo, mockNotifier := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "viewer", Role: model.RoleUser}

	task := &model.ProjectTask{ProjectUUID: "p1", Title: "Задача"}

	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "viewer").Return(model.MemberRoleViewer, nil)

	_, err := svc.CreateTask(ctx, caller, task, nil, nil)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	mockNotifier.AssertNotCalled(t, "Send")
}

func TestCreateTask_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	task := &model.ProjectTask{ProjectUUID: "p1", Title: "Задача", Status: "cancelled"}

	_, err := svc.CreateTask(ctx, caller, task, nil, nil)

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

// ===== Тесты UpdateStatus: фиксация момента завершения =====

func TestUpdateStatus_EnteringDoneSetsCompletedAt(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusInProgress}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)
	mockTaskRepo.On("Update", ctx, mock.Anything, stored).Return(nil)
	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, "t1").Return([]string{}, nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, "t1").Return([]model.Subtask{}, nil)

	updated, err := svc.UpdateStatus(ctx, caller, "t1", model.TaskStatusDone)

	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *updated.CompletedAt, time.Minute)
}

func TestUpdateStatus_StayingDonePreservesCompletedAt(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	completedAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusDone, CompletedAt: &completedAt}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)
	mockTaskRepo.On("Update", ctx, mock.Anything, stored).Return(nil)
	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, "t1").Return([]string{}, nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, "t1").Return([]model.Subtask{}, nil)

	updated, err := svc.UpdateStatus(ctx, caller, "t1", model.TaskStatusDone)

	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, completedAt, *updated.CompletedAt)
}

func TestUpdateStatus_LeavingDoneClearsCompletedAt(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	completedAt := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusDone, CompletedAt: &completedAt}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)
	mockTaskRepo.On("Update", ctx, mock.Anything, stored).Return(nil)
	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, "t1").Return([]string{}, nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, "t1").Return([]model.Subtask{}, nil)

	updated, err := svc.UpdateStatus(ctx, caller, "t1", model.TaskStatusInProgress)

	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)
}

// ===== Тесты UpdateTask: уведомления только новым исполнителям =====

func TestUpdateTask_NotifiesOnlyNewAssignees(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, mockNotifier := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusTodo, OrderIndex: 3}
	task := &model.ProjectTask{UUID: "t1", Title: "Задача", Status: model.TaskStatusInProgress}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)

	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, "t1").Return([]string{"u2"}, nil)
	mockTaskRepo.On("BeginTX", ctx).Return()
	mockTaskRepo.On("Update", ctx, mock.Anything, task).Return(nil)
	mockTaskRepo.On("ReplaceAssignees", ctx, mock.Anything, "t1", []string{"u2", "u3"}).Return(nil)
	mockTaskRepo.On("ReplaceSubtasks", ctx, mock.Anything, "t1", mock.Anything).Return(nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, "t1").Return([]model.Subtask{}, nil)

	// u2 уже был исполнителем — уведомление получает только u3
	mockNotifier.On("Send", "u3", "task_assigned", mock.Anything, mock.Anything, "tasks").Return()

	updated, err := svc.UpdateTask(ctx, caller, task, []string{"u2", "u3"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ProjectUUID)
	assert.Equal(t, 3, updated.OrderIndex)
	mockNotifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateTask_SubtasksReplacedWithFreshUUIDs(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusTodo}
	task := &model.ProjectTask{UUID: "t1", Title: "Задача", Status: model.TaskStatusTodo}
	subtasks := []model.Subtask{{Title: "Проверить правки"}}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)

	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, "t1").Return([]string{}, nil)
	mockTaskRepo.On("BeginTX", ctx).Return()
	mockTaskRepo.On("Update", ctx, mock.Anything, task).Return(nil)
	mockTaskRepo.On("ReplaceAssignees", ctx, mock.Anything, "t1", mock.Anything).Return(nil)
	mockTaskRepo.On("ReplaceSubtasks", ctx, mock.Anything, "t1", mock.MatchedBy(func(saved []model.Subtask) bool {
		return len(saved) == 1 && saved[0].UUID != "" && saved[0].Title == "Проверить правки"
	})).Return(nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, "t1").Return(subtasks, nil)

	_, err := svc.UpdateTask(ctx, caller, task, nil, subtasks)

	require.NoError(t, err)
	mockTaskRepo.AssertExpectations(t)
}

func TestUpdateTask_NoNotificationsWhenAssigneesUnchanged(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, mockNotifier := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusTodo}
	task := &model.ProjectTask{UUID: "t1", Title: "Задача", Status: model.TaskStatusTodo}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)

	mockTaskRepo.On("ListAssignees", ctx, mock.Anything, "t1").Return([]string{"u2"}, nil)
	mockTaskRepo.On("BeginTX", ctx).Return()
	mockTaskRepo.On("Update", ctx, mock.Anything, task).Return(nil)
	mockTaskRepo.On("ReplaceAssignees", ctx, mock.Anything, "t1", []string{"u2"}).Return(nil)
	mockTaskRepo.On("ReplaceSubtasks", ctx, mock.Anything, "t1", mock.Anything).Return(nil)
	mockTaskRepo.On("ListSubtasks", ctx, mock.Anything, "t1").Return([]model.Subtask{}, nil)

	_, err := svc.UpdateTask(ctx, caller, task, []string{"u2"}, nil)

	require.NoError(t, err)
	mockNotifier.AssertNotCalled(t, "Send")
}

// ===== Тесты Reorder =====

func TestReorder_UpdatesOnlyOrderIndex(t *testing.T) {
	svc, mockTaskRepo, mockProjectRepo, _ := newTestTaskService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "owner", Role: model.RoleUser}

	stored := &model.ProjectTask{UUID: "t1", ProjectUUID: "p1", Title: "Задача", Status: model.TaskStatusTodo}

	mockTaskRepo.On("GetByUUID", ctx, mock.Anything, "t1").Return(stored, nil)
	mockProjectRepo.On("GetByUUID", ctx, mock.Anything, "p1").Return(ownProject("owner"), nil)
	mockProjectRepo.On("GetMemberRole", ctx, mock.Anything, "p1", "owner").Return("", nil)
	mockTaskRepo.On("UpdateOrderIndex", ctx, mock.Anything, "t1", 7).Return(nil)

	err := svc.Reorder(ctx, caller, "t1", 7)

	require.NoError(t, err)
	mockTaskRepo.AssertExpectations(t)
}
