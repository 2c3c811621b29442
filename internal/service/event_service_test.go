package service_test

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/service"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEventService() (*service.EventService, *MockEventRepository, *MockNotifier) {
	mockEventRepo := new(MockEventRepository)
	mockUserRepo := new(MockUserRepository)
	mockNotifier := new(MockNotifier)

	svc := service.NewEventService(mockEventRepo, mockUserRepo, mockNotifier, nil)

	return svc, mockEventRepo, mockNotifier
}

// ===== Тесты CreateEvent =====

func TestCreateEvent_SharesIgnoredUnlessShared(t *testing.T) {
	svc, mockEventRepo, mockNotifier := newTestEventService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "author", Role: model.RoleUser}

	event := &model.CalendarEvent{Title: "Планёрка", Visibility: model.VisibilityPublic, StartDate: "2025-09-01"}

	mockEventRepo.On("BeginTX", ctx).Return()
	mockEventRepo.On("Create", ctx, mock.Anything, event).Return(nil)

	created, err := svc.CreateEvent(ctx, caller, event, []string{"u2", "u3"})

	require.NoError(t, err)
	// список доступа имеет смысл только для shared-событий
	assert.Empty(t, created.SharedWith)
	mockEventRepo.AssertNotCalled(t, "ReplaceShares")
	mockNotifier.AssertNotCalled(t, "Send")
}

func TestCreateEvent_SharedNotifiesInvitees(t *testing.T) {
	svc, mockEventRepo, mockNotifier := newTestEventService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "author", Role: model.RoleUser}

	event := &model.CalendarEvent{Title: "Ревью", Visibility: model.VisibilityShared, StartDate: "2025-09-01"}

	mockEventRepo.On("BeginTX", ctx).Return()
	mockEventRepo.On("Create", ctx, mock.Anything, event).Return(nil)
	// автор и дубликаты вычищаются из списка
	mockEventRepo.On("ReplaceShares", ctx, mock.Anything, mock.Anything, []string{"u2"}).Return(nil)
	mockNotifier.On("Send", "u2", "event_invite", mock.Anything, mock.Anything, "calendar").Return()

	created, err := svc.CreateEvent(ctx, caller, event, []string{"u2", "u2", "author"})

	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, created.SharedWith)
	assert.Equal(t, "author", created.AuthorUUID)
	mockNotifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestCreateEvent_EndBeforeStart(t *testing.T) {
	svc, _, _ := newTestEventService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "author", Role: model.RoleUser}

	event := &model.CalendarEvent{Title: "Ретро", Visibility: model.VisibilityPublic, StartDate: "2025-09-10", EndDate: "2025-09-01"}

	_, err := svc.CreateEvent(ctx, caller, event, nil)

	assert.ErrorIs(t, err, apperr.ErrValidation)
}

// ===== Тесты UpdateEvent =====

func TestUpdateEvent_NotifiesOnlyAddedSharees(t *testing.T) {
	svc, mockEventRepo, mockNotifier := newTestEventService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "author", Role: model.RoleUser}

	stored := &model.CalendarEvent{UUID: "e1", AuthorUUID: "author", Title: "Ревью", Visibility: model.VisibilityShared}
	update := &model.CalendarEvent{UUID: "e1", Title: "Ревью", Visibility: model.VisibilityShared, StartDate: "2025-09-01"}

	mockEventRepo.On("BeginTX", ctx).Return()
	mockEventRepo.On("GetByUUID", ctx, mock.Anything, "e1").Return(stored, nil)
	mockEventRepo.On("ListShares", ctx, mock.Anything, "e1").Return([]string{"u2"}, nil)
	mockEventRepo.On("Update", ctx, mock.Anything, update).Return(nil)
	mockEventRepo.On("ReplaceShares", ctx, mock.Anything, "e1", []string{"u2", "u3"}).Return(nil)

	// u2 уже был в списке — приглашение получает только u3
	mockNotifier.On("Send", "u3", "event_invite", mock.Anything, mock.Anything, "calendar").Return()

	updated, err := svc.UpdateEvent(ctx, caller, update, []string{"u2", "u3"})

	require.NoError(t, err)
	assert.Equal(t, "author", updated.AuthorUUID)
	mockNotifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateEvent_ShareeCannotEdit(t *testing.T) {
	svc, mockEventRepo, _ := newTestEventService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "u2", Role: model.RoleUser}

	stored := &model.CalendarEvent{UUID: "e1", AuthorUUID: "author", Title: "Ревью", Visibility: model.VisibilityShared}
	update := &model.CalendarEvent{UUID: "e1", Title: "Перенос", Visibility: model.VisibilityShared, StartDate: "2025-09-01"}

	mockEventRepo.On("BeginTX", ctx).Return()
	mockEventRepo.On("GetByUUID", ctx, mock.Anything, "e1").Return(stored, nil)

	_, err := svc.UpdateEvent(ctx, caller, update, nil)

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	mockEventRepo.AssertNotCalled(t, "Update")
}

// ===== Тесты GetEvent =====

func TestGetEvent_PrivateHiddenFromOthers(t *testing.T) {
	svc, mockEventRepo, _ := newTestEventService()
	ctx := context.Background()
	caller := access.Caller{UserUUID: "someone", Role: model.RoleUser}

	stored := &model.CalendarEvent{UUID: "e1", AuthorUUID: "author", Title: "Личное", Visibility: model.VisibilityPrivate}

	mockEventRepo.On("GetByUUID", ctx, mock.Anything, "e1").Return(stored, nil)
	mockEventRepo.On("IsSharee", ctx, mock.Anything, "e1", "someone").Return(false, nil)

	_, err := svc.GetEvent(ctx, caller, "e1")

	assert.ErrorIs(t, err, apperr.ErrForbidden)
}
