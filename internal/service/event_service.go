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
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type EventService struct {
	eventRepository ports.EventRepository
	userRepository  ports.UserRepository
	notifier        ports.NotificationDispatcher
	db              *config.Database
}

func NewEventService(
	eventRepository ports.EventRepository,
	userRepository ports.UserRepository,
	dispatcher ports.NotificationDispatcher,
	db *config.Database,
) *EventService {
	return &EventService{
		eventRepository: eventRepository,
		userRepository:  userRepository,
		notifier:        dispatcher,
		db:              db,
	}
}

func validateEvent(event *model.CalendarEvent) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("[EventService] заголовок события обязателен: %w", apperr.ErrValidation)
	}
	switch event.Visibility {
	case model.VisibilityPublic, model.VisibilityPrivate, model.VisibilityShared:
	default:
		return fmt.Errorf("[EventService] неизвестный тип видимости %q: %w", event.Visibility, apperr.ErrValidation)
	}
	if event.EndDate != "" && event.EndDate < event.StartDate {
		return fmt.Errorf("[EventService] дата окончания раньше даты начала: %w", apperr.ErrValidation)
	}
	return nil
}

// CreateEvent : событие и его список доступа сохраняются в одной транзакции,
// новые участники получают уведомление после коммита
func (s *EventService) CreateEvent(ctx context.Context, caller access.Caller, event *model.CalendarEvent, sharedWith []string) (*model.CalendarEvent, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	event.UUID = uuid.New().String()
	event.AuthorUUID = caller.UserUUID

	if event.Visibility != model.VisibilityShared {
		sharedWith = nil
	}
	sharedWith = lo.Uniq(lo.Without(sharedWith, caller.UserUUID))

	exec, rollback, commit, err := s.eventRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[EventService] не удалось начать транзакцию", err)
	}
	defer rollback()

	if err := s.eventRepository.Create(ctx, exec, event); err != nil {
		return nil, util.LogError("[EventService] не удалось сохранить событие", err)
	}

	if len(sharedWith) > 0 {
		if err := s.eventRepository.ReplaceShares(ctx, exec, event.UUID, sharedWith); err != nil {
			return nil, util.LogError("[EventService] не удалось сохранить список доступа", err)
		}
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[EventService] не удалось закоммитить транзакцию", err)
	}

	event.SharedWith = sharedWith

	for _, userUUID := range sharedWith {
		s.notifier.Send(userUUID, "event_invite",
			"Приглашение в событие",
			fmt.Sprintf("Вас пригласили в событие «%s»", event.Title),
			"calendar")
	}

	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, caller access.Caller, eventUUID string) (*model.CalendarEvent, error) {
	event, err := s.eventRepository.GetByUUID(ctx, s.db, eventUUID)
	if err != nil {
		return nil, util.LogError("[EventService] событие не найдено", err)
	}

	isSharee, err := s.eventRepository.IsSharee(ctx, s.db, eventUUID, caller.UserUUID)
	if err != nil {
		return nil, util.LogError("[EventService] ошибка проверки доступа", err)
	}

	if !access.CanReadEvent(caller, event, isSharee) {
		return nil, fmt.Errorf("[EventService] доступ к событию запрещён: %w", apperr.ErrForbidden)
	}

	shares, err := s.eventRepository.ListShares(ctx, s.db, eventUUID)
	if err != nil {
		return nil, util.LogError("[EventService] не удалось получить список доступа", err)
	}
	event.SharedWith = shares

	return event, nil
}

// ListEvents : все события, видимые вызывающему
func (s *EventService) ListEvents(ctx context.Context, caller access.Caller) ([]model.CalendarEvent, error) {
	return s.eventRepository.ListVisible(ctx, s.db, caller.UserUUID, caller.IsAdmin())
}

// UpdateEvent : список доступа заменяется целиком; приглашения получают только новые участники
func (s *EventService) UpdateEvent(ctx context.Context, caller access.Caller, event *model.CalendarEvent, sharedWith []string) (*model.CalendarEvent, error) {
	if err := validateEvent(event); err != nil {
		return nil, err
	}

	exec, rollback, commit, err := s.eventRepository.BeginTX(ctx)
	if err != nil {
		return nil, util.LogError("[EventService] не удалось начать транзакцию", err)
	}
	defer rollback()

	stored, err := s.eventRepository.GetByUUID(ctx, exec, event.UUID)
	if err != nil {
		return nil, util.LogError("[EventService] событие не найдено", err)
	}

	if !access.CanWriteEvent(caller, stored) {
		return nil, fmt.Errorf("[EventService] изменять событие может только автор или администратор: %w", apperr.ErrForbidden)
	}

	event.AuthorUUID = stored.AuthorUUID
	event.CreatedAt = stored.CreatedAt

	if event.Visibility != model.VisibilityShared {
		sharedWith = nil
	}
	sharedWith = lo.Uniq(lo.Without(sharedWith, stored.AuthorUUID))

	previousShares, err := s.eventRepository.ListShares(ctx, exec, event.UUID)
	if err != nil {
		return nil, util.LogError("[EventService] не удалось получить список доступа", err)
	}

	if err := s.eventRepository.Update(ctx, exec, event); err != nil {
		return nil, util.LogError("[EventService] не удалось обновить событие", err)
	}

	if err := s.eventRepository.ReplaceShares(ctx, exec, event.UUID, sharedWith); err != nil {
		return nil, util.LogError("[EventService] не удалось обновить список доступа", err)
	}

	if err := commit(); err != nil {
		return nil, util.LogError("[EventService] не удалось закоммитить транзакцию", err)
	}

	event.SharedWith = sharedWith

	// уведомляем только добавленных участников
	added, _ := lo.Difference(sharedWith, previousShares)
	for _, userUUID := range added {
		s.notifier.Send(userUUID, "event_invite",
			"Приглашение в событие",
			fmt.Sprintf("Вас пригласили в событие «%s»", event.Title),
			"calendar")
	}

	return event, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, caller access.Caller, eventUUID string) error {
	exec, rollback, commit, err := s.eventRepository.BeginTX(ctx)
	if err != nil {
		return util.LogError("[EventService] не удалось начать транзакцию", err)
	}
	defer rollback()

	stored, err := s.eventRepository.GetByUUID(ctx, exec, eventUUID)
	if err != nil {
		return util.LogError("[EventService] событие не найдено", err)
	}

	if !access.CanWriteEvent(caller, stored) {
		return fmt.Errorf("[EventService] удалять событие может только автор или администратор: %w", apperr.ErrForbidden)
	}

	if err := s.eventRepository.Delete(ctx, exec, eventUUID); err != nil {
		return util.LogError("[EventService] не удалось удалить событие", err)
	}

	if err := commit(); err != nil {
		return util.LogError("[EventService] не удалось закоммитить транзакцию", err)
	}

	return nil
}
