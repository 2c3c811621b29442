package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/util"

	"github.com/jmoiron/sqlx"
)

type EventRepository struct {
	*config.Database
}

func NewEventRepository(database *config.Database) *EventRepository {
	return &EventRepository{database}
}

func (r *EventRepository) BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	return tx, func() error { return tx.Rollback() }, func() error { return tx.Commit() }, nil
}

// Create : сохраняет новое событие календаря
func (r *EventRepository) Create(ctx context.Context, exec sqlx.ExtContext, event *model.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events
			(uuid, author_uuid, title, description, start_date, end_date, start_time, end_time,
			 visibility, event_type, meeting_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := exec.ExecContext(ctx, query,
		event.UUID, event.AuthorUUID, event.Title, event.Description,
		event.StartDate, event.EndDate, event.StartTime, event.EndTime,
		event.Visibility, event.EventType, event.MeetingLink)
	if err != nil {
		return util.LogError("[EventRepo] не удалось сохранить событие", err)
	}
	return nil
}

// GetByUUID : событие по UUID, без проверки прав (проверка — на уровне сервиса)
func (r *EventRepository) GetByUUID(ctx context.Context, exec sqlx.ExtContext, eventUUID string) (*model.CalendarEvent, error) {
	query := `
		SELECT uuid, author_uuid, title, description, start_date, end_date, start_time, end_time,
		       visibility, event_type, meeting_link, created_at
		FROM calendar_events
		WHERE uuid = $1
	`
	var event model.CalendarEvent
	err := sqlx.GetContext(ctx, exec, &event, query, eventUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[EventRepo] событие не найдено: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[EventRepo] не удалось получить событие", err)
	}
	return &event, nil
}

// Update : перезаписывает поля события
func (r *EventRepository) Update(ctx context.Context, exec sqlx.ExtContext, event *model.CalendarEvent) error {
	query := `
		UPDATE calendar_events
		SET title = $2, description = $3, start_date = $4, end_date = $5,
		    start_time = $6, end_time = $7, visibility = $8, event_type = $9, meeting_link = $10
		WHERE uuid = $1
	`
	_, err := exec.ExecContext(ctx, query,
		event.UUID, event.Title, event.Description, event.StartDate, event.EndDate,
		event.StartTime, event.EndTime, event.Visibility, event.EventType, event.MeetingLink)
	if err != nil {
		return util.LogError("[EventRepo] не удалось обновить событие", err)
	}
	return nil
}

// Delete : удаляет событие вместе со списком доступа
func (r *EventRepository) Delete(ctx context.Context, exec sqlx.ExtContext, eventUUID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM event_shares WHERE event_uuid = $1`, eventUUID); err != nil {
		return util.LogError("[EventRepo] не удалось удалить список доступа", err)
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM calendar_events WHERE uuid = $1`, eventUUID); err != nil {
		return util.LogError("[EventRepo] не удалось удалить событие", err)
	}
	return nil
}

// IsSharee : есть ли пользователь в списке доступа события
func (r *EventRepository) IsSharee(ctx context.Context, exec sqlx.ExtContext, eventUUID, userUUID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM event_shares WHERE event_uuid = $1 AND user_uuid = $2)`
	if err := sqlx.GetContext(ctx, exec, &exists, query, eventUUID, userUUID); err != nil {
		return false, util.LogError("[EventRepo] ошибка проверки доступа", err)
	}
	return exists, nil
}

// ListShares : список доступа события
func (r *EventRepository) ListShares(ctx context.Context, exec sqlx.ExtContext, eventUUID string) ([]string, error) {
	var userUUIDs []string
	query := `SELECT user_uuid FROM event_shares WHERE event_uuid = $1 ORDER BY user_uuid`
	if err := sqlx.SelectContext(ctx, exec, &userUUIDs, query, eventUUID); err != nil {
		return nil, util.LogError("[EventRepo] не удалось получить список доступа", err)
	}
	return userUUIDs, nil
}

// ReplaceShares : полная замена списка доступа (delete-all-then-reinsert),
// вызывается только внутри транзакции
func (r *EventRepository) ReplaceShares(ctx context.Context, exec sqlx.ExtContext, eventUUID string, userUUIDs []string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM event_shares WHERE event_uuid = $1`, eventUUID); err != nil {
		return util.LogError("[EventRepo] не удалось очистить список доступа", err)
	}
	for _, userUUID := range userUUIDs {
		_, err := exec.ExecContext(ctx,
			`INSERT INTO event_shares (event_uuid, user_uuid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			eventUUID, userUUID)
		if err != nil {
			return util.LogError("[EventRepo] не удалось сохранить список доступа", err)
		}
	}
	return nil
}

// ListVisible : события, видимые пользователю: публичные, свои и расшаренные на него.
// ADMIN видит всё
func (r *EventRepository) ListVisible(ctx context.Context, exec sqlx.ExtContext, userUUID string, isAdmin bool) ([]model.CalendarEvent, error) {
	query := `
		SELECT DISTINCT e.uuid, e.author_uuid, e.title, e.description, e.start_date, e.end_date,
		       e.start_time, e.end_time, e.visibility, e.event_type, e.meeting_link, e.created_at
		FROM calendar_events AS e
		LEFT JOIN event_shares AS s
		  ON e.uuid = s.event_uuid AND s.user_uuid = $1
		WHERE $2 OR e.visibility = 'public' OR e.author_uuid = $1 OR s.user_uuid IS NOT NULL
		ORDER BY e.created_at DESC, e.uuid DESC
	`
	events := []model.CalendarEvent{}
	if err := sqlx.SelectContext(ctx, exec, &events, query, userUUID, isAdmin); err != nil {
		return nil, util.LogError("[EventRepo] не удалось получить список событий", err)
	}
	return events, nil
}
