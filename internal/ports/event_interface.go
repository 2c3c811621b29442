package ports

import (
	"context"
	"intranet-portal/internal/access"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// EventRepository : SQL слой календаря
type EventRepository interface {
	Create(ctx context.Context, exec sqlx.ExtContext, event *model.CalendarEvent) error
	GetByUUID(ctx context.Context, exec sqlx.ExtContext, eventUUID string) (*model.CalendarEvent, error)
	Update(ctx context.Context, exec sqlx.ExtContext, event *model.CalendarEvent) error
	Delete(ctx context.Context, exec sqlx.ExtContext, eventUUID string) error
	IsSharee(ctx context.Context, exec sqlx.ExtContext, eventUUID, userUUID string) (bool, error)
	ListShares(ctx context.Context, exec sqlx.ExtContext, eventUUID string) ([]string, error)
	ReplaceShares(ctx context.Context, exec sqlx.ExtContext, eventUUID string, userUUIDs []string) error
	ListVisible(ctx context.Context, exec sqlx.ExtContext, userUUID string, isAdmin bool) ([]model.CalendarEvent, error)
	BeginTX(ctx context.Context) (sqlx.ExtContext, func() error, func() error, error)
}

type EventService interface {
	CreateEvent(ctx context.Context, caller access.Caller, event *model.CalendarEvent, sharedWith []string) (*model.CalendarEvent, error)
	GetEvent(ctx context.Context, caller access.Caller, eventUUID string) (*model.CalendarEvent, error)
	ListEvents(ctx context.Context, caller access.Caller) ([]model.CalendarEvent, error)
	UpdateEvent(ctx context.Context, caller access.Caller, event *model.CalendarEvent, sharedWith []string) (*model.CalendarEvent, error)
	DeleteEvent(ctx context.Context, caller access.Caller, eventUUID string) error
}
