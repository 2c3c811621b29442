package ports

import (
	"context"
	"intranet-portal/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetHolidays(ctx context.Context, year int, holidays []model.Holiday) error
	GetHolidays(ctx context.Context, year int) ([]model.Holiday, error)
	SetSetting(ctx context.Context, setting *model.AdminSetting) error
	GetSetting(ctx context.Context, key string) (*model.AdminSetting, error)
	DeleteSetting(ctx context.Context, key string) error
}
