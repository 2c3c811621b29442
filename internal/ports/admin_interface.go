package ports

import (
	"context"
	"encoding/json"
	"intranet-portal/internal/model"

	"github.com/jmoiron/sqlx"
)

// SettingsRepository : SQL слой admin_settings (key → jsonb)
type SettingsRepository interface {
	Get(ctx context.Context, exec sqlx.ExtContext, key string) (*model.AdminSetting, error)
	Set(ctx context.Context, exec sqlx.ExtContext, key string, value json.RawMessage) error
	SetField(ctx context.Context, exec sqlx.ExtContext, key, field string, value json.RawMessage) error
}

type LDAPTestResult struct {
	Success bool   `json:"success"`
	Details string `json:"details"`
}

type AdminService interface {
	GetSetting(ctx context.Context, key string) (*model.AdminSetting, error)
	SetSetting(ctx context.Context, key string, value json.RawMessage) error
	SetSettingField(ctx context.Context, key, field string, value json.RawMessage) error
	UploadSettingFile(ctx context.Context, key, field, filename string) (string, string, error)
	TestLDAP(ctx context.Context, rawConfig json.RawMessage) (*LDAPTestResult, error)
}

// HolidayService : календарь праздников — сторонний API плюс встроенные списки
type HolidayService interface {
	Holidays(ctx context.Context, year int) ([]model.Holiday, error)
}
