package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/util"

	"github.com/jmoiron/sqlx"
)

// SettingsRepository : таблица admin_settings, key → jsonb
type SettingsRepository struct {
	*config.Database
}

func NewSettingsRepository(database *config.Database) *SettingsRepository {
	return &SettingsRepository{database}
}

// Get : значение настройки по ключу
func (r *SettingsRepository) Get(ctx context.Context, exec sqlx.ExtContext, key string) (*model.AdminSetting, error) {
	query := `SELECT key, value FROM admin_settings WHERE key = $1`
	var setting model.AdminSetting
	err := sqlx.GetContext(ctx, exec, &setting, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("[SettingsRepo] настройка не найдена: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, util.LogError("[SettingsRepo] не удалось получить настройку", err)
	}
	return &setting, nil
}

// Set : upsert значения по ключу
func (r *SettingsRepository) Set(ctx context.Context, exec sqlx.ExtContext, key string, value json.RawMessage) error {
	query := `
		INSERT INTO admin_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := exec.ExecContext(ctx, query, key, value); err != nil {
		return util.LogError("[SettingsRepo] не удалось сохранить настройку", err)
	}
	return nil
}

// SetField : обновляет одно поле внутри jsonb-значения (для загрузок «в поле»,
// например logo_path). Если ключа ещё нет — создаёт объект с единственным полем.
func (r *SettingsRepository) SetField(ctx context.Context, exec sqlx.ExtContext, key, field string, value json.RawMessage) error {
	query := `
		UPDATE admin_settings
		SET value = jsonb_set(value, ARRAY[$2], $3::jsonb, true)
		WHERE key = $1
	`
	result, err := exec.ExecContext(ctx, query, key, field, value)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось обновить поле настройки", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось проверить обновление", err)
	}
	if rowsAffected == 0 {
		initial, err := json.Marshal(map[string]json.RawMessage{field: value})
		if err != nil {
			return util.LogError("[SettingsRepo] не удалось сериализовать настройку", err)
		}
		return r.Set(ctx, exec, key, initial)
	}

	return nil
}
