package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/model"
	"intranet-portal/internal/util"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheRepository : Redis-слой. Кэшируются только результаты внешних вызовов
// (праздники) и административные настройки; CRUD ресурсов кэш не использует.
type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetHolidays(ctx context.Context, year int, holidays []model.Holiday) error {
	data, err := json.Marshal(holidays)
	if err != nil {
		return util.LogError("ошибка сериализации праздников", err)
	}

	cmd := r.client.Client.Set(ctx, r.holidayKey(year), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetHolidays(ctx context.Context, year int) ([]model.Holiday, error) {
	val, err := r.client.Client.Get(ctx, r.holidayKey(year)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения праздников из Redis", err)
	}

	var holidays []model.Holiday
	if err := json.Unmarshal([]byte(val), &holidays); err != nil {
		return nil, util.LogError("ошибка десериализации праздников из кэша", err)
	}
	return holidays, nil
}

func (r *CacheRepository) SetSetting(ctx context.Context, setting *model.AdminSetting) error {
	data, err := json.Marshal(setting)
	if err != nil {
		return util.LogError("ошибка сериализации настройки", err)
	}

	if err := r.client.Client.Set(ctx, r.settingKey(setting.Key), data, r.ttl).Err(); err != nil {
		return util.LogError("ошибка сохранения настройки в Redis", err)
	}
	return nil
}

func (r *CacheRepository) GetSetting(ctx context.Context, key string) (*model.AdminSetting, error) {
	val, err := r.client.Client.Get(ctx, r.settingKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("ошибка получения настройки из Redis", err)
	}

	var setting model.AdminSetting
	if err := json.Unmarshal([]byte(val), &setting); err != nil {
		return nil, util.LogError("ошибка десериализации настройки из кэша", err)
	}
	return &setting, nil
}

func (r *CacheRepository) DeleteSetting(ctx context.Context, key string) error {
	if err := r.client.Client.Del(ctx, r.settingKey(key)).Err(); err != nil {
		return util.LogError("ошибка удаления настройки из Redis", err)
	}
	return nil
}

func (r *CacheRepository) holidayKey(year int) string {
	return fmt.Sprintf("holidays:%d", year)
}

func (r *CacheRepository) settingKey(key string) string {
	return fmt.Sprintf("setting:%s", key)
}
