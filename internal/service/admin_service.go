package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/util"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// AdminService : настройки портала (key → jsonb) с кэшем в Redis
// и проверка LDAP-конфигурации через внешний мост
type AdminService struct {
	settingsRepository ports.SettingsRepository
	cacheRepository    ports.CacheRepository
	storage            ports.S3Storage
	db                 *config.Database
	ldap               *config.LDAPConfig
	httpClient         *http.Client
	ttl                time.Duration
}

func NewAdminService(
	settingsRepository ports.SettingsRepository,
	cacheRepository ports.CacheRepository,
	storage ports.S3Storage,
	db *config.Database,
	ldap *config.LDAPConfig,
	ttl time.Duration,
) *AdminService {
	timeout := 10 * time.Second
	if ldap != nil && ldap.Timeout != "" {
		if parsed, err := time.ParseDuration(ldap.Timeout); err == nil {
			timeout = parsed
		}
	}
	return &AdminService{
		settingsRepository: settingsRepository,
		cacheRepository:    cacheRepository,
		storage:            storage,
		db:                 db,
		ldap:               ldap,
		httpClient:         &http.Client{Timeout: timeout},
		ttl:                ttl,
	}
}

// GetSetting : сначала Redis, при промахе — БД с последующим кэшированием
func (s *AdminService) GetSetting(ctx context.Context, key string) (*model.AdminSetting, error) {
	cached, err := s.cacheRepository.GetSetting(ctx, key)
	if err != nil {
		log.Printf("[AdminService] ошибка чтения кэша: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	setting, err := s.settingsRepository.Get(ctx, s.db, key)
	if err != nil {
		return nil, util.LogError("[AdminService] настройка не найдена", err)
	}

	if err := s.cacheRepository.SetSetting(ctx, setting); err != nil {
		log.Printf("[AdminService] ошибка кэширования настройки: %v", err)
	}

	return setting, nil
}

// SetSetting : upsert значения целиком, кэш инвалидируется
func (s *AdminService) SetSetting(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("[AdminService] значение должно быть валидным JSON: %w", apperr.ErrValidation)
	}

	if err := s.settingsRepository.Set(ctx, s.db, key, value); err != nil {
		return util.LogError("[AdminService] не удалось сохранить настройку", err)
	}

	if err := s.cacheRepository.DeleteSetting(ctx, key); err != nil {
		log.Printf("[AdminService] ошибка инвалидации кэша: %v", err)
	}

	return nil
}

// SetSettingField : точечное обновление одного поля jsonb-значения
func (s *AdminService) SetSettingField(ctx context.Context, key, field string, value json.RawMessage) error {
	if field == "" {
		return fmt.Errorf("[AdminService] имя поля обязательно: %w", apperr.ErrValidation)
	}
	if !json.Valid(value) {
		return fmt.Errorf("[AdminService] значение должно быть валидным JSON: %w", apperr.ErrValidation)
	}

	if err := s.settingsRepository.SetField(ctx, s.db, key, field, value); err != nil {
		return util.LogError("[AdminService] не удалось обновить поле настройки", err)
	}

	if err := s.cacheRepository.DeleteSetting(ctx, key); err != nil {
		log.Printf("[AdminService] ошибка инвалидации кэша: %v", err)
	}

	return nil
}

// UploadSettingFile : файл настройки (логотип, фон) уходит в S3 по pre-signed PUT URL,
// путь сохраняется в соответствующее поле настройки
func (s *AdminService) UploadSettingFile(ctx context.Context, key, field, filename string) (string, string, error) {
	storagePath := fmt.Sprintf("settings/%s/%s%s", key, uuid.New().String(), filepath.Ext(filename))

	putURL, err := s.storage.GeneratePresignedPutURL(ctx, storagePath, s.ttl)
	if err != nil {
		return "", "", util.LogError("[AdminService] не удалось сгенерировать pre-signed PUT URL", err)
	}

	pathJSON, err := json.Marshal(storagePath)
	if err != nil {
		return "", "", util.LogError("[AdminService] ошибка сериализации пути", err)
	}

	if err := s.SetSettingField(ctx, key, field, pathJSON); err != nil {
		return "", "", err
	}

	return storagePath, putURL, nil
}

// TestLDAP : проверка конфигурации выполняется внешним мостом,
// ответ возвращается как есть; недоступность моста — ошибка upstream
func (s *AdminService) TestLDAP(ctx context.Context, rawConfig json.RawMessage) (*ports.LDAPTestResult, error) {
	if s.ldap == nil || s.ldap.TestURL == "" {
		return nil, fmt.Errorf("[AdminService] LDAP-мост не настроен: %w", apperr.ErrUpstream)
	}
	if !json.Valid(rawConfig) {
		return nil, fmt.Errorf("[AdminService] конфигурация должна быть валидным JSON: %w", apperr.ErrValidation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ldap.TestURL, bytes.NewReader(rawConfig))
	if err != nil {
		return nil, util.LogError("[AdminService] ошибка создания запроса", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[AdminService] LDAP-мост недоступен: %w", apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("[AdminService] ошибка чтения ответа LDAP-моста: %w", apperr.ErrUpstream)
	}

	var result ports.LDAPTestResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("[AdminService] некорректный ответ LDAP-моста: %w", apperr.ErrUpstream)
	}

	return &result, nil
}
