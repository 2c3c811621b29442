package service

import (
	"context"
	"encoding/json"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/ports"
	"log"
	"net/http"
	"sort"
	"time"
)

// региональные праздники, которых нет в стороннем API; месяц-день, год подставляется
var regionalHolidays = [][2]string{
	{"01-08", "Региональный корпоративный день"},
	{"09-12", "День основания компании"},
}

// HolidayService : производственный календарь — сторонний API + встроенный
// региональный список, результат кэшируется в Redis по году
type HolidayService struct {
	cacheRepository ports.CacheRepository
	cfg             *config.HolidayConfig
	httpClient      *http.Client
}

func NewHolidayService(cacheRepository ports.CacheRepository, cfg *config.HolidayConfig) *HolidayService {
	timeout := 10 * time.Second
	if cfg != nil && cfg.Timeout != "" {
		if parsed, err := time.ParseDuration(cfg.Timeout); err == nil {
			timeout = parsed
		}
	}
	return &HolidayService{
		cacheRepository: cacheRepository,
		cfg:             cfg,
		httpClient:      &http.Client{Timeout: timeout},
	}
}

type upstreamHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// Holidays : список праздников за год; при недоступности API отдаётся ошибка,
// частичные данные не возвращаются
func (s *HolidayService) Holidays(ctx context.Context, year int) ([]model.Holiday, error) {
	cached, err := s.cacheRepository.GetHolidays(ctx, year)
	if err != nil {
		log.Printf("[HolidayService] ошибка чтения кэша: %v", err)
	}
	if cached != nil {
		log.Printf("[HolidayService] праздники %d взяты из кэша Redis", year)
		return cached, nil
	}

	fetched, err := s.fetchYear(ctx, year)
	if err != nil {
		return nil, err
	}

	holidays := make([]model.Holiday, 0, len(fetched)+len(regionalHolidays))
	holidays = append(holidays, fetched...)
	for _, regional := range regionalHolidays {
		holidays = append(holidays, model.Holiday{
			Date:   fmt.Sprintf("%d-%s", year, regional[0]),
			Name:   regional[1],
			Source: "regional",
		})
	}

	sort.Slice(holidays, func(a, b int) bool {
		return holidays[a].Date < holidays[b].Date
	})

	if err := s.cacheRepository.SetHolidays(ctx, year, holidays); err != nil {
		log.Printf("[HolidayService] ошибка кэширования праздников: %v", err)
	}

	return holidays, nil
}

func (s *HolidayService) fetchYear(ctx context.Context, year int) ([]model.Holiday, error) {
	if s.cfg == nil || s.cfg.BaseURL == "" {
		return nil, fmt.Errorf("[HolidayService] сервис праздников не настроен: %w", apperr.ErrUpstream)
	}

	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", s.cfg.BaseURL, year, s.cfg.CountryCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("[HolidayService] ошибка создания запроса: %w", apperr.ErrUpstream)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[HolidayService] сервис праздников недоступен: %w", apperr.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("[HolidayService] сервис праздников вернул статус %d: %w", resp.StatusCode, apperr.ErrUpstream)
	}

	var upstream []upstreamHoliday
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, fmt.Errorf("[HolidayService] некорректный ответ сервиса праздников: %w", apperr.ErrUpstream)
	}

	holidays := make([]model.Holiday, 0, len(upstream))
	for _, h := range upstream {
		name := h.LocalName
		if name == "" {
			name = h.Name
		}
		holidays = append(holidays, model.Holiday{
			Date:   h.Date,
			Name:   name,
			Source: "api",
		})
	}

	return holidays, nil
}
