package service_test

import (
	"context"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/service"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) SetHolidays(ctx context.Context, year int, holidays []model.Holiday) error {
	return m.Called(ctx, year, holidays).Error(0)
}

func (m *MockCacheRepository) GetHolidays(ctx context.Context, year int) ([]model.Holiday, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Holiday), args.Error(1)
}

func (m *MockCacheRepository) SetSetting(ctx context.Context, setting *model.AdminSetting) error {
	return m.Called(ctx, setting).Error(0)
}

func (m *MockCacheRepository) GetSetting(ctx context.Context, key string) (*model.AdminSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AdminSetting), args.Error(1)
}

func (m *MockCacheRepository) DeleteSetting(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestHolidays_CacheHitSkipsUpstream(t *testing.T) {
	mockCache := new(MockCacheRepository)

	cached := []model.Holiday{{Date: "2025-01-01", Name: "Новый год", Source: "api"}}
	mockCache.On("GetHolidays", mock.Anything, 2025).Return(cached, nil)

	// BaseURL пустой: любой поход наружу закончился бы ошибкой
	svc := service.NewHolidayService(mockCache, &config.HolidayConfig{})

	holidays, err := svc.Holidays(context.Background(), 2025)

	require.NoError(t, err)
	assert.Equal(t, cached, holidays)
	mockCache.AssertNotCalled(t, "SetHolidays")
}

func TestHolidays_MergesRegionalAndSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/PublicHolidays/2025/RU", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date": "2025-05-01", "localName": "Праздник весны и труда", "name": "Labour Day"},
			{"date": "2025-01-01", "localName": "Новый год", "name": "New Year"}
		]`))
	}))
	defer server.Close()

	mockCache := new(MockCacheRepository)
	mockCache.On("GetHolidays", mock.Anything, 2025).Return(nil, nil)
	mockCache.On("SetHolidays", mock.Anything, 2025, mock.Anything).Return(nil)

	svc := service.NewHolidayService(mockCache, &config.HolidayConfig{BaseURL: server.URL, CountryCode: "RU"})

	holidays, err := svc.Holidays(context.Background(), 2025)

	require.NoError(t, err)
	require.Len(t, holidays, 4)
	assert.True(t, sort.SliceIsSorted(holidays, func(a, b int) bool {
		return holidays[a].Date < holidays[b].Date
	}))
	assert.Equal(t, "Новый год", holidays[0].Name)

	regional := 0
	for _, h := range holidays {
		if h.Source == "regional" {
			regional++
		}
	}
	assert.Equal(t, 2, regional)
	mockCache.AssertCalled(t, "SetHolidays", mock.Anything, 2025, mock.Anything)
}

func TestHolidays_UpstreamErrorNoPartialData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	mockCache := new(MockCacheRepository)
	mockCache.On("GetHolidays", mock.Anything, 2025).Return(nil, nil)

	svc := service.NewHolidayService(mockCache, &config.HolidayConfig{BaseURL: server.URL, CountryCode: "RU"})

	holidays, err := svc.Holidays(context.Background(), 2025)

	assert.ErrorIs(t, err, apperr.ErrUpstream)
	assert.Nil(t, holidays)
	mockCache.AssertNotCalled(t, "SetHolidays")
}

func TestHolidays_PrefersLocalName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date": "2025-06-12", "localName": "", "name": "Russia Day"}]`))
	}))
	defer server.Close()

	mockCache := new(MockCacheRepository)
	mockCache.On("GetHolidays", mock.Anything, 2025).Return(nil, nil)
	mockCache.On("SetHolidays", mock.Anything, 2025, mock.Anything).Return(nil)

	svc := service.NewHolidayService(mockCache, &config.HolidayConfig{BaseURL: server.URL, CountryCode: "RU"})

	holidays, err := svc.Holidays(context.Background(), 2025)

	require.NoError(t, err)

	var apiNames []string
	for _, h := range holidays {
		if h.Source == "api" {
			apiNames = append(apiNames, h.Name)
		}
	}
	assert.Equal(t, []string{"Russia Day"}, apiNames)
}
