package service_test

import (
	"context"
	"intranet-portal/config"
	"intranet-portal/internal/model"
	"intranet-portal/internal/security"
	"intranet-portal/internal/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthenticationService() (*service.AuthenticationService, *MockJWTRepository, *MockJWTService, *MockUserRepository, *MockNotifier) {
	mockJWTRepo := new(MockJWTRepository)
	mockJWTService := new(MockJWTService)
	mockUserRepo := new(MockUserRepository)
	mockNotifier := new(MockNotifier)

	cfg := &config.AppConfig{JWT: config.JWTConfig{SecretKey: "test-secret"}}
	svc := service.NewAuthenticationService(mockJWTRepo, cfg, nil, mockJWTService, mockUserRepo, mockNotifier)

	return svc, mockJWTRepo, mockJWTService, mockUserRepo, mockNotifier
}

func hashedRefreshToken(t *testing.T, raw string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

// ===== Тесты Login =====

func TestLogin_Success(t *testing.T) {
	svc, mockJWTRepo, mockJWTService, mockUserRepo, _ := newTestAuthenticationService()
	ctx := context.Background()

	passwordHash, err := security.HashPassword("Qwerty1!aA")
	require.NoError(t, err)

	user := &model.User{UUID: "u1", Login: "employee1", PasswordHash: passwordHash, Role: model.RoleUser}
	mockUserRepo.On("FindByLogin", ctx, mock.Anything, "employee1").Return(user, nil)

	pair := &model.TokensPair{AccessToken: "access", RefreshToken: "refresh"}
	refresh := &model.RefreshToken{UUID: "rt1", UserUUID: "u1"}
	mockJWTService.On("GenerateAccessRefreshTokens", "u1", model.RoleUser).Return(pair, refresh, nil)
	mockJWTRepo.On("SaveRefreshToken", ctx, refresh).Return(nil)

	tokens, err := svc.Login(ctx, "employee1", "Qwerty1!aA", "agent", "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "agent", refresh.UserAgent)
	assert.Equal(t, "10.0.0.1", refresh.IpAddress)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, mockJWTService, mockUserRepo, _ := newTestAuthenticationService()
	ctx := context.Background()

	passwordHash, err := security.HashPassword("Qwerty1!aA")
	require.NoError(t, err)

	user := &model.User{UUID: "u1", Login: "employee1", PasswordHash: passwordHash, Role: model.RoleUser}
	mockUserRepo.On("FindByLogin", ctx, mock.Anything, "employee1").Return(user, nil)

	_, err = svc.Login(ctx, "employee1", "wrong", "agent", "10.0.0.1")

	assert.Error(t, err)
	mockJWTService.AssertNotCalled(t, "GenerateAccessRefreshTokens")
}

// ===== Тесты RefreshToken =====

func validClaims() *security.Claims {
	return &security.Claims{UserUUID: "u1", Role: model.RoleUser, RefreshTokenUUID: "rt1"}
}

func TestRefreshToken_Success(t *testing.T) {
	svc, mockJWTRepo, mockJWTService, _, mockNotifier := newTestAuthenticationService()
	ctx := context.Background()

	stored := &model.RefreshToken{
		UUID:      "rt1",
		UserUUID:  "u1",
		TokenHash: hashedRefreshToken(t, "refresh-raw"),
		ExpireAt:  time.Now().UTC().Add(time.Hour),
		UserAgent: "agent",
		IpAddress: "10.0.0.1",
	}

	mockJWTService.On("ValidateJWT", "access-token", []byte("test-secret")).Return(validClaims(), nil)
	mockJWTRepo.On("FindByUUID", ctx, "rt1").Return(stored, nil)
	mockJWTRepo.On("MarkRefreshTokenUsedByUUID", ctx, "rt1").Return(nil)

	pair := &model.TokensPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	newRefresh := &model.RefreshToken{UUID: "rt2", UserUUID: "u1"}
	mockJWTService.On("GenerateAccessRefreshTokens", "u1", model.RoleUser).Return(pair, newRefresh, nil)
	mockJWTRepo.On("SaveRefreshToken", ctx, newRefresh).Return(nil)

	tokens, err := svc.RefreshToken(ctx, "agent", "10.0.0.1", "access-token", "refresh-raw")

	require.NoError(t, err)
	assert.Equal(t, "new-access", tokens.AccessToken)
	mockNotifier.AssertNotCalled(t, "Send")
}

func TestRefreshToken_UsedTokenRejected(t *testing.T) {
	svc, mockJWTRepo, mockJWTService, _, _ := newTestAuthenticationService()
	ctx := context.Background()

	stored := &model.RefreshToken{UUID: "rt1", Used: true, ExpireAt: time.Now().UTC().Add(time.Hour)}

	mockJWTService.On("ValidateJWT", "access-token", []byte("test-secret")).Return(validClaims(), nil)
	mockJWTRepo.On("FindByUUID", ctx, "rt1").Return(stored, nil)

	_, err := svc.RefreshToken(ctx, "agent", "10.0.0.1", "access-token", "refresh-raw")

	assert.Error(t, err)
}

func TestRefreshToken_UserAgentChangeRevokesToken(t *testing.T) {
	svc, mockJWTRepo, mockJWTService, _, _ := newTestAuthenticationService()
	ctx := context.Background()

	stored := &model.RefreshToken{
		UUID:      "rt1",
		TokenHash: hashedRefreshToken(t, "refresh-raw"),
		ExpireAt:  time.Now().UTC().Add(time.Hour),
		UserAgent: "agent",
		IpAddress: "10.0.0.1",
	}

	mockJWTService.On("ValidateJWT", "access-token", []byte("test-secret")).Return(validClaims(), nil)
	mockJWTRepo.On("FindByUUID", ctx, "rt1").Return(stored, nil)
	mockJWTRepo.On("MarkRefreshTokenUsedByUUID", ctx, "rt1").Return(nil)

	_, err := svc.RefreshToken(ctx, "another-agent", "10.0.0.1", "access-token", "refresh-raw")

	assert.Error(t, err)
	// токен деавторизован
	mockJWTRepo.AssertCalled(t, "MarkRefreshTokenUsedByUUID", ctx, "rt1")
	mockJWTService.AssertNotCalled(t, "GenerateAccessRefreshTokens")
}

func TestRefreshToken_NewIPSendsSecurityNotification(t *testing.T) {
	svc, mockJWTRepo, mockJWTService, _, mockNotifier := newTestAuthenticationService()
	ctx := context.Background()

	stored := &model.RefreshToken{
		UUID:      "rt1",
		UserUUID:  "u1",
		TokenHash: hashedRefreshToken(t, "refresh-raw"),
		ExpireAt:  time.Now().UTC().Add(time.Hour),
		UserAgent: "agent",
		IpAddress: "10.0.0.1",
	}

	mockJWTService.On("ValidateJWT", "access-token", []byte("test-secret")).Return(validClaims(), nil)
	mockJWTRepo.On("FindByUUID", ctx, "rt1").Return(stored, nil)
	mockJWTRepo.On("MarkRefreshTokenUsedByUUID", ctx, "rt1").Return(nil)
	mockNotifier.On("Send", "u1", "security", mock.Anything, mock.Anything, "auth").Return()

	pair := &model.TokensPair{AccessToken: "new-access", RefreshToken: "new-refresh"}
	newRefresh := &model.RefreshToken{UUID: "rt2", UserUUID: "u1"}
	mockJWTService.On("GenerateAccessRefreshTokens", "u1", model.RoleUser).Return(pair, newRefresh, nil)
	mockJWTRepo.On("SaveRefreshToken", ctx, newRefresh).Return(nil)

	// смена IP не запрещает операцию, но отправляет уведомление безопасности
	tokens, err := svc.RefreshToken(ctx, "agent", "172.16.0.9", "access-token", "refresh-raw")

	require.NoError(t, err)
	assert.NotNil(t, tokens)
	mockNotifier.AssertNumberOfCalls(t, "Send", 1)
}

// ===== Тесты Logout =====

func TestLogout_MarksTokenUsed(t *testing.T) {
	svc, mockJWTRepo, _, _, _ := newTestAuthenticationService()
	ctx := context.Background()

	mockJWTRepo.On("MarkRefreshTokenUsedByUUID", ctx, "rt1").Return(nil)

	err := svc.Logout(ctx, "rt1")

	require.NoError(t, err)
	mockJWTRepo.AssertExpectations(t)
}
