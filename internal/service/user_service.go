package service

import (
	"context"
	"fmt"
	"intranet-portal/config"
	"intranet-portal/internal/apperr"
	"intranet-portal/internal/model"
	"intranet-portal/internal/ports"
	"intranet-portal/internal/security"
	"intranet-portal/internal/util"
	"path/filepath"
	"time"
	"unicode"

	"github.com/google/uuid"
)

type UserService struct {
	userRepository ports.UserRepository
	jwtService     ports.JWTServiceInterface
	jwtRepository  ports.JWTRepositoryInterface
	storage        ports.S3Storage
	db             *config.Database
	adminToken     *config.AdminConfig
	ttl            time.Duration
}

func NewUserService(
	userRepository ports.UserRepository,
	jwtService ports.JWTServiceInterface,
	jwtRepository ports.JWTRepositoryInterface,
	storage ports.S3Storage,
	db *config.Database,
	adminToken *config.AdminConfig,
	ttl time.Duration,
) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwtService:     jwtService,
		jwtRepository:  jwtRepository,
		storage:        storage,
		db:             db,
		adminToken:     adminToken,
		ttl:            ttl,
	}
}

// Register : регистрация нового сотрудника, доступна только по токену администратора
func (s *UserService) Register(ctx context.Context, adminToken string, login string, password string, name string, role string) (*model.TokensPair, error) {
	if s.adminToken == nil || adminToken != s.adminToken.AdminToken {
		return nil, fmt.Errorf("[UserService] неверный токен администратора: %w", apperr.ErrForbidden)
	}

	if len(login) < 8 {
		return nil, fmt.Errorf("[UserService] логин должен быть не меньше 8 символов: %w", apperr.ErrValidation)
	}
	for _, c := range login {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return nil, fmt.Errorf("[UserService] логин должен содержать только латинские буквы и цифры: %w", apperr.ErrValidation)
		}
	}

	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w: %w", err, apperr.ErrValidation)
	}

	if role != model.RoleAdmin {
		role = model.RoleUser
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Login:        login,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}

	created, err := s.userRepository.CreateUser(ctx, s.db, user)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка создания пользователя: %w", err)
	}

	tokens, refreshToken, err := s.jwtService.GenerateAccessRefreshTokens(created.UUID, created.Role)
	if err != nil {
		return nil, fmt.Errorf("[UserService] ошибка генерации токенов: %w", err)
	}

	if err := s.jwtRepository.SaveRefreshToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("[UserService] не удалось сохранить refresh токен: %w", err)
	}

	return tokens, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount, specialCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		case unicode.IsPunct(c) || unicode.IsSymbol(c):
			specialCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 || (upperCount+lowerCount) < 2 {
		return fmt.Errorf("пароль должен содержать минимум 2 буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}
	if specialCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы один специальный символ")
	}

	return nil
}

// GetUser : карточка сотрудника доступна любому авторизованному пользователю
func (s *UserService) GetUser(ctx context.Context, uuid string) (*model.User, error) {
	user, err := s.userRepository.FindByUUID(ctx, s.db, uuid)
	if err != nil {
		return nil, fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	return user, nil
}

// UpdateProfile : профиль меняет сам сотрудник либо администратор
func (s *UserService) UpdateProfile(ctx context.Context, callerUUID string, isAdmin bool, updatedUser *model.User) error {
	if !isAdmin && callerUUID != updatedUser.UUID {
		return fmt.Errorf("[UserService] доступ запрещён: %w", apperr.ErrForbidden)
	}

	return s.userRepository.UpdateProfile(ctx, s.db, updatedUser)
}

func (s *UserService) UpdatePassword(ctx context.Context, uuid string, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return fmt.Errorf("[UserService] %w: %w", err, apperr.ErrValidation)
	}

	hash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.userRepository.UpdatePassword(ctx, s.db, uuid, hash)
}

// UpdateAvatar : сохраняет путь аватара и возвращает pre-signed PUT URL для загрузки
func (s *UserService) UpdateAvatar(ctx context.Context, userUUID string, filename string) (string, string, error) {
	avatarPath := fmt.Sprintf("avatars/%s/%s%s", userUUID, uuid.New().String(), filepath.Ext(filename))

	putURL, err := s.storage.GeneratePresignedPutURL(ctx, avatarPath, s.ttl)
	if err != nil {
		return "", "", util.LogError("[UserService] не удалось сгенерировать pre-signed PUT URL", err)
	}

	if err := s.userRepository.UpdateAvatar(ctx, s.db, userUUID, avatarPath); err != nil {
		return "", "", util.LogError("[UserService] не удалось обновить аватар", err)
	}

	return avatarPath, putURL, nil
}

// DeleteUser : удаление сотрудника, проверка прав выполняется в handler
func (s *UserService) DeleteUser(ctx context.Context, uuid string) error {
	if err := s.userRepository.DeleteUser(ctx, s.db, uuid); err != nil {
		return fmt.Errorf("[UserService] пользователь не найден: %w", err)
	}

	return nil
}

// ListUsers : справочник сотрудников (cursor-based pagination)
func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	users, nextCursor, err := s.userRepository.ListUsers(ctx, s.db, cursor, limit)
	if err != nil {
		return nil, "", err
	}

	return users, nextCursor, nil
}
