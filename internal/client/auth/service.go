// Package auth реализует клиентские операции авторизации: регистрацию,
// вход с сохранением токенов в локальное хранилище и выход.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/platesync/internal/client/api"
	"github.com/iudanet/platesync/internal/client/storage"
	"github.com/iudanet/platesync/internal/validation"
	pkgapi "github.com/iudanet/platesync/pkg/api"
)

// Service предоставляет функции авторизации
type Service struct {
	apiClient *api.Client
	authStore storage.AuthStorage
	logger    *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(apiClient *api.Client, authStore storage.AuthStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		authStore: authStore,
		logger:    logger,
	}
}

// RegisterResult содержит результат регистрации
type RegisterResult struct {
	UserID   string // UUID пользователя
	Username string
}

// Register регистрирует нового пользователя.
// Токены не выдаются - после регистрации нужен отдельный Login.
func (s *Service) Register(ctx context.Context, username, password string) (*RegisterResult, error) {
	// Валидация входных данных
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	req := pkgapi.RegisterRequest{
		Username: username,
		Password: password,
	}

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return &RegisterResult{
		UserID:   resp.UserID,
		Username: username,
	}, nil
}

// Login выполняет аутентификацию и сохраняет токены в локальное хранилище
func (s *Service) Login(ctx context.Context, username, password string) (*storage.AuthData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	req := pkgapi.LoginRequest{
		Username: username,
		Password: password,
	}

	resp, err := s.apiClient.Login(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	authData := &storage.AuthData{
		Username:     username,
		UserID:       resp.UserID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Unix() + resp.ExpiresIn,
	}

	if err := s.authStore.SaveAuth(ctx, authData); err != nil {
		return nil, fmt.Errorf("failed to save auth data: %w", err)
	}

	return authData, nil
}

// Logout удаляет локальные данные авторизации.
// Сервер не уведомляется: access token короткоживущий и истечет сам.
// Повторный logout без активной сессии не ошибка.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.authStore.DeleteAuth(ctx); err != nil && !errors.Is(err, storage.ErrAuthNotFound) {
		return fmt.Errorf("failed to delete local auth data: %w", err)
	}

	s.logger.Info("Logged out, local auth data removed")
	return nil
}

// CurrentAuth возвращает сохраненные данные авторизации.
// Returns storage.ErrAuthNotFound если пользователь не залогинен.
func (s *Service) CurrentAuth(ctx context.Context) (*storage.AuthData, error) {
	return s.authStore.GetAuth(ctx)
}

// IsAuthenticated проверяет валидность сохраненных данных по сроку действия токена
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.authStore.IsAuthenticated(ctx)
}
