package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
	"github.com/ignatzorin/videocrew-backend/internal/validation"
)

// ErrAdminExists возвращается при попытке создать уже существующего администратора.
var ErrAdminExists = errors.New("admin user already exists")

// AdminUserRepository описывает зависимости AuthService от слоя хранилища.
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id string) (*models.AdminUser, error)
}

// AuthService инкапсулирует вход администратора и проверку токенов.
type AuthService struct {
	repo         AdminUserRepository
	tokenManager *TokenManager
	dummyHash    []byte
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult содержит выпущенный токен и публичную проекцию администратора.
type LoginResult struct {
	Token string
	User  models.AdminUserPublic
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AdminUserRepository, tokenManager *TokenManager) *AuthService {
	// Хеш сравнивается, когда пользователь не найден, чтобы время ответа не выдавало наличие email.
	dummy, err := bcrypt.GenerateFromPassword([]byte("videocrew-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Warn("auth service: не удалось подготовить фиктивный хеш")
	}

	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
		dummyHash:    dummy,
	}
}

// Login проверяет учётные данные и возвращает токен.
// Неизвестный email и неверный пароль дают одну и ту же ошибку.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, apperror.ErrCredentialsMissing
	}

	user, err := s.repo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrAdminUserNotFound) {
			return nil, apperror.Internal(fmt.Errorf("auth service: %w", err))
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Issue(user)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("auth service: не удалось выпустить токен: %w", err))
	}

	logger.Log.WithField("admin_id", user.ID).Info("auth service: вход администратора")

	return &LoginResult{Token: token, User: user.Public()}, nil
}

// Authenticate проверяет токен и убеждается, что администратор всё ещё существует.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.AdminUser, error) {
	claims, err := s.tokenManager.Parse(token)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, repository.ErrAdminUserNotFound) {
			return nil, apperror.ErrInvalidToken
		}
		return nil, apperror.Internal(fmt.Errorf("auth service: %w", err))
	}

	return user, nil
}

// CreateAdminUser хеширует пароль и сохраняет администратора.
func (s *AuthService) CreateAdminUser(ctx context.Context, email, rawPassword, name string) (*models.AdminUser, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	if err := validation.ValidatePassword(rawPassword); err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = models.DefaultAdminName
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захешировать пароль: %w", err)
	}

	user := &models.AdminUser{
		Email:        email,
		PasswordHash: string(passHash),
		Name:         name,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAdminUserExists) {
			return nil, ErrAdminExists
		}
		return nil, err
	}

	return user, nil
}
