package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	"github.com/yourusername/quiz-maker/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
)

// AuthService регистрирует пользователей и проверяет учетные данные
type AuthService struct {
	userRepo repository.UserRepository
	// dummyHash сравнивается с паролем, когда пользователь не найден
	dummyHash []byte
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("quiz-maker-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare placeholder hash: %w", err)
	}
	return &AuthService{userRepo: userRepo, dummyHash: dummyHash}, nil
}

// Register создает пользователя. Имя обрезается по краям, пароль сохраняется как есть
// (но не может состоять только из пробелов).
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateUsername, username)
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[AuthService] Ошибка поиска пользователя %s: %v", username, err)
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user := &entity.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUsername) {
			return nil, err
		}
		log.Printf("[AuthService] Ошибка создания пользователя %s: %v", username, err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирован пользователь ID=%d (%s)", user.ID, user.Username)
	return user, nil
}

// Authenticate ищет пользователя по точному имени и проверяет пароль.
// Любая неудача возвращает ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[AuthService] Ошибка поиска пользователя при входе: %v", err)
		}
		// Время ответа не должно выдавать существование пользователя
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
