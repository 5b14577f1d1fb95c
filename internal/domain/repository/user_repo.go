package repository

import (
	"context"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create возвращает apperrors.ErrDuplicateUsername при нарушении уникальности имени
	Create(ctx context.Context, user *entity.User) error
	// GetByUsername ищет по точному (регистрозависимому) совпадению
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
