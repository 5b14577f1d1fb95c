package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/quiz-maker/internal/domain/entity"
)

// QuizRepository определяет методы для работы с документами викторин.
// Документы только создаются и читаются: изменения и удаления не предусмотрены.
type QuizRepository interface {
	// Create сохраняет документ одной записью и заполняет quiz.ID
	Create(ctx context.Context, quiz *entity.Quiz) error
	// GetByID возвращает apperrors.ErrNotFound, если документа нет
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quiz, error)
	// List возвращает все викторины, новые первыми
	List(ctx context.Context) ([]entity.Quiz, error)
}
