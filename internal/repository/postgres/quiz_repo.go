package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create сохраняет документ викторины одной вставкой
func (r *QuizRepo) Create(ctx context.Context, quiz *entity.Quiz) error {
	return r.db.WithContext(ctx).Create(quiz).Error
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает все викторины в обратном порядке создания.
// id (UUIDv7) разрешает совпадения created_at.
func (r *QuizRepo) List(ctx context.Context) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}
