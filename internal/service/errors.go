package service

import (
	"fmt"

	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
)

// Ошибки валидации викторины. Обе оборачивают apperrors.ErrValidation.
var (
	// ErrQuizIncomplete - пустой заголовок или ни одного вопроса с текстом
	ErrQuizIncomplete = fmt.Errorf("%w: title and at least one question required", apperrors.ErrValidation)
	// ErrNoValidChoices - после фильтрации не осталось ни одного вопроса с вариантами
	ErrNoValidChoices = fmt.Errorf("%w: each question must have at least one valid choice", apperrors.ErrValidation)
)
