package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	"github.com/yourusername/quiz-maker/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
	"github.com/yourusername/quiz-maker/internal/service/grading"
	"github.com/yourusername/quiz-maker/internal/service/quizimport"
)

const quizCacheKeyPrefix = "quiz:"

// CreateQuizInput - непроверенные данные новой викторины
type CreateQuizInput struct {
	Title      string
	AuthorID   uint
	AuthorName string
	Questions  []entity.QuestionDraft
}

// ImportQuizInput - данные импорта викторины из файла
type ImportQuizInput struct {
	Title      string
	AuthorID   uint
	AuthorName string
	Filename   string
	File       io.Reader
}

// QuizService предоставляет методы для работы с викторинами
type QuizService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// CreateQuiz проверяет и нормализует вопросы, затем сохраняет викторину одним документом
func (s *QuizService) CreateQuiz(ctx context.Context, input CreateQuizInput) (*entity.Quiz, error) {
	if input.AuthorID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || !hasQuestionText(input.Questions) {
		return nil, ErrQuizIncomplete
	}

	questions := BuildQuestions(input.Questions)
	if len(questions) == 0 {
		return nil, ErrNoValidChoices
	}

	quiz := &entity.Quiz{
		Title:      title,
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Questions:  questions,
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		log.Printf("[QuizService] Ошибка сохранения викторины '%s' автора ID=%d: %v", title, input.AuthorID, err)
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("[QuizService] Викторина %s создана автором ID=%d (%d вопросов)", quiz.ID, quiz.AuthorID, quiz.QuestionCount())
	return quiz, nil
}

// ImportQuiz разбирает файл таблицы и создает викторину тем же путем, что и форма
func (s *QuizService) ImportQuiz(ctx context.Context, input ImportQuizInput) (*entity.Quiz, error) {
	if input.AuthorID == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	drafts, err := quizimport.Parse(input.Filename, input.File)
	if err != nil {
		return nil, err
	}
	return s.CreateQuiz(ctx, CreateQuizInput{
		Title:      input.Title,
		AuthorID:   input.AuthorID,
		AuthorName: input.AuthorName,
		Questions:  drafts,
	})
}

func hasQuestionText(drafts []entity.QuestionDraft) bool {
	for _, d := range drafts {
		if strings.TrimSpace(d.Text) != "" {
			return true
		}
	}
	return false
}

// BuildQuestions превращает черновики в вопросы: обрезает текст, пропускает пустые вопросы
// и варианты, отмечает правильным вариант, чья исходная позиция (с учетом пропущенных)
// совпадает с CorrectIndex, и отбрасывает вопросы без вариантов.
func BuildQuestions(drafts []entity.QuestionDraft) entity.QuestionList {
	questions := make(entity.QuestionList, 0, len(drafts))
	for _, d := range drafts {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		choices := make([]entity.Choice, 0, len(d.Choices))
		for pos, raw := range d.Choices {
			choiceText := strings.TrimSpace(raw)
			if choiceText == "" {
				continue
			}
			choices = append(choices, entity.Choice{
				Text:      choiceText,
				IsCorrect: strconv.Itoa(pos) == d.CorrectIndex,
			})
		}
		if len(choices) == 0 {
			continue
		}
		questions = append(questions, entity.Question{Text: text, Choices: choices})
	}
	return questions
}

// ParseQuizID проверяет формат идентификатора викторины
func ParseQuizID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", apperrors.ErrMalformedID, raw)
	}
	return id, nil
}

// GetQuiz возвращает викторину по строковому идентификатору.
// ErrMalformedID для неверного формата, ErrNotFound для отсутствующей викторины.
func (s *QuizService) GetQuiz(ctx context.Context, rawID string) (*entity.Quiz, error) {
	id, err := ParseQuizID(rawID)
	if err != nil {
		return nil, err
	}
	return s.GetQuizByID(ctx, id)
}

// GetQuizByID читает викторину через кеш. Документы не изменяются,
// поэтому кеш не требует инвалидации.
func (s *QuizService) GetQuizByID(ctx context.Context, id uuid.UUID) (*entity.Quiz, error) {
	cacheKey := quizCacheKeyPrefix + id.String()

	var cached entity.Quiz
	err := s.cacheRepo.GetJSON(ctx, cacheKey, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		log.Printf("[QuizService] Ошибка чтения кеша %s: %v", cacheKey, err)
	}

	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: quiz %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}

	if err := s.cacheRepo.SetJSON(ctx, cacheKey, quiz, s.cacheTTL); err != nil {
		log.Printf("[QuizService] Ошибка записи кеша %s: %v", cacheKey, err)
	}
	return quiz, nil
}

// ListQuizzes возвращает все викторины, новые первыми
func (s *QuizService) ListQuizzes(ctx context.Context) ([]entity.Quiz, error) {
	quizzes, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// SubmitAnswers оценивает ответы на викторину. Ответы не сохраняются.
func (s *QuizService) SubmitAnswers(ctx context.Context, rawID string, answers grading.Answers) (grading.ScoreReport, error) {
	quiz, err := s.GetQuiz(ctx, rawID)
	if err != nil {
		return grading.ScoreReport{}, err
	}
	return grading.Grade(quiz, answers), nil
}
