package dto

import (
	"strconv"
	"time"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	"github.com/yourusername/quiz-maker/internal/handler/helper"
)

// QuestionData - вопрос для прохождения викторины. Флаг правильности не передается.
type QuestionData struct {
	ID      string                `json:"id"`
	Text    string                `json:"text"`
	Choices []helper.ChoiceOption `json:"choices"`
}

// QuizDataResponse - ответ GET /api/quiz/{id}/data
type QuizDataResponse struct {
	Questions []QuestionData `json:"questions"`
}

// QuizSummaryResponse - краткое описание викторины для списка
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	AuthorName    string    `json:"author_name"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListQuizResponse - ответ GET /api/quizzes
type ListQuizResponse struct {
	Quizzes []QuizSummaryResponse `json:"quizzes"`
}

// CreatedQuizResponse - ответ на импорт викторины
type CreatedQuizResponse struct {
	ID string `json:"id"`
}

// NewQuizDataResponse создает DTO для прохождения: позиции вопросов и вариантов служат id
func NewQuizDataResponse(quiz *entity.Quiz) *QuizDataResponse {
	questions := make([]QuestionData, len(quiz.Questions))
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		questions[i] = QuestionData{
			ID:      strconv.Itoa(i),
			Text:    q.Text,
			Choices: helper.ConvertChoicesToOptions(q.Choices),
		}
	}
	return &QuizDataResponse{Questions: questions}
}

// NewQuizSummaryResponse создает краткое DTO викторины
func NewQuizSummaryResponse(quiz *entity.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:            quiz.ID.String(),
		Title:         quiz.Title,
		AuthorName:    quiz.AuthorName,
		QuestionCount: quiz.QuestionCount(),
		CreatedAt:     quiz.CreatedAt,
	}
}

// NewListQuizResponse создает DTO для списка викторин с сохранением порядка
func NewListQuizResponse(quizzes []entity.Quiz) *ListQuizResponse {
	summaries := make([]QuizSummaryResponse, len(quizzes))
	for i := range quizzes {
		summaries[i] = NewQuizSummaryResponse(&quizzes[i])
	}
	return &ListQuizResponse{Quizzes: summaries}
}
