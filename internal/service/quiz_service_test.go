package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
	"github.com/yourusername/quiz-maker/internal/service/grading"
)

const testCacheTTL = time.Hour

func newTestQuizService() (*QuizService, *MockQuizRepository, *MockCacheRepository) {
	quizRepo := &MockQuizRepository{}
	cacheRepo := &MockCacheRepository{}
	return NewQuizService(quizRepo, cacheRepo, testCacheTTL), quizRepo, cacheRepo
}

// expectCreate сохраняет викторину, присваивая ей ID как это делает BeforeCreate
func expectCreate(quizRepo *MockQuizRepository) {
	quizRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Quiz")).
		Run(func(args mock.Arguments) {
			quiz := args.Get(1).(*entity.Quiz)
			quiz.ID = uuid.Must(uuid.NewV7())
		}).
		Return(nil).Once()
}

func validInput() CreateQuizInput {
	return CreateQuizInput{
		Title:      "T",
		AuthorID:   1,
		AuthorName: "alice",
		Questions:  []entity.QuestionDraft{{Text: "Q", Choices: []string{"A"}, CorrectIndex: "0"}},
	}
}

func TestCreateQuiz_MinimalSucceeds(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newTestQuizService()
	expectCreate(quizRepo)

	// Act
	quiz, err := svc.CreateQuiz(context.Background(), validInput())

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, quiz.ID)
	assert.Equal(t, "T", quiz.Title)
	assert.Equal(t, uint(1), quiz.AuthorID)
	assert.Equal(t, "alice", quiz.AuthorName)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, []entity.Choice{{Text: "A", IsCorrect: true}}, quiz.Questions[0].Choices)
	quizRepo.AssertExpectations(t)
}

func TestCreateQuiz_LongTitleKeptInFull(t *testing.T) {
	svc, quizRepo, _ := newTestQuizService()
	expectCreate(quizRepo)
	in := validInput()
	in.Title = strings.Repeat("a", 300)
	in.AuthorName = strings.Repeat("b", 120)

	quiz, err := svc.CreateQuiz(context.Background(), in)

	require.NoError(t, err)
	assert.Len(t, quiz.Title, 300, "Длинное название не должно обрезаться")
	assert.Len(t, quiz.AuthorName, 120)
}

func TestCreateQuiz_ValidationPipeline(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateQuizInput)
		wantErr error
	}{
		{"whitespace title", func(in *CreateQuizInput) { in.Title = "  " }, ErrQuizIncomplete},
		{"empty title", func(in *CreateQuizInput) { in.Title = "" }, ErrQuizIncomplete},
		{"no questions", func(in *CreateQuizInput) { in.Questions = nil }, ErrQuizIncomplete},
		{"only blank questions", func(in *CreateQuizInput) {
			in.Questions = []entity.QuestionDraft{{Text: "  ", Choices: []string{"A"}}}
		}, ErrQuizIncomplete},
		{"only blank choices", func(in *CreateQuizInput) {
			in.Questions = []entity.QuestionDraft{
				{Text: "Q1", Choices: []string{"", "  "}},
				{Text: "Q2"},
			}
		}, ErrNoValidChoices},
		{"missing author", func(in *CreateQuizInput) { in.AuthorID = 0 }, apperrors.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, quizRepo, _ := newTestQuizService()
			in := validInput()
			tt.mutate(&in)

			_, err := svc.CreateQuiz(context.Background(), in)

			assert.ErrorIs(t, err, tt.wantErr)
			quizRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateQuiz_ValidationErrorsWrapSentinel(t *testing.T) {
	assert.ErrorIs(t, ErrQuizIncomplete, apperrors.ErrValidation)
	assert.ErrorIs(t, ErrNoValidChoices, apperrors.ErrValidation)
	assert.Contains(t, strings.ToLower(ErrNoValidChoices.Error()), "each question must have at least one valid choice")
}

func TestCreateQuiz_StoreError(t *testing.T) {
	svc, quizRepo, _ := newTestQuizService()
	dbErr := errors.New("insert failed")
	quizRepo.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

	_, err := svc.CreateQuiz(context.Background(), validInput())

	assert.ErrorIs(t, err, dbErr)
}

func TestBuildQuestions(t *testing.T) {
	// Arrange: пустой вопрос, пустые варианты и вопрос без вариантов
	drafts := []entity.QuestionDraft{
		{Text: "  Capital of France?  ", Choices: []string{" Paris ", "Rome"}, CorrectIndex: "0"},
		{Text: "   ", Choices: []string{"x"}, CorrectIndex: "0"},
		{Text: "2+2?", Choices: []string{"", "3", "4"}, CorrectIndex: "2"},
		{Text: "No choices", Choices: []string{" ", ""}, CorrectIndex: "0"},
		{Text: "Bad index", Choices: []string{"a", "b"}, CorrectIndex: "x"},
		{Text: "Padded index", Choices: []string{"a", "b"}, CorrectIndex: " 1"},
		{Text: "No index", Choices: []string{"a"}},
	}

	// Act
	questions := BuildQuestions(drafts)

	// Assert
	require.Len(t, questions, 5)
	assert.Equal(t, entity.Question{
		Text:    "Capital of France?",
		Choices: []entity.Choice{{Text: "Paris", IsCorrect: true}, {Text: "Rome"}},
	}, questions[0])
	// Позиция считается с учетом пропущенного пустого варианта
	assert.Equal(t, entity.Question{
		Text:    "2+2?",
		Choices: []entity.Choice{{Text: "3"}, {Text: "4", IsCorrect: true}},
	}, questions[1])
	assert.Nil(t, questions[2].CorrectChoice(), "Нечисловой индекс не совпадает ни с одним вариантом")
	assert.Nil(t, questions[3].CorrectChoice(), "Индекс сравнивается как строка без обрезки")
	assert.Nil(t, questions[4].CorrectChoice())
}

func TestParseQuizID(t *testing.T) {
	id := uuid.Must(uuid.NewV7())

	parsed, err := ParseQuizID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, raw := range []string{"", "abc", "not-a-uuid-at-all-000000000000000000", " " + id.String()} {
		_, err := ParseQuizID(raw)
		assert.ErrorIs(t, err, apperrors.ErrMalformedID, "raw=%q", raw)
	}

	// Нулевой UUID синтаксически корректен: дальше он дает "не найдено"
	nilID, err := ParseQuizID(uuid.Nil.String())
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, nilID)
}

func TestGetQuiz_NilIDIsNotFound(t *testing.T) {
	svc, quizRepo, cacheRepo := newTestQuizService()
	ctx := context.Background()
	cacheRepo.On("GetJSON", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	quizRepo.On("GetByID", ctx, uuid.Nil).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.GetQuiz(ctx, uuid.Nil.String())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrMalformedID)
	quizRepo.AssertExpectations(t)
}

func TestGetQuiz_MalformedIDSkipsStore(t *testing.T) {
	svc, quizRepo, cacheRepo := newTestQuizService()

	_, err := svc.GetQuiz(context.Background(), "zzz")

	assert.ErrorIs(t, err, apperrors.ErrMalformedID)
	quizRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cacheRepo.AssertNotCalled(t, "GetJSON", mock.Anything, mock.Anything)
}

func TestGetQuiz_CacheMissReadsStoreAndFillsCache(t *testing.T) {
	// Arrange
	svc, quizRepo, cacheRepo := newTestQuizService()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	stored := &entity.Quiz{ID: id, Title: "Geo", AuthorID: 1, AuthorName: "alice"}
	key := "quiz:" + id.String()

	cacheRepo.On("GetJSON", ctx, key).Return(nil, apperrors.ErrNotFound).Once()
	quizRepo.On("GetByID", ctx, id).Return(stored, nil).Once()
	cacheRepo.On("SetJSON", ctx, key, stored, testCacheTTL).Return(nil).Once()

	// Act
	quiz, err := svc.GetQuiz(ctx, id.String())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored, quiz)
	quizRepo.AssertExpectations(t)
	cacheRepo.AssertExpectations(t)
}

func TestGetQuiz_CacheHitSkipsStore(t *testing.T) {
	svc, quizRepo, cacheRepo := newTestQuizService()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	cached := entity.Quiz{ID: id, Title: "Cached", Questions: entity.QuestionList{}}
	cacheRepo.On("GetJSON", ctx, "quiz:"+id.String()).Return(cached, nil).Once()

	quiz, err := svc.GetQuiz(ctx, id.String())

	require.NoError(t, err)
	assert.Equal(t, "Cached", quiz.Title)
	assert.Equal(t, id, quiz.ID)
	quizRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetQuiz_CacheFailureFallsBackToStore(t *testing.T) {
	svc, quizRepo, cacheRepo := newTestQuizService()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	stored := &entity.Quiz{ID: id, Title: "Geo"}
	cacheRepo.On("GetJSON", ctx, mock.Anything).Return(nil, errors.New("redis down")).Once()
	quizRepo.On("GetByID", ctx, id).Return(stored, nil).Once()
	cacheRepo.On("SetJSON", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	quiz, err := svc.GetQuiz(ctx, id.String())

	require.NoError(t, err, "Ошибки кеша не должны ломать чтение")
	assert.Equal(t, stored, quiz)
}

func TestGetQuiz_NotFound(t *testing.T) {
	svc, quizRepo, cacheRepo := newTestQuizService()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	cacheRepo.On("GetJSON", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	quizRepo.On("GetByID", ctx, id).Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.GetQuiz(ctx, id.String())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NotErrorIs(t, err, apperrors.ErrMalformedID)
	cacheRepo.AssertNotCalled(t, "SetJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListQuizzes(t *testing.T) {
	svc, quizRepo, _ := newTestQuizService()
	ctx := context.Background()
	list := []entity.Quiz{{Title: "newer"}, {Title: "older"}}
	quizRepo.On("List", ctx).Return(list, nil).Once()

	quizzes, err := svc.ListQuizzes(ctx)

	require.NoError(t, err)
	assert.Equal(t, list, quizzes)
}

func TestListQuizzes_StoreError(t *testing.T) {
	svc, quizRepo, _ := newTestQuizService()
	quizRepo.On("List", mock.Anything).Return(nil, errors.New("boom")).Once()

	_, err := svc.ListQuizzes(context.Background())

	assert.Error(t, err)
}

func TestSubmitAnswers(t *testing.T) {
	// Arrange
	svc, quizRepo, cacheRepo := newTestQuizService()
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	stored := &entity.Quiz{ID: id, Title: "Geo", Questions: entity.QuestionList{
		{Text: "Capital of France?", Choices: []entity.Choice{{Text: "Paris", IsCorrect: true}, {Text: "Rome"}}},
	}}
	cacheRepo.On("GetJSON", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	quizRepo.On("GetByID", ctx, id).Return(stored, nil).Once()
	cacheRepo.On("SetJSON", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	// Act
	report, err := svc.SubmitAnswers(ctx, id.String(), grading.Answers{"0": "0"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.Score)
	assert.Equal(t, 1, report.Total)
}

func TestSubmitAnswers_MalformedID(t *testing.T) {
	svc, _, _ := newTestQuizService()

	_, err := svc.SubmitAnswers(context.Background(), "bad", grading.Answers{})

	assert.ErrorIs(t, err, apperrors.ErrMalformedID)
}

func TestImportQuiz_CSV(t *testing.T) {
	// Arrange
	svc, quizRepo, _ := newTestQuizService()
	expectCreate(quizRepo)
	file := strings.NewReader("question,correct,a,b\nCapital of France?,1,Rome,Paris\n")

	// Act
	quiz, err := svc.ImportQuiz(context.Background(), ImportQuizInput{
		Title: "Geo", AuthorID: 2, AuthorName: "bob", Filename: "geo.csv", File: file,
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	correct := quiz.Questions[0].CorrectChoice()
	require.NotNil(t, correct)
	assert.Equal(t, "Paris", correct.Text)
	assert.Equal(t, "bob", quiz.AuthorName)
}

func TestImportQuiz_Errors(t *testing.T) {
	svc, quizRepo, _ := newTestQuizService()

	_, err := svc.ImportQuiz(context.Background(), ImportQuizInput{Title: "X", Filename: "a.csv", File: strings.NewReader("")})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.ImportQuiz(context.Background(), ImportQuizInput{Title: "X", AuthorID: 1, Filename: "a.doc", File: strings.NewReader("")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.ImportQuiz(context.Background(), ImportQuizInput{Title: "X", AuthorID: 1, Filename: "a.csv", File: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrQuizIncomplete, "Пустой файл не дает ни одного вопроса")

	quizRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
