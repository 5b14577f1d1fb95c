package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	"github.com/yourusername/quiz-maker/internal/handler/dto"
	"github.com/yourusername/quiz-maker/internal/middleware"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
	"github.com/yourusername/quiz-maker/internal/service"
	"github.com/yourusername/quiz-maker/internal/service/grading"
	"github.com/yourusername/quiz-maker/internal/service/quizimport"
)

// QuizIDContextKey - ключ идентификатора викторины, извлеченного middleware
const QuizIDContextKey = "quizID"

// Уведомления страниц викторин
const (
	NoticeQuizCreated     = "Quiz created successfully"
	NoticeQuizIncomplete  = "Title and at least one question required"
	NoticeNoValidChoices  = "Each question must have at least one valid choice."
	NoticeInvalidQuizID   = "Invalid quiz id"
	NoticeQuizNotFound    = "Quiz not found"
	NoticeSomethingFailed = "Something went wrong, please try again."
)

// QuizHandler обрабатывает страницы и API викторин
type QuizHandler struct {
	quizService    *service.QuizService
	maxImportBytes int64
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, maxImportBytes int64) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		maxImportBytes: maxImportBytes,
	}
}

// Index отображает главную страницу
func (h *QuizHandler) Index(c *gin.Context) {
	renderPage(c, http.StatusOK, "index.html", nil)
}

// ListPage отображает список викторин, новые первыми
func (h *QuizHandler) ListPage(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		log.Printf("[QuizHandler] Ошибка при получении списка викторин: %v", err)
		renderPage(c, http.StatusInternalServerError, "quiz_list.html", gin.H{"Title": "Quizzes"}, NoticeSomethingFailed)
		return
	}
	renderPage(c, http.StatusOK, "quiz_list.html", gin.H{
		"Title":   "Quizzes",
		"Quizzes": dto.NewListQuizResponse(quizzes).Quizzes,
	})
}

// CreatePage отображает форму создания викторины
func (h *QuizHandler) CreatePage(c *gin.Context) {
	renderPage(c, http.StatusOK, "create_quiz.html", gin.H{"Title": "Create quiz"})
}

// CreateQuiz обрабатывает форму создания. Вопрос i берет варианты из полей
// "choice-i" и индекс правильного варианта из "correct-i".
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		redirectWithFlash(c, "/register", middleware.NoticeLoginRequired)
		return
	}

	texts := c.PostFormArray("question")
	drafts := make([]entity.QuestionDraft, 0, len(texts))
	for i, text := range texts {
		drafts = append(drafts, entity.QuestionDraft{
			Text:         text,
			Choices:      c.PostFormArray(fmt.Sprintf("choice-%d", i)),
			CorrectIndex: c.PostForm(fmt.Sprintf("correct-%d", i)),
		})
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), service.CreateQuizInput{
		Title:      c.PostForm("title"),
		AuthorID:   actor.ID,
		AuthorName: actor.DisplayName,
		Questions:  drafts,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			redirectWithFlash(c, "/create", validationNotice(err))
		case errors.Is(err, apperrors.ErrUnauthorized):
			redirectWithFlash(c, "/register", middleware.NoticeLoginRequired)
		default:
			log.Printf("[QuizHandler] Ошибка создания викторины: %v", err)
			redirectWithFlash(c, "/create", NoticeSomethingFailed)
		}
		return
	}

	log.Printf("[QuizHandler] Викторина %s создана пользователем ID=%d", quiz.ID, actor.ID)
	redirectWithFlash(c, "/quizzes", NoticeQuizCreated)
}

// QuizPage отображает страницу прохождения викторины
func (h *QuizHandler) QuizPage(c *gin.Context) {
	quiz, err := h.quizService.GetQuiz(c.Request.Context(), c.Param("quizId"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMalformedID):
			redirectWithFlash(c, "/quizzes", NoticeInvalidQuizID)
		case errors.Is(err, apperrors.ErrNotFound):
			redirectWithFlash(c, "/quizzes", NoticeQuizNotFound)
		default:
			log.Printf("[QuizHandler] Ошибка загрузки викторины %q: %v", c.Param("quizId"), err)
			redirectWithFlash(c, "/quizzes", NoticeSomethingFailed)
		}
		return
	}
	renderPage(c, http.StatusOK, "take_quiz.html", gin.H{"Title": quiz.Title, "Quiz": quiz})
}

// GetQuizData возвращает вопросы викторины без ключа ответов
func (h *QuizHandler) GetQuizData(c *gin.Context) {
	id, _ := middleware.QuizIDFromContext(c, QuizIDContextKey)

	quiz, err := h.quizService.GetQuizByID(c.Request.Context(), id)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuizDataResponse(quiz))
}

// SubmitQuiz оценивает ответы. Некорректное тело оценивается как пустой набор ответов.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	id, _ := middleware.QuizIDFromContext(c, QuizIDContextKey)

	answers := grading.DecodeAnswers(c.Request.Body)
	report, err := h.quizService.SubmitAnswers(c.Request.Context(), id.String(), answers)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ListQuizzes возвращает список викторин в JSON
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.ListQuizzes(c.Request.Context())
	if err != nil {
		log.Printf("[QuizHandler] Ошибка при получении списка викторин: %v", err)
		h.handleQuizError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// ImportQuiz создает викторину из файла .xlsx или .csv (multipart: title, file)
func (h *QuizHandler) ImportQuiz(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if h.maxImportBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImportBytes)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("[QuizHandler] Не удалось открыть загруженный файл %q: %v", fileHeader.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	quiz, err := h.quizService.ImportQuiz(c.Request.Context(), service.ImportQuizInput{
		Title:      c.PostForm("title"),
		AuthorID:   actor.ID,
		AuthorName: actor.DisplayName,
		Filename:   fileHeader.Filename,
		File:       file,
	})
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	log.Printf("[QuizHandler] Викторина %s импортирована из %q пользователем ID=%d", quiz.ID, fileHeader.Filename, actor.ID)
	c.JSON(http.StatusCreated, dto.CreatedQuizResponse{ID: quiz.ID.String()})
}

// ImportTemplate отдает шаблон файла импорта (?format=xlsx|csv, по умолчанию xlsx)
func (h *QuizHandler) ImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", quizimport.FormatXLSX)

	var buf bytes.Buffer
	if err := quizimport.WriteTemplate(&buf, format); err != nil {
		h.handleQuizError(c, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if format == quizimport.FormatXLSX {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quiz_template.%s", format))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// validationNotice возвращает текст уведомления для ошибки валидации викторины
func validationNotice(err error) string {
	if errors.Is(err, service.ErrNoValidChoices) {
		return NoticeNoValidChoices
	}
	return NoticeQuizIncomplete
}

// handleQuizError обрабатывает ошибки от сервиса викторин и отправляет соответствующий JSON ответ
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMalformedID):
		c.JSON(http.StatusBadRequest, gin.H{"error": NoticeInvalidQuizID})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": NoticeQuizNotFound})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationNotice(err)})
	case errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
