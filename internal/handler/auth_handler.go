package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
	"github.com/yourusername/quiz-maker/internal/service"
	"github.com/yourusername/quiz-maker/pkg/auth/manager"
)

// Уведомления страниц регистрации и входа
const (
	NoticeRegistered         = "Registered successfully. Please login."
	NoticeMissingCredentials = "Please provide both username and password."
	NoticeUsernameTaken      = "Username already exists"
	NoticeRegisterFailed     = "Registration failed, please try again."
	NoticeLoginSuccessful    = "Login successful"
	NoticeInvalidCredentials = "Invalid credentials"
	NoticeLoginFailed        = "Login failed, please try again."
	NoticeLoggedOut          = "Logged out"
)

// AuthHandler обрабатывает регистрацию, вход и выход
type AuthHandler struct {
	authService *service.AuthService
	sessions    *manager.SessionManager
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, sessions *manager.SessionManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterPage отображает форму регистрации
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	renderPage(c, http.StatusOK, "register.html", gin.H{"Title": "Register"})
}

// Register обрабатывает форму регистрации
func (h *AuthHandler) Register(c *gin.Context) {
	user, err := h.authService.Register(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			redirectWithFlash(c, "/register", NoticeMissingCredentials)
		case errors.Is(err, apperrors.ErrDuplicateUsername):
			redirectWithFlash(c, "/register", NoticeUsernameTaken)
		default:
			log.Printf("[AuthHandler] Ошибка регистрации: %v", err)
			redirectWithFlash(c, "/register", NoticeRegisterFailed)
		}
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d (%s) зарегистрирован", user.ID, user.Username)
	redirectWithFlash(c, "/login", NoticeRegistered)
}

// LoginPage отображает форму входа
func (h *AuthHandler) LoginPage(c *gin.Context) {
	renderPage(c, http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login проверяет учетные данные и открывает сессию.
// При ошибке форма показывается снова с единым сообщением.
func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authService.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			renderPage(c, http.StatusOK, "login.html", gin.H{"Title": "Login"}, NoticeInvalidCredentials)
			return
		}
		log.Printf("[AuthHandler] Ошибка входа: %v", err)
		renderPage(c, http.StatusInternalServerError, "login.html", gin.H{"Title": "Login"}, NoticeLoginFailed)
		return
	}

	if _, err := h.sessions.Start(c.Writer, user); err != nil {
		log.Printf("[AuthHandler] Не удалось открыть сессию для ID=%d: %v", user.ID, err)
		renderPage(c, http.StatusInternalServerError, "login.html", gin.H{"Title": "Login"}, NoticeLoginFailed)
		return
	}

	log.Printf("[AuthHandler] Пользователь ID=%d вошел в систему", user.ID)
	redirectWithFlash(c, "/", NoticeLoginSuccessful)
}

// Logout отзывает сессию и удаляет куку
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.End(c.Request.Context(), c.Writer, c.Request)
	redirectWithFlash(c, "/", NoticeLoggedOut)
}
