package manager

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	"github.com/yourusername/quiz-maker/pkg/auth"
)

// DefaultSessionCookie - имя куки сессии по умолчанию
const DefaultSessionCookie = "session"

// ErrNoSession возвращается, когда в запросе нет действующей сессии
var ErrNoSession = errors.New("no active session")

// SessionManager связывает JWTService с HttpOnly кукой сессии
type SessionManager struct {
	jwtService *auth.JWTService
	// Настройки для Cookie
	cookieName     string
	cookiePath     string
	cookieDomain   string
	cookieSecure   bool
	cookieSameSite http.SameSite
}

// NewSessionManager создает менеджер сессий
func NewSessionManager(jwtService *auth.JWTService, cookieName string, secure bool) *SessionManager {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return &SessionManager{
		jwtService:     jwtService,
		cookieName:     cookieName,
		cookiePath:     "/",
		cookieSecure:   secure,
		cookieSameSite: http.SameSiteLaxMode,
	}
}

// CookieName возвращает имя куки сессии
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// Start выдает новую сессию пользователю и записывает ее в куку
func (m *SessionManager) Start(w http.ResponseWriter, user *entity.User) (auth.Actor, error) {
	token, claims, err := m.jwtService.GenerateToken(user)
	if err != nil {
		return auth.Actor{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     m.cookiePath,
		Domain:   m.cookieDomain,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: m.cookieSameSite,
		MaxAge:   int(m.jwtService.TTL().Seconds()),
	})
	return auth.ActorFromClaims(claims), nil
}

// Load возвращает пользователя сессии из куки запроса.
// Отсутствующая, просроченная или отозванная сессия дает ErrNoSession.
func (m *SessionManager) Load(r *http.Request) (auth.Actor, *auth.SessionClaims, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return auth.Actor{}, nil, ErrNoSession
	}
	claims, err := m.jwtService.ParseToken(r.Context(), cookie.Value)
	if err != nil {
		log.Printf("[SessionManager] Сессия из куки отклонена: %v", err)
		return auth.Actor{}, nil, ErrNoSession
	}
	return auth.ActorFromClaims(claims), claims, nil
}

// End отзывает сессию (если она есть) и удаляет куку. Без сессии ничего не делает, кроме очистки куки.
func (m *SessionManager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if _, claims, err := m.Load(r); err == nil {
		if revokeErr := m.jwtService.RevokeToken(ctx, claims); revokeErr != nil {
			log.Printf("[SessionManager] Ошибка отзыва сессии: %v", revokeErr)
		}
	}
	m.ClearSessionCookie(w)
}

// ClearSessionCookie удаляет куку сессии
func (m *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     m.cookiePath,
		Domain:   m.cookieDomain,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: m.cookieSameSite,
		MaxAge:   -1,
	})
}
