package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-maker/internal/handler/helper"
	"github.com/yourusername/quiz-maker/pkg/auth"
	"github.com/yourusername/quiz-maker/pkg/auth/manager"
)

// NoticeLoginRequired показывается анониму при попытке создать викторину
const NoticeLoginRequired = "Please register or login before creating a quiz."

// currentUserKey - ключ пользователя сессии в контексте Gin
const currentUserKey = "current_user"

// AuthMiddleware загружает сессию из куки и ограничивает доступ к маршрутам
type AuthMiddleware struct {
	sessions *manager.SessionManager
}

// NewAuthMiddleware создает новый middleware сессий
func NewAuthMiddleware(sessions *manager.SessionManager) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// LoadSession выполняется для каждого запроса. Действующая сессия попадает в контекст Gin
// и в context.Context запроса; недействительная кука удаляется, запрос продолжается анонимно.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _, err := m.sessions.Load(c.Request)
		if err != nil {
			if cookie, cookieErr := c.Request.Cookie(m.sessions.CookieName()); cookieErr == nil && cookie.Value != "" {
				m.sessions.ClearSessionCookie(c.Writer)
			}
			c.Next()
			return
		}

		c.Set(currentUserKey, actor)
		c.Request = c.Request.WithContext(auth.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// RequireSession перенаправляет анонима на страницу регистрации с уведомлением
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			helper.SetFlash(c, NoticeLoginRequired)
			c.Redirect(http.StatusFound, "/register")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSessionJSON отвечает 401 для анонимных запросов к API
func (m *AuthMiddleware) RequireSessionJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentUser возвращает пользователя сессии, если он есть
func CurrentUser(c *gin.Context) (auth.Actor, bool) {
	if v, exists := c.Get(currentUserKey); exists {
		if actor, ok := v.(auth.Actor); ok && actor.ID != 0 {
			return actor, true
		}
	}
	return auth.Actor{}, false
}
