package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-maker/internal/handler/helper"
	"github.com/yourusername/quiz-maker/internal/middleware"
)

// renderPage отрисовывает HTML-страницу. В данные добавляются пользователь сессии,
// накопленные flash-уведомления и уведомления текущего запроса.
func renderPage(c *gin.Context, status int, name string, data gin.H, notices ...string) {
	if data == nil {
		data = gin.H{}
	}
	if actor, ok := middleware.CurrentUser(c); ok {
		data["User"] = &actor
	}
	data["Flashes"] = append(helper.PopFlashes(c), notices...)
	c.HTML(status, name, data)
}

// redirectWithFlash сохраняет уведомление и перенаправляет на location
func redirectWithFlash(c *gin.Context, location, message string) {
	helper.SetFlash(c, message)
	c.Redirect(http.StatusFound, location)
}
