package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-maker/internal/service"
)

// ExtractQuizIDParam извлекает и валидирует идентификатор викторины из URL.
// Неверный формат дает 400 {"error": "Invalid quiz id"} до обращения к хранилищу.
func ExtractQuizIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := service.ParseQuizID(c.Param(paramName))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz id"})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}

// QuizIDFromContext возвращает идентификатор, сохраненный ExtractQuizIDParam
func QuizIDFromContext(c *gin.Context, contextKey string) (uuid.UUID, bool) {
	v, exists := c.Get(contextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
