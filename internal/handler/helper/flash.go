package helper

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FlashCookie - имя куки одноразовых уведомлений
const FlashCookie = "flash"

// pendingFlashKey хранит уведомления, добавленные в текущем запросе
const pendingFlashKey = "flash_pending"

// SetFlash добавляет уведомление, которое будет показано на следующей странице
func SetFlash(c *gin.Context, message string) {
	pending := append(pendingFlashes(c), message)
	c.Set(pendingFlashKey, pending)

	data, err := json.Marshal(pending)
	if err != nil {
		log.Printf("[Flash] Ошибка сериализации уведомлений: %v", err)
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes возвращает уведомления из куки запроса и удаляет куку
func PopFlashes(c *gin.Context) []string {
	cookie, err := c.Request.Cookie(FlashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     FlashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var messages []string
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil
	}
	return messages
}

func pendingFlashes(c *gin.Context) []string {
	if v, ok := c.Get(pendingFlashKey); ok {
		if messages, ok := v.([]string); ok {
			return messages
		}
	}
	return nil
}
