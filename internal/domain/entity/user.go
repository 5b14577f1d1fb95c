package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User представляет зарегистрированного пользователя.
// После регистрации запись не изменяется.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:text;not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:text;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// isBcryptHash проверяет префикс bcrypt-хеша ("$2a$", "$2b$" или "$2y$")
func isBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") ||
		strings.HasPrefix(value, "$2b$") ||
		strings.HasPrefix(value, "$2y$")
}

// SetPassword хеширует пароль и сохраняет только хеш
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// BeforeSave гарантирует, что в базу не попадет пароль в открытом виде.
// Если в PasswordHash лежит не bcrypt-хеш, он хешируется перед записью.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.PasswordHash) > 0 && !isBcryptHash(u.PasswordHash) {
		if err := u.SetPassword(u.PasswordHash); err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для username=%s: %v", u.Username, err)
			return err
		}
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
