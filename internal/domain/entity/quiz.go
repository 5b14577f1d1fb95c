package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quiz представляет документ викторины: заголовок, автора и вложенные вопросы.
// Документ создается целиком одной записью и больше не изменяется.
type Quiz struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string       `gorm:"type:text;not null" json:"title"`
	AuthorID   uint         `gorm:"not null;index" json:"author_id"`
	AuthorName string       `gorm:"type:text;not null" json:"author_name"` // Имя на момент создания
	Questions  QuestionList `gorm:"type:jsonb;not null" json:"questions"`
	CreatedAt  time.Time    `gorm:"not null;index" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// BeforeCreate присваивает идентификатор UUIDv7, если он не задан.
// UUIDv7 упорядочен по времени создания.
func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	q.ID = id
	return nil
}

// QuestionCount возвращает количество вопросов
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// QuestionList - вопросы викторины, хранящиеся одним JSON-документом
type QuestionList []Question

// Scan реализует интерфейс sql.Scanner для QuestionList
func (l *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to unmarshal JSON questions: unsupported column type")
	}

	if len(data) == 0 {
		*l = QuestionList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value реализует интерфейс driver.Valuer для QuestionList
func (l QuestionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
