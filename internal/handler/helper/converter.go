package helper

import (
	"strconv"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
)

// ChoiceOption - вариант ответа для клиента, без флага правильности
type ChoiceOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ConvertChoicesToOptions преобразует варианты в объекты с id (позиция строкой) и text
func ConvertChoicesToOptions(choices []entity.Choice) []ChoiceOption {
	converted := make([]ChoiceOption, len(choices))
	for i, c := range choices {
		converted[i] = ChoiceOption{ID: strconv.Itoa(i), Text: c.Text}
	}
	return converted
}
