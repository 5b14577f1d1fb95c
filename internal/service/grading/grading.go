// Package grading оценивает ответы на викторину. Функции пакета чистые:
// ничего не сохраняют и не возвращают ошибок на некорректный ввод.
package grading

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
)

// Answers - присланные ответы: индекс вопроса (строкой) -> индекс варианта.
// Значения не проверены; допустимы строки из цифр и неотрицательные целые числа.
type Answers map[string]interface{}

// QuestionResult - результат по одному вопросу
type QuestionResult struct {
	Question  string  `json:"question"`
	Chosen    *string `json:"chosen"`
	Correct   *string `json:"correct"`
	IsCorrect bool    `json:"is_correct"`
}

// ScoreReport - итог оценки
type ScoreReport struct {
	Score   int              `json:"score"`
	Total   int              `json:"total"`
	Details []QuestionResult `json:"details"`
}

// Grade считает правильные ответы. Вопрос засчитывается, если выбран существующий вариант
// с флагом IsCorrect. Правильным ответом в отчете считается первый отмеченный вариант.
func Grade(quiz *entity.Quiz, answers Answers) ScoreReport {
	var questions entity.QuestionList
	if quiz != nil {
		questions = quiz.Questions
	}

	report := ScoreReport{
		Total:   len(questions),
		Details: make([]QuestionResult, 0, len(questions)),
	}

	for i := range questions {
		q := &questions[i]
		result := QuestionResult{Question: q.Text}

		if correct := q.CorrectChoice(); correct != nil {
			result.Correct = stringPtr(correct.Text)
		}

		if raw, ok := answers[strconv.Itoa(i)]; ok {
			if idx, valid := ParseChoiceIndex(raw, q.ChoicesCount()); valid {
				chosen := q.Choices[idx]
				result.Chosen = stringPtr(chosen.Text)
				result.IsCorrect = chosen.IsCorrect
			}
		}

		if result.IsCorrect {
			report.Score++
		}
		report.Details = append(report.Details, result)
	}
	return report
}

// ParseChoiceIndex проверяет присланный индекс варианта.
// Возвращает false для всего, что не является неотрицательным целым меньше n.
func ParseChoiceIndex(raw interface{}, n int) (int, bool) {
	var idx int
	switch v := raw.(type) {
	case string:
		parsed, ok := parseDigits(v)
		if !ok {
			return 0, false
		}
		idx = parsed
	case json.Number:
		parsed, ok := parseDigits(v.String())
		if !ok {
			return 0, false
		}
		idx = parsed
	case int:
		idx = v
	case int64:
		if v < 0 || v >= int64(n) {
			return 0, false
		}
		idx = int(v)
	default:
		// bool, float64, null, объекты и массивы
		return 0, false
	}

	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

// parseDigits принимает только непустую строку из ASCII-цифр
func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// переполнение
		return 0, false
	}
	return n, true
}

// DecodeAnswers читает тело вида {"answers": {...}}.
// Пустое или некорректное тело, как и answers не-объект, дает пустой набор ответов.
func DecodeAnswers(r io.Reader) Answers {
	if r == nil {
		return Answers{}
	}
	var payload struct {
		Answers json.RawMessage `json:"answers"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || len(payload.Answers) == 0 {
		return Answers{}
	}

	answers := Answers{}
	inner := json.NewDecoder(bytes.NewReader(payload.Answers))
	inner.UseNumber()
	if err := inner.Decode(&answers); err != nil || answers == nil {
		return Answers{}
	}
	return answers
}

func stringPtr(s string) *string {
	return &s
}
