package entity

// Choice - вариант ответа. Позиция в вопросе служит идентификатором.
type Choice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// Question - вопрос викторины. Позиция в викторине служит идентификатором.
// Количество вариантов с флагом IsCorrect не ограничивается: их может быть 0, 1 или несколько.
type Question struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// ChoicesCount возвращает количество вариантов ответа
func (q *Question) ChoicesCount() int {
	return len(q.Choices)
}

// CorrectChoice возвращает первый вариант с флагом IsCorrect.
// Если ни один вариант не отмечен, возвращает nil.
func (q *Question) CorrectChoice() *Choice {
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	return nil
}

// QuestionDraft - непроверенный вопрос из формы или файла импорта.
// CorrectIndex хранится строкой как пришел и сравнивается со строковой позицией варианта.
type QuestionDraft struct {
	Text         string
	Choices      []string
	CorrectIndex string
}
