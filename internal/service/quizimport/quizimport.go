// Package quizimport читает вопросы викторины из таблицы (xlsx или csv).
//
// Формат строки: A - текст вопроса, B - позиция правильного варианта (с нуля),
// C и далее - варианты ответа. Первая строка пропускается, если A1 равно "question".
package quizimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
)

// Поддерживаемые форматы
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// headerCell - значение A1, по которому распознается строка заголовков
const headerCell = "question"

// TemplateHeader - заголовки шаблона импорта
var TemplateHeader = []string{"question", "correct", "choice 0", "choice 1", "choice 2", "choice 3"}

// ErrUnsupportedFormat возвращается для файлов с неизвестным расширением
var ErrUnsupportedFormat = fmt.Errorf("%w: unsupported file format (expected .xlsx or .csv)", apperrors.ErrInvalidInput)

// FormatFromFilename определяет формат по расширению файла
func FormatFromFilename(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Parse читает черновики вопросов из файла. Значения не проверяются:
// нормализация выполняется тем же конвейером, что и для формы.
func Parse(filename string, r io.Reader) ([]entity.QuestionDraft, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: file is required", apperrors.ErrInvalidInput)
	}
	format, err := FormatFromFilename(filename)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(r)
	case FormatCSV:
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}
	return draftsFromRows(rows), nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read xlsx file: %v", apperrors.ErrInvalidInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read sheet %q: %v", apperrors.ErrInvalidInput, sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // количество вариантов у вопросов различается

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: cannot read csv file: %v", apperrors.ErrInvalidInput, err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func draftsFromRows(rows [][]string) []entity.QuestionDraft {
	if len(rows) > 0 && len(rows[0]) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), headerCell) {
		rows = rows[1:]
	}

	drafts := make([]entity.QuestionDraft, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		draft := entity.QuestionDraft{Text: row[0]}
		if len(row) > 1 {
			draft.CorrectIndex = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			draft.Choices = append([]string(nil), row[2:]...)
		}
		drafts = append(drafts, draft)
	}
	return drafts
}
