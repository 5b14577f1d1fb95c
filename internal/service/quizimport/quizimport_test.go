package quizimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-maker/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-maker/internal/pkg/errors"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
		wantErr  bool
	}{
		{"quiz.xlsx", FormatXLSX, false},
		{"QUIZ.XLSX", FormatXLSX, false},
		{"quiz.csv", FormatCSV, false},
		{"quiz.txt", "", true},
		{"quiz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := FormatFromFilename(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_CSV(t *testing.T) {
	// Arrange: заголовок, обычная строка, строка без вариантов
	data := "Question,Correct,A,B\n" +
		"Capital of France?,0,Paris,Rome\n" +
		"  2+2?  ,1, 3 ,4,5\n" +
		"Orphan\n"

	// Act
	drafts, err := Parse("quiz.csv", strings.NewReader(data))

	// Assert
	require.NoError(t, err)
	require.Len(t, drafts, 3)
	assert.Equal(t, entity.QuestionDraft{Text: "Capital of France?", CorrectIndex: "0", Choices: []string{"Paris", "Rome"}}, drafts[0])
	assert.Equal(t, "  2+2?  ", drafts[1].Text, "Текст не обрезается на этапе чтения")
	assert.Equal(t, "1", drafts[1].CorrectIndex)
	assert.Equal(t, []string{" 3 ", "4", "5"}, drafts[1].Choices)
	assert.Equal(t, entity.QuestionDraft{Text: "Orphan"}, drafts[2])
}

func TestParse_CSVWithoutHeader(t *testing.T) {
	drafts, err := Parse("quiz.csv", strings.NewReader("Sky?,0,blue,green\n"))

	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Sky?", drafts[0].Text)
}

func TestParse_CSVMalformed(t *testing.T) {
	_, err := Parse("quiz.csv", strings.NewReader("\"unterminated,0,a\n"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestParse_XLSX(t *testing.T) {
	// Arrange
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"question", "correct", "choice 0", "choice 1"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Capital of France?", "0", "Paris", "Rome"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Sky?", "1", "green", "blue"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	// Act
	drafts, err := Parse("upload.xlsx", bytes.NewReader(buf.Bytes()))

	// Assert
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, entity.QuestionDraft{Text: "Capital of France?", CorrectIndex: "0", Choices: []string{"Paris", "Rome"}}, drafts[0])
	assert.Equal(t, entity.QuestionDraft{Text: "Sky?", CorrectIndex: "1", Choices: []string{"green", "blue"}}, drafts[1])
}

func TestParse_XLSXCorrupted(t *testing.T) {
	_, err := Parse("upload.xlsx", strings.NewReader("definitely not a zip"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestParse_UnsupportedFormatAndNilReader(t *testing.T) {
	_, err := Parse("quiz.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("quiz.csv", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWriteTemplate_RoundTrip(t *testing.T) {
	for _, format := range []string{FormatCSV, FormatXLSX} {
		t.Run(format, func(t *testing.T) {
			// Arrange & Act
			var buf bytes.Buffer
			require.NoError(t, WriteTemplate(&buf, format))
			drafts, err := Parse("template."+format, &buf)

			// Assert: заголовок пропущен, пример читается
			require.NoError(t, err)
			require.Len(t, drafts, 1)
			assert.Equal(t, "Capital of France?", drafts[0].Text)
			assert.Equal(t, "0", drafts[0].CorrectIndex)
			assert.Equal(t, []string{"Paris", "Rome", "Berlin", "Madrid"}, drafts[0].Choices)
		})
	}
}

func TestWriteTemplate_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteTemplate(&buf, "pdf"), ErrUnsupportedFormat)
}
