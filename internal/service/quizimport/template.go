package quizimport

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const templateSheet = "Quiz"

var templateExample = []string{"Capital of France?", "0", "Paris", "Rome", "Berlin", "Madrid"}

// WriteTemplate записывает пустой шаблон импорта с одной строкой-примером
func WriteTemplate(w io.Writer, format string) error {
	switch format {
	case FormatXLSX:
		return writeTemplateXLSX(w)
	case FormatCSV:
		return writeTemplateCSV(w)
	default:
		return ErrUnsupportedFormat
	}
}

func writeTemplateCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(TemplateHeader); err != nil {
		return err
	}
	if err := writer.Write(templateExample); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func writeTemplateXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", templateSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(templateSheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	if err := sw.SetRow("A1", toRow(TemplateHeader)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := sw.SetRow("A2", toRow(templateExample)); err != nil {
		return fmt.Errorf("failed to write example row: %w", err)
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	return f.Write(w)
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
