package dataprocessing

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "moviestats/internal/errors"
	"moviestats/pkg/contracts/domain"
)

// LoadWorkbook reads a catalog from the first sheet of an Excel workbook.
// The sheet holds the same eight columns as the text format, header row first.
func LoadWorkbook(path string) ([]domain.Movie, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewFileAccessError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).
			WithContext("path", path)
	}
	sheetName := sheets[0]

	// Raw values keep numbers unformatted and leave real date cells as serials.
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("path", path).
			WithContext("sheet", sheetName)
	}

	movies, err := parseWorkbookRows(rows)
	if err != nil {
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("path", path).WithContext("sheet", sheetName)
		}
		return nil, err
	}

	slog.Debug("Workbook catalog loaded",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("records", len(movies)))

	return movies, nil
}

// parseWorkbookRows converts sheet rows, header first, into movies.
// excelize drops trailing empty cells, so short rows are padded back to
// FieldCount. A blank row between records is a row with no fields and fails
// the load, as a blank line does in the text format.
func parseWorkbookRows(rows [][]string) ([]domain.Movie, error) {
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("catalog has no header line", nil)
	}

	movies := []domain.Movie{}
	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			return nil, blankLineError(line)
		}

		if len(row) < FieldCount {
			padded := make([]string, FieldCount)
			copy(padded, row)
			row = padded
		}

		row = normalizeDateCell(row)

		movie, err := parseRecord(row, line)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	return movies, nil
}

// normalizeDateCell rewrites a date stored as an Excel serial number into
// DD/MM/YYYY text. Text cells are left alone.
func normalizeDateCell(row []string) []string {
	raw := strings.TrimSpace(row[colReleaseDate])
	if strings.Contains(raw, "/") {
		return row
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return row
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return row
	}

	out := make([]string, len(row))
	copy(out, row)
	out[colReleaseDate] = formatReleaseDate(t)
	return out
}

func formatReleaseDate(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
