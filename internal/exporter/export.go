package exporter

import (
	"log/slog"
	"path/filepath"
	"strings"

	apperrors "moviestats/internal/errors"
	"moviestats/internal/validation"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FormatFor picks the export format from the file extension; anything
// other than .xlsx is written as CSV.
func FormatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// Export writes table to path, creating the directory when needed.
func Export(path string, table Table, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(filepath.Dir(path)); err != nil {
		return err
	}

	var err error
	switch FormatFor(path) {
	case FormatXLSX:
		err = NewXLSXWriter(logger).WriteTable(path, table)
	default:
		err = NewCSVWriter(logger).WriteTable(path, table, WriteOptions{BOMPrefix: true})
	}
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrTypeFileAccess, "failed to export report", err).
			WithContext("path", path).
			WithContext("report", table.Name)
	}
	return nil
}
