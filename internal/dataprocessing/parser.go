package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "moviestats/internal/errors"
	"moviestats/pkg/contracts/domain"
)

// Column positions of a catalog row
const (
	colReleaseDate = iota
	colTitle
	colDirector
	colGenres
	colDuration
	colBudget
	colRevenue
	colCast

	// FieldCount is the number of fields every catalog row must have
	FieldCount
)

const (
	// Delimiter separates the fields of a catalog row
	Delimiter = ';'

	// ReleaseDateLayout accepts DD/MM/YYYY, with or without zero padding
	ReleaseDateLayout = "2/1/2006"

	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCatalog loads a catalog file, choosing the reader from the file extension.
// .xlsx and .xlsm files go through LoadWorkbook, everything else is read as delimited text.
func LoadCatalog(path string) ([]domain.Movie, error) {
	if CatalogFormat(path) == FormatXLSX {
		return LoadWorkbook(path)
	}
	return LoadMovies(path)
}

// CatalogFormat reports which reader LoadCatalog uses for path
func CatalogFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// LoadMovies reads a semicolon-delimited catalog file. The first line is a header
// and is discarded. Any malformed row aborts the whole load.
func LoadMovies(path string) ([]domain.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFileAccessError(path, err)
	}
	defer f.Close()

	movies, err := ParseMovies(f)
	if err != nil {
		var appErr *apperrors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}

	slog.Debug("Catalog loaded",
		slog.String("path", path),
		slog.Int("records", len(movies)))

	return movies, nil
}

// ParseMovies parses catalog rows from r, header line first.
// Blank lines are rows with no fields and fail the load like any other short row.
func ParseMovies(r io.Reader) ([]domain.Movie, error) {
	counter := &lineCounter{r: stripBOM(r)}
	reader := csv.NewReader(counter)
	reader.Comma = Delimiter
	reader.FieldsPerRecord = -1 // field count is checked per row
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, apperrors.NewParsingError("catalog has no header line", nil)
		}
		return nil, readError(err)
	}
	if line, _ := reader.FieldPos(0); line != 1 {
		return nil, blankLineError(1)
	}

	// encoding/csv drops empty lines, so gaps between records are blank lines
	next := recordEnd(reader, header) + 1

	movies := []domain.Movie{}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, readError(err)
		}

		line, _ := reader.FieldPos(0)
		if line > next {
			return nil, blankLineError(next)
		}
		movie, err := parseRecord(fields, line)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
		next = recordEnd(reader, fields) + 1
	}

	if counter.lines() >= next {
		return nil, blankLineError(next)
	}

	return movies, nil
}

// recordEnd returns the last input line of the record just read
func recordEnd(reader *csv.Reader, fields []string) int {
	last := len(fields) - 1
	line, _ := reader.FieldPos(last)
	return line + strings.Count(fields[last], "\n")
}

func blankLineError(line int) error {
	return apperrors.NewRowError(line, "",
		fmt.Sprintf("expected %d fields, got 0", FieldCount), nil)
}

// lineCounter counts the lines read through it. A final line without a
// trailing newline still counts.
type lineCounter struct {
	r        io.Reader
	newlines int
	last     byte
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.newlines += bytes.Count(p[:n], []byte{'\n'})
		c.last = p[n-1]
	}
	return n, err
}

func (c *lineCounter) lines() int {
	if c.last != 0 && c.last != '\n' {
		return c.newlines + 1
	}
	return c.newlines
}

// parseRecord converts the fields of one row into a Movie. line is 1-based and
// only used for error context.
func parseRecord(fields []string, line int) (domain.Movie, error) {
	if len(fields) != FieldCount {
		return domain.Movie{}, apperrors.NewRowError(line, "",
			fmt.Sprintf("expected %d fields, got %d", FieldCount, len(fields)), nil)
	}

	releaseDate, err := parseReleaseDate(fields[colReleaseDate])
	if err != nil {
		return domain.Movie{}, apperrors.NewRowError(line, "release_date",
			fmt.Sprintf("invalid release date %q", fields[colReleaseDate]), err)
	}

	budget, err := parseAmount(fields[colBudget])
	if err != nil {
		return domain.Movie{}, apperrors.NewRowError(line, "budget",
			fmt.Sprintf("budget %q is not an integer", fields[colBudget]), err)
	}

	revenue, err := parseAmount(fields[colRevenue])
	if err != nil {
		return domain.Movie{}, apperrors.NewRowError(line, "revenue",
			fmt.Sprintf("revenue %q is not an integer", fields[colRevenue]), err)
	}

	return domain.Movie{
		ReleaseDate: releaseDate,
		Title:       fields[colTitle],
		Director:    fields[colDirector],
		Genres:      SplitList(fields[colGenres]),
		Duration:    fields[colDuration],
		Budget:      budget,
		Revenue:     revenue,
		Cast:        SplitList(fields[colCast]),
	}, nil
}

// SplitList splits a comma-joined field, accepting ", " as a separator too.
// A blank field yields an empty slice, not a slice holding "".
func SplitList(field string) []string {
	if field == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(field, ", ", ","), ",")
}

// parseReleaseDate does not trim: surrounding spaces make the date invalid.
func parseReleaseDate(s string) (time.Time, error) {
	return time.Parse(ReleaseDateLayout, s)
}

func parseAmount(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// readError classifies an error from the csv reader: malformed input is a
// parsing error, anything else came from the underlying file.
func readError(err error) error {
	var parseErr *csv.ParseError
	if stderrors.As(err, &parseErr) {
		return apperrors.NewRowError(parseErr.Line, "", "malformed row", parseErr.Err)
	}
	return apperrors.NewAppError(apperrors.ErrTypeFileAccess, "failed to read catalog", err)
}

// stripBOM drops a leading UTF-8 byte order mark so it does not end up in the header.
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}
