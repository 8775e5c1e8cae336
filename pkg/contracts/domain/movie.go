package domain

import (
	"time"
)

// Movie is one catalog entry as read from the catalog file.
// Values are built once by the loader and never mutated afterwards.
type Movie struct {
	ReleaseDate time.Time `json:"release_date"`
	Title       string    `json:"title"`
	Director    string    `json:"director"`
	Genres      []string  `json:"genres"`
	// Duration is kept as the raw source text; nothing does arithmetic on it.
	Duration string   `json:"duration"`
	Budget   int64    `json:"budget"`
	Revenue  int64    `json:"revenue"`
	Cast     []string `json:"cast"`
}

// Profit returns revenue minus budget. Negative values are losses.
func (m Movie) Profit() int64 {
	return m.Revenue - m.Budget
}

// ReleaseYear returns the calendar year of the release date
func (m Movie) ReleaseYear() int {
	return m.ReleaseDate.Year()
}

// HasGenre reports whether genre is one of the movie's genres (exact match).
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// ProfitLeader is the title and profit of the most profitable movie in a selection.
// The zero value means no movie qualified.
type ProfitLeader struct {
	Title  string `json:"title"`
	Profit int64  `json:"profit"`
}

// YearRange bounds a selection by release year. A nil bound is unbounded on that side.
//
// Both bounds are exclusive: a movie released in Start or End is not selected.
type YearRange struct {
	Start *int `json:"start,omitempty"`
	End   *int `json:"end,omitempty"`
}

// Years builds a YearRange from optional bounds.
func Years(start, end *int) YearRange {
	return YearRange{Start: start, End: end}
}

// Contains reports whether year falls strictly inside the range.
func (r YearRange) Contains(year int) bool {
	if r.End != nil && year >= *r.End {
		return false
	}
	if r.Start != nil && year <= *r.Start {
		return false
	}
	return true
}

// Year returns a pointer to y, for building optional bounds inline.
func Year(y int) *int {
	return &y
}
