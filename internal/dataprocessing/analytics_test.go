package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviestats/internal/shared/testutil"
	"moviestats/pkg/contracts/domain"
)

func movie(title string, year int, budget, revenue int64, genres, cast []string) domain.Movie {
	return domain.Movie{
		ReleaseDate: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC),
		Title:       title,
		Genres:      genres,
		Budget:      budget,
		Revenue:     revenue,
		Cast:        cast,
	}
}

func sampleMovies(t *testing.T) []domain.Movie {
	t.Helper()
	movies, err := LoadMovies(testutil.WriteSampleCatalog(t))
	require.NoError(t, err)
	return movies
}

func genre(g string) *string { return &g }

func TestProfitLeader(t *testing.T) {
	movies := sampleMovies(t)

	tests := []struct {
		name  string
		genre *string
		want  domain.ProfitLeader
	}{
		{name: "all genres, first of a tie wins", genre: nil, want: domain.ProfitLeader{Title: "Millennium", Profit: 4000}},
		{name: "action", genre: genre("Action"), want: domain.ProfitLeader{Title: "Millennium", Profit: 4000}},
		{name: "comedy", genre: genre("Comedy"), want: domain.ProfitLeader{Title: "Edge High", Profit: 500}},
		{name: "only break-even", genre: genre("Documentary"), want: domain.ProfitLeader{}},
		{name: "unknown genre", genre: genre("Horror"), want: domain.ProfitLeader{}},
		{name: "genre match is exact", genre: genre("drama"), want: domain.ProfitLeader{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProfitLeader(movies, tt.genre))
		})
	}
}

func TestProfitLeader_Ordering(t *testing.T) {
	movies := []domain.Movie{
		movie("loss", 2000, 200, 100, []string{"Drama"}, nil),
		movie("even", 2000, 100, 100, []string{"Drama"}, nil),
		movie("first", 2000, 100, 600, []string{"Drama"}, nil),
		movie("second", 2000, 100, 600, []string{"Drama"}, nil),
	}
	assert.Equal(t, domain.ProfitLeader{Title: "first", Profit: 500}, ProfitLeader(movies, nil))

	losses := []domain.Movie{
		movie("a", 2000, 200, 100, nil, nil),
		movie("b", 2000, 100, 100, nil, nil),
	}
	assert.Equal(t, domain.ProfitLeader{}, ProfitLeader(losses, nil))
	assert.Equal(t, domain.ProfitLeader{}, ProfitLeader(nil, nil))
}

func TestAverageBudgetByGenre(t *testing.T) {
	averages := AverageBudgetByGenre(sampleMovies(t))

	require.Len(t, averages, 4)
	assert.InDelta(t, 1400.0/3.0, averages["Drama"], 1e-9)
	assert.InDelta(t, 750.0, averages["Action"], 1e-9)
	assert.InDelta(t, 300.0, averages["Comedy"], 1e-9)
	assert.InDelta(t, 50.0, averages["Documentary"], 1e-9)
}

func TestAverageBudgetByGenre_Cases(t *testing.T) {
	t.Run("two movies one genre", func(t *testing.T) {
		movies := []domain.Movie{
			movie("a", 2000, 100, 0, []string{"Drama"}, nil),
			movie("b", 2000, 300, 0, []string{"Drama"}, nil),
		}
		assert.Equal(t, map[string]float64{"Drama": 200}, AverageBudgetByGenre(movies))
	})

	t.Run("full budget counts for every genre", func(t *testing.T) {
		movies := []domain.Movie{
			movie("a", 2000, 900, 0, []string{"Action", "Drama"}, nil),
		}
		assert.Equal(t, map[string]float64{"Action": 900, "Drama": 900}, AverageBudgetByGenre(movies))
	})

	t.Run("no genres", func(t *testing.T) {
		movies := []domain.Movie{movie("a", 2000, 900, 0, []string{}, nil)}
		averages := AverageBudgetByGenre(movies)
		assert.NotNil(t, averages)
		assert.Empty(t, averages)
	})
}

func TestMovieCountByActor(t *testing.T) {
	movies := sampleMovies(t)

	tests := []struct {
		name  string
		years domain.YearRange
		want  map[string]int
	}{
		{
			name:  "unbounded",
			years: domain.YearRange{},
			want:  map[string]int{"Alice": 3, "Bob": 2, "Carol": 2},
		},
		{
			name:  "both bounds exclusive",
			years: domain.Years(domain.Year(1999), domain.Year(2001)),
			want:  map[string]int{"Alice": 1, "Bob": 1, "Carol": 2},
		},
		{
			name:  "start only",
			years: domain.Years(domain.Year(1999), nil),
			want:  map[string]int{"Alice": 2, "Bob": 1, "Carol": 2},
		},
		{
			name:  "end only",
			years: domain.Years(nil, domain.Year(2001)),
			want:  map[string]int{"Alice": 2, "Bob": 2, "Carol": 2},
		},
		{
			name:  "empty window",
			years: domain.Years(domain.Year(2000), domain.Year(2001)),
			want:  map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MovieCountByActor(movies, tt.years))
		})
	}
}

func TestMovieCountByActor_BoundaryYears(t *testing.T) {
	movies := []domain.Movie{
		movie("low", 1999, 0, 0, nil, []string{"A"}),
		movie("mid", 2000, 0, 0, nil, []string{"A"}),
		movie("high", 2001, 0, 0, nil, []string{"A"}),
	}
	counts := MovieCountByActor(movies, domain.Years(domain.Year(1999), domain.Year(2001)))
	assert.Equal(t, map[string]int{"A": 1}, counts)
}

func TestTopActors(t *testing.T) {
	movies := sampleMovies(t)

	tests := []struct {
		name  string
		n     int
		years domain.YearRange
		want  []string
	}{
		{name: "top two, ties in first-seen order", n: 2, want: []string{"Alice", "Bob"}},
		{name: "n larger than cast", n: 10, want: []string{"Alice", "Bob", "Carol"}},
		{name: "zero", n: 0, want: []string{}},
		{name: "negative", n: -1, want: []string{}},
		{name: "bounded", n: 1, years: domain.Years(domain.Year(1999), domain.Year(2001)), want: []string{"Carol"}},
		{name: "empty window", n: 3, years: domain.Years(domain.Year(2010), nil), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopActors(movies, tt.n, tt.years))
		})
	}
}

func TestTopActors_MatchesCounts(t *testing.T) {
	movies := []domain.Movie{
		movie("1", 2000, 0, 0, nil, []string{"A", "B", "C"}),
		movie("2", 2000, 0, 0, nil, []string{"A", "B"}),
		movie("3", 2000, 0, 0, nil, []string{"B", "A"}),
	}

	top := TopActors(movies, 2, domain.YearRange{})
	assert.ElementsMatch(t, []string{"A", "B"}, top)

	counts := MovieCountByActor(movies, domain.YearRange{})
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, counts[top[i-1]], counts[top[i]])
	}
}
