package dataprocessing

import (
	"sort"

	"moviestats/pkg/contracts/domain"
)

// ProfitLeader returns the title and profit of the most profitable movie that
// lists genre among its genres, or of all movies when genre is nil.
//
// The running maximum starts at zero and only a strictly greater profit
// replaces it: ties keep the earlier movie, and a selection without any
// positive profit yields the zero ProfitLeader.
func ProfitLeader(movies []domain.Movie, genre *string) domain.ProfitLeader {
	var leader domain.ProfitLeader

	for _, m := range movies {
		if genre != nil && !m.HasGenre(*genre) {
			continue
		}
		if profit := m.Profit(); profit > leader.Profit {
			leader = domain.ProfitLeader{Title: m.Title, Profit: profit}
		}
	}

	return leader
}

// AverageBudgetByGenre returns the mean budget of the movies listing each genre.
// A movie with several genres counts its whole budget towards every one of them.
func AverageBudgetByGenre(movies []domain.Movie) map[string]float64 {
	sums := make(map[string]int64)
	counts := make(map[string]int)

	for _, m := range movies {
		for _, g := range m.Genres {
			sums[g] += m.Budget
			counts[g]++
		}
	}

	averages := make(map[string]float64, len(sums))
	for g, sum := range sums {
		averages[g] = float64(sum) / float64(counts[g])
	}
	return averages
}

// MovieCountByActor returns, per cast member, the number of movies released
// strictly inside years that they appear in.
func MovieCountByActor(movies []domain.Movie, years domain.YearRange) map[string]int {
	_, counts := countActors(movies, years)
	return counts
}

// TopActors returns the n cast members with the most movies released strictly
// inside years, most frequent first. Equal counts keep the order in which the
// actors were first seen in the catalog. n <= 0 yields an empty slice.
func TopActors(movies []domain.Movie, n int, years domain.YearRange) []string {
	if n <= 0 {
		return []string{}
	}

	names, counts := countActors(movies, years)
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})

	if n < len(names) {
		names = names[:n]
	}
	return names
}

// countActors tallies cast appearances and also returns the actors in
// first-sighting order, which maps alone cannot provide.
func countActors(movies []domain.Movie, years domain.YearRange) ([]string, map[string]int) {
	names := []string{}
	counts := make(map[string]int)

	for _, m := range movies {
		if !years.Contains(m.ReleaseYear()) {
			continue
		}
		for _, actor := range m.Cast {
			if _, seen := counts[actor]; !seen {
				names = append(names, actor)
			}
			counts[actor]++
		}
	}

	return names, counts
}
