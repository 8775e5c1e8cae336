package exporter

import (
	"sort"

	"moviestats/pkg/contracts/domain"
)

// Table is a report ready to be written: one header and rows of
// string, int, int64 or float64 cells.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// ProfitLeaderTable holds the single profit leader row. The zero leader is
// exported as an empty title with zero profit.
func ProfitLeaderTable(leader domain.ProfitLeader) Table {
	return Table{
		Name:    "profit_leader",
		Headers: []string{"title", "profit"},
		Rows:    [][]any{{leader.Title, leader.Profit}},
	}
}

// AverageBudgetTable lists genres alphabetically with their mean budget
func AverageBudgetTable(averages map[string]float64) Table {
	genres := make([]string, 0, len(averages))
	for g := range averages {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	rows := make([][]any, 0, len(genres))
	for _, g := range genres {
		rows = append(rows, []any{g, averages[g]})
	}

	return Table{
		Name:    "average_budget",
		Headers: []string{"genre", "average_budget"},
		Rows:    rows,
	}
}

// ActorCountTable lists actors by descending movie count, then by name
func ActorCountTable(counts map[string]int) Table {
	actors := make([]string, 0, len(counts))
	for a := range counts {
		actors = append(actors, a)
	}
	sort.Slice(actors, func(i, j int) bool {
		if counts[actors[i]] != counts[actors[j]] {
			return counts[actors[i]] > counts[actors[j]]
		}
		return actors[i] < actors[j]
	})

	rows := make([][]any, 0, len(actors))
	for _, a := range actors {
		rows = append(rows, []any{a, counts[a]})
	}

	return Table{
		Name:    "actor_counts",
		Headers: []string{"actor", "movies"},
		Rows:    rows,
	}
}

// TopActorsTable keeps the ranking order of top. counts may be nil, in which
// case the movies column is left out.
func TopActorsTable(top []string, counts map[string]int) Table {
	headers := []string{"rank", "actor"}
	if counts != nil {
		headers = append(headers, "movies")
	}

	rows := make([][]any, 0, len(top))
	for i, a := range top {
		row := []any{i + 1, a}
		if counts != nil {
			row = append(row, counts[a])
		}
		rows = append(rows, row)
	}

	return Table{
		Name:    "top_actors",
		Headers: headers,
		Rows:    rows,
	}
}
