// Package dataprocessing loads movie catalogs and computes statistics over them.
//
// # Loading
//
// A catalog is a semicolon-delimited UTF-8 text file: one header line, then one
// row per movie with eight fields:
//
//	release_date;title;director;genres;duration;budget;revenue;cast
//	01/01/2020;Title;Dir;Action, Drama;120;1000;5000;Alice, Bob
//
// LoadMovies reads that format, LoadWorkbook reads the same columns from the
// first sheet of an .xlsx workbook, and LoadCatalog picks one by extension.
// A missing file fails with a FILE_ACCESS error; a row with the wrong field
// count (a blank line counts as zero fields), a bad date or a non-integer
// amount fails the whole load with a PARSING error carrying the line number.
//
// # Statistics
//
// The aggregators are pure functions over a loaded slice:
//
//	leader := dataprocessing.ProfitLeader(movies, nil)
//	avg := dataprocessing.AverageBudgetByGenre(movies)
//	counts := dataprocessing.MovieCountByActor(movies, domain.Years(domain.Year(1999), nil))
//	top := dataprocessing.TopActors(movies, 2, domain.YearRange{})
//
// Year bounds are exclusive on both sides.
package dataprocessing
