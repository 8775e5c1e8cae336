// Package exporter writes report results to files.
//
// A report is first turned into a Table (header plus rows of typed cells),
// then written either as CSV with a UTF-8 BOM, so Excel detects the
// encoding, or as an .xlsx workbook:
//
//	table := exporter.TopActorsTable(top, counts)
//	err := exporter.Export("reports/top_actors.xlsx", table, logger)
//
// Rows built from maps are sorted, so repeated exports are byte-identical.
package exporter
