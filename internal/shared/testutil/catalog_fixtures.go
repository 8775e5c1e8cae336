package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CatalogHeader is the header line of a catalog file
const CatalogHeader = "fecha_estreno;titulo;director;generos;duracion;presupuesto;recaudacion;reparto"

// SampleCatalogRows is a small catalog exercising every aggregation:
// a loss, a tie on profit, multi-genre rows, blank cast and boundary years.
var SampleCatalogRows = []string{
	"15/06/1999;Edge Low;Ana Diaz;Drama;110;100;50;Alice, Bob",
	"01/01/2000;Millennium;Luis Gil;Action, Drama;120;1000;5000;Alice, Carol",
	"20/03/2000;Twin Peak;Luis Gil;Action;95;500;4500;Bob, Carol",
	"10/10/2001;Edge High;Ana Diaz;Comedy, Drama;100;300;800;Alice",
	"05/05/2005;Silent;Eva Ruiz;Documentary;80;50;50;",
}

// WriteCatalogCSV writes the header plus rows to a catalog file and returns its path.
func WriteCatalogCSV(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "peliculas.csv")
	content := CatalogHeader + "\n" + strings.Join(rows, "\n")
	if len(rows) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog fixture: %v", err)
	}
	return path
}

// WriteSampleCatalog writes SampleCatalogRows and returns the path.
func WriteSampleCatalog(t *testing.T) string {
	t.Helper()
	return WriteCatalogCSV(t, SampleCatalogRows...)
}
