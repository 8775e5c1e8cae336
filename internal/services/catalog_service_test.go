package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "moviestats/internal/errors"
	"moviestats/internal/infrastructure"
	"moviestats/internal/shared/testutil"
	"moviestats/pkg/contracts/domain"
)

type serviceFixture struct {
	svc       *CatalogService
	logs      *testutil.BufferedSlogHandler
	spans     *tracetest.SpanRecorder
	providers *infrastructure.OTelProviders
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	logger, logs := testutil.NewTestLogger(t)
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })

	metrics, err := infrastructure.NewCatalogMetrics(providers.Meter)
	require.NoError(t, err)

	return &serviceFixture{
		svc:       NewCatalogService(logger, tp.Tracer("test"), metrics),
		logs:      logs,
		spans:     spans,
		providers: providers,
	}
}

func (f *serviceFixture) spanNames() []string {
	var names []string
	for _, s := range f.spans.Ended() {
		names = append(names, s.Name())
	}
	return names
}

func (f *serviceFixture) counter(t *testing.T, name string) float64 {
	t.Helper()

	families, err := f.providers.Registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestCatalogService_Load(t *testing.T) {
	f := newServiceFixture(t)
	path := testutil.WriteSampleCatalog(t)

	require.NoError(t, f.svc.Load(context.Background(), path))

	assert.Equal(t, path, f.svc.Path())
	assert.Len(t, f.svc.Movies(), len(testutil.SampleCatalogRows))
	assert.Equal(t, []string{"catalog.load"}, f.spanNames())
	assert.Equal(t, float64(len(testutil.SampleCatalogRows)), f.counter(t, "catalog_records_loaded_total"))

	testutil.AssertLogContains(t, f.logs, slog.LevelInfo, "Catalog loaded")
	testutil.AssertNoErrors(t, f.logs)
	assert.True(t, f.logs.ContainsAttr("component", "catalog_service"))
}

func TestCatalogService_LoadFailureKeepsCatalog(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	good := testutil.WriteSampleCatalog(t)
	require.NoError(t, f.svc.Load(ctx, good))

	err := f.svc.Load(ctx, filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.IsFileAccess(err))

	assert.Equal(t, good, f.svc.Path())
	assert.Len(t, f.svc.Movies(), len(testutil.SampleCatalogRows))
	assert.Equal(t, 1.0, f.counter(t, "catalog_load_errors_total"))
	testutil.AssertLogContains(t, f.logs, slog.LevelError, "Catalog load failed")

	ended := f.spans.Ended()
	require.Len(t, ended, 2)
	assert.NotEmpty(t, ended[1].Events(), "failed load should record the error on its span")
}

func TestCatalogService_Reports(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.Load(ctx, testutil.WriteSampleCatalog(t)))

	drama := "Drama"
	assert.Equal(t, domain.ProfitLeader{Title: "Millennium", Profit: 4000}, f.svc.ProfitLeader(ctx, nil))
	assert.Equal(t, domain.ProfitLeader{Title: "Millennium", Profit: 4000}, f.svc.ProfitLeader(ctx, &drama))

	averages := f.svc.AverageBudgetByGenre(ctx)
	assert.InDelta(t, 750.0, averages["Action"], 1e-9)

	window := domain.Years(domain.Year(1999), domain.Year(2001))
	assert.Equal(t, map[string]int{"Alice": 1, "Bob": 1, "Carol": 2}, f.svc.MovieCountByActor(ctx, window))
	assert.Equal(t, []string{"Alice", "Bob"}, f.svc.TopActors(ctx, 2, domain.YearRange{}))

	assert.Equal(t, []string{
		"catalog.load",
		"catalog.report." + ReportProfitLeader,
		"catalog.report." + ReportProfitLeader,
		"catalog.report." + ReportAverageBudget,
		"catalog.report." + ReportActorCounts,
		"catalog.report." + ReportTopActors,
	}, f.spanNames())
	assert.Equal(t, 5.0, f.counter(t, "catalog_reports_total"))
	assert.True(t, f.logs.ContainsAttr("report", ReportTopActors))
}

func TestCatalogService_ReportsBeforeLoad(t *testing.T) {
	svc := NewCatalogService(nil, nil, nil)
	ctx := context.Background()

	assert.Equal(t, domain.ProfitLeader{}, svc.ProfitLeader(ctx, nil))
	assert.Empty(t, svc.AverageBudgetByGenre(ctx))
	assert.Empty(t, svc.MovieCountByActor(ctx, domain.YearRange{}))
	assert.Equal(t, []string{}, svc.TopActors(ctx, 2, domain.YearRange{}))
	assert.Empty(t, svc.Path())
}

func TestCatalogService_LoadRejectsLegacyWorkbook(t *testing.T) {
	f := newServiceFixture(t)
	path := filepath.Join(t.TempDir(), "peliculas.xls")
	require.NoError(t, os.WriteFile(path, []byte("legacy"), 0644))

	err := f.svc.Load(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeValidation, apperrors.TypeOf(err))
	assert.Empty(t, f.svc.Movies())
}
