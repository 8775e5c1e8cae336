package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"moviestats/internal/dataprocessing"
	"moviestats/internal/infrastructure"
	"moviestats/internal/validation"
	"moviestats/pkg/contracts/domain"
)

// Report names used for spans, logs and the catalog_reports counter
const (
	ReportProfitLeader  = "profit_leader"
	ReportAverageBudget = "average_budget"
	ReportActorCounts   = "actor_counts"
	ReportTopActors     = "top_actors"
)

// CatalogService holds a loaded catalog and runs reports over it
type CatalogService struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.CatalogMetrics
	validator *validation.FileValidator

	path   string
	movies []domain.Movie
}

// NewCatalogService creates a catalog service. Any argument may be nil.
func NewCatalogService(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.CatalogMetrics) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(infrastructure.ServiceName)
	}

	logger = infrastructure.WithComponent(logger, "catalog_service")
	return &CatalogService{
		logger:    logger,
		tracer:    tracer,
		metrics:   metrics,
		validator: validation.NewFileValidator(logger),
		movies:    []domain.Movie{},
	}
}

// Load reads the catalog at path, replacing any previously loaded one.
// On failure the previous catalog is kept.
func (s *CatalogService) Load(ctx context.Context, path string) error {
	format := dataprocessing.CatalogFormat(path)

	ctx, span := s.tracer.Start(ctx, "catalog.load",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("catalog.path", path),
			attribute.String("catalog.format", format),
		),
	)
	defer span.End()

	start := time.Now()
	movies, err := s.load(path)
	duration := time.Since(start)

	s.metrics.RecordLoad(ctx, format, len(movies), duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "Catalog load failed",
			slog.String("path", path),
			slog.String("format", format),
			slog.String("error", err.Error()))
		return err
	}

	s.path = path
	s.movies = movies

	span.SetAttributes(attribute.Int("catalog.records", len(movies)))
	span.SetStatus(codes.Ok, "")

	s.logger.InfoContext(ctx, "Catalog loaded",
		slog.String("path", path),
		slog.String("format", format),
		slog.Int("records", len(movies)),
		slog.Duration("duration", duration))

	return nil
}

func (s *CatalogService) load(path string) ([]domain.Movie, error) {
	if err := s.validator.ValidateCatalogFile(path); err != nil {
		return nil, err
	}
	return dataprocessing.LoadCatalog(path)
}

// Path returns the path of the loaded catalog, or "" before a successful Load
func (s *CatalogService) Path() string {
	return s.path
}

// Movies returns the loaded records in file order
func (s *CatalogService) Movies() []domain.Movie {
	return s.movies
}

// ProfitLeader reports the most profitable movie, optionally within one genre
func (s *CatalogService) ProfitLeader(ctx context.Context, genre *string) domain.ProfitLeader {
	attrs := []attribute.KeyValue{}
	if genre != nil {
		attrs = append(attrs, attribute.String("report.genre", *genre))
	}
	ctx, span := s.startReport(ctx, ReportProfitLeader, attrs...)
	defer span.End()

	leader := dataprocessing.ProfitLeader(s.movies, genre)

	s.finishReport(ctx, ReportProfitLeader,
		slog.String("title", leader.Title),
		slog.Int64("profit", leader.Profit))
	return leader
}

// AverageBudgetByGenre reports the mean budget per genre
func (s *CatalogService) AverageBudgetByGenre(ctx context.Context) map[string]float64 {
	ctx, span := s.startReport(ctx, ReportAverageBudget)
	defer span.End()

	averages := dataprocessing.AverageBudgetByGenre(s.movies)

	s.finishReport(ctx, ReportAverageBudget, slog.Int("genres", len(averages)))
	return averages
}

// MovieCountByActor reports per-actor movie counts inside years
func (s *CatalogService) MovieCountByActor(ctx context.Context, years domain.YearRange) map[string]int {
	ctx, span := s.startReport(ctx, ReportActorCounts, yearAttributes(years)...)
	defer span.End()

	counts := dataprocessing.MovieCountByActor(s.movies, years)

	s.finishReport(ctx, ReportActorCounts, slog.Int("actors", len(counts)))
	return counts
}

// TopActors reports the n most frequent actors inside years
func (s *CatalogService) TopActors(ctx context.Context, n int, years domain.YearRange) []string {
	attrs := append(yearAttributes(years), attribute.Int("report.n", n))
	ctx, span := s.startReport(ctx, ReportTopActors, attrs...)
	defer span.End()

	top := dataprocessing.TopActors(s.movies, n, years)

	s.finishReport(ctx, ReportTopActors,
		slog.Int("n", n),
		slog.Int("returned", len(top)))
	return top
}

func (s *CatalogService) startReport(ctx context.Context, report string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("report.name", report),
		attribute.Int("catalog.records", len(s.movies)),
	)
	return s.tracer.Start(ctx, "catalog.report."+report,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func (s *CatalogService) finishReport(ctx context.Context, report string, attrs ...any) {
	s.metrics.RecordReport(ctx, report)
	s.logger.DebugContext(ctx, "Report computed",
		append([]any{slog.String("report", report)}, attrs...)...)
}

func yearAttributes(years domain.YearRange) []attribute.KeyValue {
	attrs := []attribute.KeyValue{}
	if years.Start != nil {
		attrs = append(attrs, attribute.Int("report.year_start", *years.Start))
	}
	if years.End != nil {
		attrs = append(attrs, attribute.Int("report.year_end", *years.End))
	}
	return attrs
}
