package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	apperrors "moviestats/internal/errors"
)

// CatalogMetrics holds the catalog instruments
type CatalogMetrics struct {
	RecordsLoaded metric.Int64Counter
	LoadErrors    metric.Int64Counter
	LoadDuration  metric.Float64Histogram
	Reports       metric.Int64Counter
}

// NewCatalogMetrics creates the catalog instruments on meter.
// A nil meter yields no-op instruments.
func NewCatalogMetrics(meter metric.Meter) (*CatalogMetrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter(MeterName)
	}

	recordsLoaded, err := meter.Int64Counter(
		"catalog_records_loaded",
		metric.WithDescription("Total number of movie records loaded"),
	)
	if err != nil {
		return nil, err
	}

	loadErrors, err := meter.Int64Counter(
		"catalog_load_errors",
		metric.WithDescription("Total number of failed catalog loads"),
	)
	if err != nil {
		return nil, err
	}

	loadDuration, err := meter.Float64Histogram(
		"catalog_load_duration",
		metric.WithDescription("Catalog load duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	reports, err := meter.Int64Counter(
		"catalog_reports",
		metric.WithDescription("Total number of computed reports"),
	)
	if err != nil {
		return nil, err
	}

	return &CatalogMetrics{
		RecordsLoaded: recordsLoaded,
		LoadErrors:    loadErrors,
		LoadDuration:  loadDuration,
		Reports:       reports,
	}, nil
}

// RecordLoad records the outcome of one catalog load
func (m *CatalogMetrics) RecordLoad(ctx context.Context, format string, records int, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String("format", format)}
	status := "success"
	if err != nil {
		status = "failure"
		errAttrs := append(attrs, attribute.String("error.type", string(apperrors.TypeOf(err))))
		m.LoadErrors.Add(ctx, 1, metric.WithAttributes(errAttrs...))
	} else {
		m.RecordsLoaded.Add(ctx, int64(records), metric.WithAttributes(attrs...))
	}

	m.LoadDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(append(attrs, attribute.String("status", status))...))
}

// RecordReport counts one computed report
func (m *CatalogMetrics) RecordReport(ctx context.Context, report string) {
	if m == nil {
		return
	}
	m.Reports.Add(ctx, 1, metric.WithAttributes(attribute.String("report", report)))
}
