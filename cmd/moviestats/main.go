package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"moviestats/internal/config"
	"moviestats/internal/dataprocessing"
	apperrors "moviestats/internal/errors"
	"moviestats/internal/exporter"
	"moviestats/internal/infrastructure"
	"moviestats/internal/services"
	"moviestats/pkg/contracts"
	"moviestats/pkg/contracts/domain"
)

const (
	reportTopActors = "top-actors"
	reportProfit    = "profit"
	reportBudget    = "budget"
	reportActors    = "actors"
)

// options holds the parsed command line. Pointer fields are nil when the flag was not given.
type options struct {
	configFile string
	file       string
	out        string
	report     string
	genre      *string
	from       *int
	to         *int
	n          int
	version    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one report and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "moviestats: %v\n", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize telemetry", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "moviestats: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	metrics, err := infrastructure.NewCatalogMetrics(providers.Meter)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create metrics", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "moviestats: %v\n", err)
		return 1
	}

	logger.InfoContext(ctx, "Starting moviestats",
		slog.String("version", contracts.Version),
		slog.String("config", cfg.String()),
		slog.String("report", opts.report))

	svc := services.NewCatalogService(logger, providers.Tracer, metrics)
	code := 0
	if err := svc.Load(ctx, cfg.Catalog.File); err != nil {
		fmt.Fprintf(stderr, "moviestats: %v\n", err)
		code = 1
	} else {
		table := printReport(ctx, stdout, svc, opts)
		if opts.out != "" {
			if err := exporter.Export(opts.out, table, logger); err != nil {
				fmt.Fprintf(stderr, "moviestats: %v\n", err)
				code = 1
			}
		}
	}

	if cfg.Telemetry.MetricsFile != "" {
		if err := providers.WriteMetricsFile(cfg.Telemetry.MetricsFile); err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "Failed to write metrics file",
				slog.String("path", cfg.Telemetry.MetricsFile))
		}
	}

	return code
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("moviestats", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configFile, "config", "", "config file (defaults to moviestats.yaml or configs/moviestats.yaml)")
	fs.StringVar(&opts.file, "file", "", "catalog file, .csv or .xlsx (overrides the configured catalog)")
	fs.StringVar(&opts.out, "out", "", "also write the report to this file, .csv or .xlsx")
	fs.StringVar(&opts.report, "report", reportTopActors, "top-actors | profit | budget | actors")
	genre := fs.String("genre", "", "restrict the profit report to one genre")
	from := fs.Int("from", 0, "only count movies released after this year")
	to := fs.Int("to", 0, "only count movies released before this year")
	fs.IntVar(&opts.n, "n", 2, "number of actors in the top-actors report")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "genre":
			opts.genre = genre
		case "from":
			opts.from = from
		case "to":
			opts.to = to
		}
	})

	switch opts.report {
	case reportTopActors, reportProfit, reportBudget, reportActors:
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown report %q", opts.report), nil)
	}

	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configFile != "" {
		cfg, err = config.LoadFile(opts.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.file != "" {
		cfg.Catalog.File = opts.file
	}
	return cfg, nil
}

// printReport prints the selected report to w and returns it as a table for export.
func printReport(ctx context.Context, w io.Writer, svc *services.CatalogService, opts *options) exporter.Table {
	years := domain.Years(opts.from, opts.to)

	switch opts.report {
	case reportProfit:
		leader := svc.ProfitLeader(ctx, opts.genre)
		fmt.Fprintln(w, leader.Title, leader.Profit)
		return exporter.ProfitLeaderTable(leader)
	case reportBudget:
		averages := svc.AverageBudgetByGenre(ctx)
		fmt.Fprintln(w, averages)
		return exporter.AverageBudgetTable(averages)
	case reportActors:
		counts := svc.MovieCountByActor(ctx, years)
		fmt.Fprintln(w, counts)
		return exporter.ActorCountTable(counts)
	default:
		top := svc.TopActors(ctx, opts.n, years)
		fmt.Fprintln(w, top)
		// export-only column, not counted as a report
		var counts map[string]int
		if opts.out != "" {
			counts = dataprocessing.MovieCountByActor(svc.Movies(), years)
		}
		return exporter.TopActorsTable(top, counts)
	}
}
