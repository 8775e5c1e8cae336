// Package config provides configuration loading for moviestats.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//	1. Default values (Default)
//	2. A YAML file (moviestats.yaml or configs/moviestats.yaml, or an explicit path)
//	3. Environment variables prefixed with MOVIESTATS_
//
// # Environment Variables
//
//	MOVIESTATS_CATALOG_FILE=./data/peliculas.csv
//	MOVIESTATS_LOGGING_LEVEL=debug
//	MOVIESTATS_LOGGING_OUTPUT=both
//	MOVIESTATS_TELEMETRY_TRACE_EXPORTER=stdout
//	MOVIESTATS_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/moviestats.prom
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Command line flags in cmd/moviestats override whatever Load returns.
package config
