package config

const (
	AppName = "moviestats"

	// EnvPrefix namespaces every environment variable read by Load
	EnvPrefix = "MOVIESTATS"

	DefaultCatalogFile = "./data/peliculas.csv"
	DefaultLogFile     = "logs/moviestats.log"
	DefaultLogLevel    = "info"
	DefaultLogOutput   = "console"

	TraceExporterStdout = "stdout"
	TraceExporterNone   = "none"
)
