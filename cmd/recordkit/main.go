// Package main implements the recordkit binary.
// It loads a collection, runs the configured reshaping steps and prints the
// result as JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/recordkit/recordkit/internal/config"
	"github.com/recordkit/recordkit/internal/logging"
	"github.com/recordkit/recordkit/internal/pipeline"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "recordkit: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	var (
		configFile  string
		sourcePath  string
		format      string
		outputPath  string
		logLevel    string
		showSchema  bool
		showVersion bool
	)

	flag.StringVar(&configFile, "config", "", "Path to pipeline configuration file (YAML or JSON)")
	flag.StringVar(&sourcePath, "source", "", "Source path, overriding the configuration")
	flag.StringVar(&format, "format", "", "Source format, overriding the path extension")
	flag.StringVar(&outputPath, "output", "", "Output file; defaults to stdout")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showSchema, "schema", false, "Print the configuration JSON schema and exit")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "recordkit - reshape record collections\n\n")
		fmt.Fprintf(os.Stderr, "Usage: recordkit [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  recordkit -config pipeline.yaml\n")
		fmt.Fprintf(os.Stderr, "  recordkit -config pipeline.yaml -source exports/people.csv.sz\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  RECORDKIT_SOURCE_PATH     Source path\n")
		fmt.Fprintf(os.Stderr, "  RECORDKIT_SOURCE_FORMAT   Source format\n")
		fmt.Fprintf(os.Stderr, "  RECORDKIT_STORAGE_TYPE    Storage type (local, s3)\n")
		fmt.Fprintf(os.Stderr, "  RECORDKIT_S3_*            S3 bucket, region and endpoint\n")
		fmt.Fprintf(os.Stderr, "  RECORDKIT_OUTPUT_INDENT   JSON indentation\n")
	}

	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if showVersion {
		fmt.Printf("recordkit version %s (commit: %s)\n", version, commit)
		return nil
	}
	if showSchema {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(os.Stdout, "%s\n", data)
		return err
	}

	if _, err := logging.Setup(logLevel); err != nil {
		return err
	}

	cfg, err := loadConfig(configFile, sourcePath, format, outputPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	for _, s := range p.Stats().GetSlowest(3) {
		slog.DebugContext(ctx, "Step stats", "kind", s.Kind, "runs", s.Runs, "mean", s.Mean())
	}

	if cfg.Output.Path != "" {
		return pipeline.WriteFile(cfg.Output.Path, res.Output, cfg.Output.Indent)
	}
	return pipeline.WriteJSON(os.Stdout, res.Output, cfg.Output.Indent)
}

// loadConfig loads configuration from file, environment, and command line flags.
func loadConfig(configFile, sourcePath, format, outputPath string) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	config.LoadFromEnv(cfg)

	// Command line flags have the highest priority.
	if sourcePath != "" {
		cfg.Source.Path = sourcePath
	}
	if format != "" {
		cfg.Source.Format = format
	}
	if outputPath != "" {
		cfg.Output.Path = outputPath
	}
	return cfg, nil
}
