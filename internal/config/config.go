// Package config provides the pipeline configuration for recordkit.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	rkerrors "github.com/recordkit/recordkit/pkg/errors"
)

// SourceKind selects where the input collection is loaded from.
type SourceKind string

const (
	SourceFile   SourceKind = "file"
	SourceObject SourceKind = "object"
	SourceSQL    SourceKind = "sql"
	SourceBolt   SourceKind = "bolt"
)

// Config holds a complete pipeline: where records come from, how they are
// reshaped and how the result is written.
type Config struct {
	// Source describes the input collection
	Source SourceConfig `json:"source" yaml:"source"`

	// Storage configures the object store used by object sources
	Storage StorageConfig `json:"storage,omitempty" yaml:"storage"`

	// Steps are applied in order to the loaded collection
	Steps []Step `json:"steps,omitempty" yaml:"steps"`

	// Output configuration
	Output OutputConfig `json:"output,omitempty" yaml:"output"`
}

// SourceConfig describes the input collection.
type SourceConfig struct {
	// Kind is the source type: file, object, sql, bolt
	Kind SourceKind `json:"kind,omitempty" yaml:"kind" jsonschema:"enum=file,enum=object,enum=sql,enum=bolt,default=file"`

	// Path is the file path, object path or bolt database path
	Path string `json:"path,omitempty" yaml:"path"`

	// Format overrides the format derived from the path extension
	Format string `json:"format,omitempty" yaml:"format"`

	// Driver is the database/sql driver name (for sql kind)
	Driver string `json:"driver,omitempty" yaml:"driver"`

	// DSN is the data source name (for sql kind)
	DSN string `json:"dsn,omitempty" yaml:"dsn"`

	// Query is the SELECT statement producing the records (for sql kind)
	Query string `json:"query,omitempty" yaml:"query"`

	// Bucket is the bbolt bucket holding the records (for bolt kind)
	Bucket string `json:"bucket,omitempty" yaml:"bucket"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	// Type is the storage type: local, s3
	Type string `json:"type,omitempty" yaml:"type" jsonschema:"enum=local,enum=s3"`

	// Path is the local storage root (for local type)
	Path string `json:"path,omitempty" yaml:"path"`

	// TmpDir receives downloaded objects; empty means the system temp dir
	TmpDir string `json:"tmp_dir,omitempty" yaml:"tmp_dir"`

	// S3 configuration (for s3 type)
	S3 S3Config `json:"s3,omitempty" yaml:"s3"`
}

// S3Config holds S3 storage configuration.
type S3Config struct {
	// Bucket is the S3 bucket name
	Bucket string `json:"bucket,omitempty" yaml:"bucket"`

	// Region is the AWS region
	Region string `json:"region,omitempty" yaml:"region"`

	// Endpoint is the S3 endpoint (for S3-compatible storage)
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint"`

	// UsePathStyle forces path-style addressing
	UsePathStyle bool `json:"use_path_style,omitempty" yaml:"use_path_style"`

	// Retries enables retrying transient S3 failures; 0 makes one attempt
	Retries int `json:"retries,omitempty" yaml:"retries" jsonschema:"minimum=0,maximum=10"`
}

// OutputConfig controls how the pipeline result is written.
type OutputConfig struct {
	// Path is the output file; empty writes to stdout
	Path string `json:"path,omitempty" yaml:"path"`

	// Indent is the number of spaces used to indent JSON output; 0 is compact
	Indent int `json:"indent,omitempty" yaml:"indent" jsonschema:"minimum=0,maximum=8"`
}

// DefaultConfig returns a configuration reading a local file and writing
// indented JSON to stdout.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Kind: SourceFile,
		},
		Storage: StorageConfig{
			Type: "local",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		Output: OutputConfig{
			Indent: 2,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFile, SourceBolt:
		if c.Source.Path == "" {
			return rkerrors.InvalidInput("source.path is required for %s sources", c.Source.Kind)
		}
		if c.Source.Kind == SourceBolt && c.Source.Bucket == "" {
			return rkerrors.InvalidInput("source.bucket is required for bolt sources")
		}
	case SourceObject:
		if c.Source.Path == "" {
			return rkerrors.InvalidInput("source.path is required for object sources")
		}
		if err := c.Storage.validate(); err != nil {
			return err
		}
	case SourceSQL:
		if c.Source.Driver == "" || c.Source.DSN == "" || c.Source.Query == "" {
			return rkerrors.InvalidInput("source.driver, source.dsn and source.query are required for sql sources")
		}
	default:
		return rkerrors.InvalidInput("invalid source kind: %q (must be file, object, sql or bolt)", c.Source.Kind)
	}

	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return rkerrors.InvalidInput("output.indent must be between 0 and 8, got %d", c.Output.Indent)
	}

	for i := range c.Steps {
		if err := c.Steps[i].Validate(); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		if c.Steps[i].Kind.Terminal() && i != len(c.Steps)-1 {
			return fmt.Errorf("steps[%d]: %w", i,
				rkerrors.InvalidInput("%s must be the last step", c.Steps[i].Kind))
		}
	}
	return nil
}

func (s StorageConfig) validate() error {
	switch s.Type {
	case "local":
		if s.Path == "" {
			return rkerrors.InvalidInput("storage.path is required when storage type is local")
		}
	case "s3":
		if s.S3.Bucket == "" {
			return rkerrors.InvalidInput("storage.s3.bucket is required when storage type is s3")
		}
		if s.S3.Retries < 0 || s.S3.Retries > 10 {
			return rkerrors.InvalidInput("storage.s3.retries must be between 0 and 10, got %d", s.S3.Retries)
		}
	default:
		return rkerrors.InvalidInput("invalid storage type: %q (must be local or s3)", s.Type)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML or JSON file on top of the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	return cfg, nil
}

// LoadFromEnv applies environment overrides. Variables use the RECORDKIT_
// prefix.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("RECORDKIT_SOURCE_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("RECORDKIT_SOURCE_FORMAT"); v != "" {
		cfg.Source.Format = v
	}

	// Storage configuration
	if v := os.Getenv("RECORDKIT_STORAGE_TYPE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("RECORDKIT_S3_BUCKET"); v != "" {
		cfg.Storage.S3.Bucket = v
	}
	if v := os.Getenv("RECORDKIT_S3_REGION"); v != "" {
		cfg.Storage.S3.Region = v
	}
	if v := os.Getenv("RECORDKIT_S3_ENDPOINT"); v != "" {
		cfg.Storage.S3.Endpoint = v
	}

	if v := os.Getenv("RECORDKIT_OUTPUT_INDENT"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.Output.Indent)
	}
}
