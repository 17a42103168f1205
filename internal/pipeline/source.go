package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/recordkit/recordkit/internal/config"
	"github.com/recordkit/recordkit/internal/storage"
	"github.com/recordkit/recordkit/pkg/source"
)

// openSource builds the configured source. The returned func releases any
// resources the source holds.
func (p *Pipeline) openSource(ctx context.Context) (source.Source, func(), error) {
	sc := p.cfg.Source
	noop := func() {}

	switch sc.Kind {
	case config.SourceFile:
		return &source.FileSource{Path: sc.Path, Format: sc.Format}, noop, nil

	case config.SourceObject:
		store, err := p.openStorage(ctx)
		if err != nil {
			return nil, nil, err
		}
		return &source.ObjectSource{
			Fetcher:    store,
			ObjectPath: sc.Path,
			Format:     sc.Format,
			TmpDir:     p.cfg.Storage.TmpDir,
		}, noop, nil

	case config.SourceSQL:
		db, err := source.OpenSQL(ctx, sc.Driver, sc.DSN)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				slog.WarnContext(ctx, "Failed to close database", "driver", sc.Driver, "error", err)
			}
		}
		return &source.SQL{DB: db, Query: sc.Query}, closeDB, nil

	case config.SourceBolt:
		return &source.Bolt{Path: sc.Path, Bucket: sc.Bucket}, noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported source kind: %s", sc.Kind)
}

// openStorage initializes the object store backing object sources.
func (p *Pipeline) openStorage(ctx context.Context) (storage.ObjectStore, error) {
	sc := p.cfg.Storage
	switch sc.Type {
	case "local":
		store, err := storage.NewLocalStorage(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.DebugContext(ctx, "Storage initialized", "type", sc.Type, "path", sc.Path)
		return store, nil
	case "s3":
		s3Cfg := storage.DefaultS3Config()
		if sc.S3.Region != "" {
			s3Cfg.Region = sc.S3.Region
		}
		if sc.S3.Endpoint != "" {
			s3Cfg.Endpoint = sc.S3.Endpoint
		}
		s3Cfg.UsePathStyle = sc.S3.UsePathStyle
		s3Cfg.Retries = sc.S3.Retries
		store, err := storage.NewS3Storage(ctx, sc.S3.Bucket, s3Cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.DebugContext(ctx, "Storage initialized",
			"type", sc.Type, "bucket", sc.S3.Bucket, "region", s3Cfg.Region, "endpoint", s3Cfg.Endpoint)
		return store, nil
	}
	return nil, fmt.Errorf("unsupported storage type: %s", sc.Type)
}
