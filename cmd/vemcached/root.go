package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/FaizChishtie/vemcache"
	"github.com/FaizChishtie/vemcache/codec"
	"github.com/FaizChishtie/vemcache/config"
	"github.com/FaizChishtie/vemcache/protocol"
	"github.com/FaizChishtie/vemcache/server"
	"github.com/FaizChishtie/vemcache/snapshot"
)

const version = "0.2.0"

var rootCmd = &cobra.Command{
	Use:   "vemcached",
	Short: "Vemcache - an in-memory vector database served over TCP",
	Long: `Vemcached serves an in-memory vector cache over a line-oriented TCP
protocol: clients connect, issue text commands (insert, get, knn, vadd,
vcosine, dump, ...) and receive text responses.

All configuration comes from VEMCACHE_* environment variables, e.g.
VEMCACHE_HOST, VEMCACHE_PORT, VEMCACHE_SECRET and VEMCACHE_SNAPSHOT_DIR.`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg)

	storage, err := newSnapshotStorage(cfg)
	if err != nil {
		return fmt.Errorf("snapshot storage: %w", err)
	}

	c, ok := codec.ByName(cfg.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.Codec)
	}

	db := vemcache.New(
		vemcache.WithSnapshotStorage(storage),
		vemcache.WithCodec(c),
		vemcache.WithLogger(logger),
	)

	if cfg.RestoreFile != "" {
		if err := db.Restore(ctx, cfg.RestoreFile); err != nil {
			return fmt.Errorf("restore %q: %w", cfg.RestoreFile, err)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.InfoContext(ctx, "starting vemcache",
		"version", version,
		"addr", cfg.Addr(),
		"vectors", db.Len(),
	)

	srv := server.New(cfg.Addr(), protocol.NewDispatcher(db),
		server.WithLogger(logger),
		server.WithSecret(cfg.Secret),
		server.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	return srv.ListenAndServe(ctx)
}

func newLogger(cfg *config.Config) *vemcache.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.LogFormat == "json" {
		return vemcache.NewJSONLogger(level)
	}
	return vemcache.NewTextLogger(level)
}

func newSnapshotStorage(cfg *config.Config) (snapshot.Storage, error) {
	if cfg.S3Endpoint == "" {
		return snapshot.NewLocalSink(cfg.SnapshotDir), nil
	}

	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3Secure,
	})
	if err != nil {
		return nil, err
	}
	return snapshot.NewMinioSink(client, cfg.S3Bucket, cfg.S3Prefix), nil
}
