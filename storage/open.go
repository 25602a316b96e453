package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"whats4dinner"
)

// Open builds the Store selected by cfg.Backend. The returned close function
// releases backend connections and is never nil.
func Open(ctx context.Context, cfg whats4dinner.StorageConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", "file":
		slog.Info("SETUP: Using file storage", "dir", cfg.Dir)
		return NewFileStore(cfg.Dir), noop, nil

	case "memory":
		slog.Info("SETUP: Using in-memory storage")
		return NewMemoryStore(), noop, nil

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, noop, fmt.Errorf("missing S3 config: STORAGE_S3_BUCKET must be set")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load AWS config: %w", err)
		}
		slog.Info("SETUP: Using S3 storage", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close() // nolint: errcheck
			return nil, noop, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		slog.Info("SETUP: Using redis storage", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
		return NewRedisStore(client, cfg.RedisPrefix), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
