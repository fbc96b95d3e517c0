package main

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/urfave/cli"
)

// Config is the tail configuration, merged from an optional YAML file,
// SHARDTAIL_* environment variables, and flags, strongest last.
type Config struct {
	Stream    string        `koanf:"stream"`
	ShardID   string        `koanf:"shard_id"`
	StartFrom string        `koanf:"start_from"`
	BatchSize int64         `koanf:"batch_size"`
	PollUnit  time.Duration `koanf:"poll_unit"`
	Decoder   string        `koanf:"decoder"`

	Checkpoint struct {
		File        string `koanf:"file"`
		RedisURL    string `koanf:"redis_url"`
		RedisPrefix string `koanf:"redis_prefix"`
		PostgresDSN string `koanf:"postgres_dsn"`
	} `koanf:"checkpoint"`

	MetricsPort int    `koanf:"metrics_port"`
	LogLevel    string `koanf:"log_level"`
}

// loadConfig reads the YAML file (if any) and SHARDTAIL_* env vars, e.g.
// SHARDTAIL_CHECKPOINT__FILE for checkpoint.file.
func loadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}
	_ = k.Load(env.Provider("SHARDTAIL_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SHARDTAIL_")), "__", ".", -1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyFlags(cfg *Config, ctx *cli.Context) {
	if v := ctx.String("stream"); v != "" {
		cfg.Stream = v
	}
	if v := ctx.String("shard"); v != "" {
		cfg.ShardID = v
	}
	if v := ctx.String("start-from"); v != "" {
		cfg.StartFrom = v
	}
	if v := ctx.Int64("batch-size"); v != 0 {
		cfg.BatchSize = v
	}
	if v := ctx.String("decoder"); v != "" {
		cfg.Decoder = v
	}
	if v := ctx.String("checkpoint-file"); v != "" {
		cfg.Checkpoint.File = v
	}
	if v := ctx.String(fRedisURL); v != "" {
		cfg.Checkpoint.RedisURL = v
	}
	if v := ctx.String(fRedisPrefix); v != "" {
		cfg.Checkpoint.RedisPrefix = v
	}
	if v := ctx.String("postgres-dsn"); v != "" {
		cfg.Checkpoint.PostgresDSN = v
	}
	if v := ctx.Int("metrics-port"); v != 0 {
		cfg.MetricsPort = v
	}
}
