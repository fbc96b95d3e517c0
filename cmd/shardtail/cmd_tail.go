package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Fewbytes/shardtail"
	emptycheckpointer "github.com/Fewbytes/shardtail/checkpointers/empty"
	filecheckpointer "github.com/Fewbytes/shardtail/checkpointers/file"
	postgrescheckpointer "github.com/Fewbytes/shardtail/checkpointers/postgres"
	redischeckpointer "github.com/Fewbytes/shardtail/checkpointers/redis"
	si "github.com/Fewbytes/shardtail/interface"
)

var cmdTail = cli.Command{
	Name:    "tail",
	Aliases: []string{"t"},
	Usage:   "Pipes one shard of a Kinesis stream to standard out",
	Action:  runTail,
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to a YAML config file",
		},
		cli.StringFlag{
			Name:   "stream, s",
			Usage:  "The Kinesis stream to tail",
			EnvVar: "SHARDTAIL_STREAM",
		},
		cli.StringFlag{
			Name:   "shard",
			Usage:  "The shard id to tail",
			EnvVar: "SHARDTAIL_SHARD_ID",
		},
		cli.StringFlag{
			Name:  "start-from",
			Usage: "LATEST, TRIM_HORIZON or an explicit sequence number",
		},
		cli.Int64Flag{
			Name:  "batch-size",
			Usage: "Records per read call",
		},
		cli.StringFlag{
			Name:  "decoder",
			Usage: "Record decoder: raw or lines",
		},
		cli.StringFlag{
			Name:  "checkpoint-file",
			Usage: "Keep the checkpoint in this file",
		},
		cli.StringFlag{
			Name:   "postgres-dsn",
			Usage:  "Keep the checkpoint in postgres at this DSN",
			EnvVar: "DATABASE_URL",
		},
		cli.IntFlag{
			Name:  "metrics-port",
			Usage: "Expose prometheus metrics on this port",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "Debug logging",
		},
	}, append(flagsAws, flagsRedis...)...),
}

func runTail(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx.String("config"))
	if err != nil {
		return err
	}
	applyFlags(&cfg, ctx)

	log, err := newLogger(cfg.LogLevel, ctx.Bool("verbose"))
	if err != nil {
		return err
	}
	defer log.Sync()

	svc, err := newKinesis(ctx)
	if err != nil {
		return err
	}
	decoder, err := shardtail.DecoderFor(cfg.Decoder)
	if err != nil {
		return err
	}
	store, err := newStore(&cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	worker, err := shardtail.NewWorker(svc, store, decoder, &shardtail.Options{
		Stream:     cfg.Stream,
		ShardID:    cfg.ShardID,
		StartFrom:  cfg.StartFrom,
		BatchSize:  cfg.BatchSize,
		PollUnit:   cfg.PollUnit,
		Logger:     log,
		Registerer: reg,
	})
	if err != nil {
		store.Close()
		return err
	}

	if cfg.MetricsPort > 0 {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.MetricsPort), nil); err != nil {
				log.Warn("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("shutdown requested")
		worker.Stop()
	}()

	return worker.Run(shardtail.SinkFunc(func(ev *si.Event) error {
		fmt.Println(string(ev.Data))
		return nil
	}))
}

// newStore picks the checkpoint backend: file, redis, or postgres, in that
// order of preference; none configured means no persistence at all.
func newStore(cfg *Config) (si.CheckpointStore, error) {
	switch {
	case cfg.Checkpoint.File != "":
		return filecheckpointer.Open(cfg.Checkpoint.File)
	case cfg.Checkpoint.RedisURL != "":
		return redischeckpointer.New(&redischeckpointer.Options{
			Pool:   redischeckpointer.NewPool(cfg.Checkpoint.RedisURL),
			Prefix: cfg.Checkpoint.RedisPrefix,
		})
	case cfg.Checkpoint.PostgresDSN != "":
		return postgrescheckpointer.Open(&postgrescheckpointer.Options{
			DSN: cfg.Checkpoint.PostgresDSN,
		})
	}
	return emptycheckpointer.New(), nil
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		level = "debug"
	}
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return cfg.Build()
}
