package main

import (
	"github.com/urfave/cli"
)

var (
	fRedisURL    = "redis-url"
	fRedisPrefix = "redis-prefix"
)

var flagsRedis = []cli.Flag{
	cli.StringFlag{
		Name:   fRedisURL,
		Usage:  "Keep the checkpoint in redis at this URL",
		EnvVar: "REDIS_URL",
	},
	cli.StringFlag{
		Name:  fRedisPrefix,
		Usage: "Key prefix for redis checkpoints",
	},
}
