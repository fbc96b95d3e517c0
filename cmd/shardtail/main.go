package main

import (
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "shardtail"
	app.Usage = "Consume a single shard of a Kinesis stream"
	app.Commands = []cli.Command{
		cmdTail,
		cmdStatus,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
