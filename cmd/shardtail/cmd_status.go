package main

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/urfave/cli"

	si "github.com/Fewbytes/shardtail/interface"
)

var cmdStatus = cli.Command{
	Name:    "status",
	Aliases: []string{"st"},
	Usage:   "Shows a stream's status and its shards",
	Action:  runStatus,
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:   "stream, s",
			Usage:  "The stream to describe",
			EnvVar: "SHARDTAIL_STREAM",
		},
	}, flagsAws...),
}

func runStatus(ctx *cli.Context) error {
	svc, err := newKinesis(ctx)
	if err != nil {
		return err
	}
	desc, shards, err := describeShards(svc, ctx.String("stream"))
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", aws.StringValue(desc.StreamName), aws.StringValue(desc.StreamStatus))
	for _, shard := range shards {
		end := "open"
		if shard.SequenceNumberRange.EndingSequenceNumber != nil {
			end = aws.StringValue(shard.SequenceNumberRange.EndingSequenceNumber)
		}
		fmt.Printf("  %s  [%s .. %s]\n",
			aws.StringValue(shard.ShardId),
			aws.StringValue(shard.SequenceNumberRange.StartingSequenceNumber),
			end)
	}
	return nil
}

// describeShards collects every shard of a stream, following HasMoreShards
// with ExclusiveStartShardId until the listing is complete.
func describeShards(svc si.Stream, stream string) (*kinesis.StreamDescription, []*kinesis.Shard, error) {
	input := &kinesis.DescribeStreamInput{StreamName: aws.String(stream)}
	var desc *kinesis.StreamDescription
	var shards []*kinesis.Shard
	for {
		out, err := svc.DescribeStream(input)
		if err != nil {
			return nil, nil, err
		}
		desc = out.StreamDescription
		shards = append(shards, desc.Shards...)
		if !aws.BoolValue(desc.HasMoreShards) || len(desc.Shards) == 0 {
			return desc, shards, nil
		}
		input.ExclusiveStartShardId = desc.Shards[len(desc.Shards)-1].ShardId
	}
}
