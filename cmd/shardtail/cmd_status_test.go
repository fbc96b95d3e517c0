package main

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Fewbytes/shardtail/mocks"
)

func describePage(shards []string, more bool) *kinesis.DescribeStreamOutput {
	desc := &kinesis.StreamDescription{
		StreamName:    aws.String("orders"),
		StreamStatus:  aws.String(kinesis.StreamStatusActive),
		HasMoreShards: aws.Bool(more),
	}
	for _, id := range shards {
		desc.Shards = append(desc.Shards, &kinesis.Shard{ShardId: aws.String(id)})
	}
	return &kinesis.DescribeStreamOutput{StreamDescription: desc}
}

func describeAfter(shardID string) interface{} {
	return mock.MatchedBy(func(in *kinesis.DescribeStreamInput) bool {
		return aws.StringValue(in.ExclusiveStartShardId) == shardID
	})
}

func TestDescribeShardsFollowsPaging(t *testing.T) {
	svc := new(mocks.Stream)
	svc.On("DescribeStream", describeAfter("")).
		Return(describePage([]string{"shardId-000", "shardId-001"}, true), nil)
	svc.On("DescribeStream", describeAfter("shardId-001")).
		Return(describePage([]string{"shardId-002"}, false), nil)

	desc, shards, err := describeShards(svc, "orders")
	require.NoError(t, err)
	assert.Equal(t, kinesis.StreamStatusActive, aws.StringValue(desc.StreamStatus))
	require.Len(t, shards, 3)
	assert.Equal(t, "shardId-000", aws.StringValue(shards[0].ShardId))
	assert.Equal(t, "shardId-002", aws.StringValue(shards[2].ShardId))
	svc.AssertNumberOfCalls(t, "DescribeStream", 2)
}

func TestDescribeShardsSinglePage(t *testing.T) {
	svc := new(mocks.Stream)
	svc.On("DescribeStream", mock.Anything).
		Return(describePage([]string{"shardId-000"}, false), nil)

	_, shards, err := describeShards(svc, "orders")
	require.NoError(t, err)
	assert.Len(t, shards, 1)
	svc.AssertNumberOfCalls(t, "DescribeStream", 1)
}

func TestDescribeShardsPropagatesError(t *testing.T) {
	svc := new(mocks.Stream)
	svc.On("DescribeStream", mock.Anything).Return(nil, errors.New("no such stream"))

	_, _, err := describeShards(svc, "missing")
	assert.Error(t, err)
}
