package shardtailiface

import (
	"github.com/aws/aws-sdk-go/service/kinesis"
)

// Stream is the subset of the Kinesis API the consumer core depends on.
// Anything that satisfies it, including *kinesis.Kinesis, can back a worker.
type Stream interface {
	DescribeStream(*kinesis.DescribeStreamInput) (*kinesis.DescribeStreamOutput, error)

	GetRecords(*kinesis.GetRecordsInput) (*kinesis.GetRecordsOutput, error)

	GetShardIterator(*kinesis.GetShardIteratorInput) (*kinesis.GetShardIteratorOutput, error)
}
