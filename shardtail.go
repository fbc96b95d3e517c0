// Package shardtail consumes a single shard of a Kinesis stream: it
// acquires a shard iterator, polls records in batches, decodes them into
// events tagged with their source sequence numbers, persists read progress
// through a checkpoint store, and backs off linearly while the shard is
// idle. Expired iterators are renewed from the last consumed sequence
// number; every other stream failure stops the worker.
package shardtail

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"

	si "github.com/Fewbytes/shardtail/interface"
)

// Tailer is the top-level contract of a shard worker.
type Tailer interface {
	Run(sink si.EventSink) error
	Stop()
}

// NewDefaultWorker builds a worker against the real Kinesis service with
// static credentials, no checkpoint persistence, and raw decoding.
func NewDefaultWorker(awsAccessKey, awsSecretKey, awsRegion string, opt *Options) (*Worker, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials: credentials.NewStaticCredentials(awsAccessKey, awsSecretKey, ""),
		Region:      aws.String(awsRegion),
	})
	if err != nil {
		return nil, err
	}
	return NewWorker(kinesis.New(sess), nil, nil, opt)
}
