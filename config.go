package shardtail

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	si "github.com/Fewbytes/shardtail/interface"
)

// Options configures a single shard worker.
type Options struct {
	// Stream and ShardID name the shard this worker owns. Both required.
	Stream  string
	ShardID string

	// StartFrom is LATEST, TRIM_HORIZON, or an explicit sequence number
	// (read AT that number). Defaults to LATEST. A persisted checkpoint
	// overrides LATEST and TRIM_HORIZON.
	StartFrom string

	// BatchSize bounds how many records one GetRecords call may return.
	BatchSize int64

	// PollUnit is one backoff unit; empty polls wait 1..5 of these.
	PollUnit time.Duration

	Logger *zap.Logger

	// Registerer receives the worker's counters; nil leaves them
	// unregistered.
	Registerer prometheus.Registerer
}

var DefaultOptions = Options{
	StartFrom: "LATEST",
	BatchSize: 100,
	PollUnit:  time.Second,
}

func (o *Options) withDefaults() (*Options, error) {
	out := *o
	if out.StartFrom == "" {
		out.StartFrom = DefaultOptions.StartFrom
	}
	if out.BatchSize <= 0 {
		out.BatchSize = DefaultOptions.BatchSize
	}
	if out.PollUnit <= 0 {
		out.PollUnit = DefaultOptions.PollUnit
	}
	if out.Logger == nil {
		out.Logger = zap.NewNop()
	}
	if out.Stream == "" || out.ShardID == "" {
		return nil, si.Fatal("a worker needs a stream and a shard id", nil)
	}
	return &out, nil
}

// startPosition resolves StartFrom into the worker's configured position.
func (o *Options) startPosition() (ShardPosition, error) {
	typ, seq, err := ParseStartFrom(o.StartFrom)
	if err != nil {
		return ShardPosition{}, err
	}
	return ShardPosition{
		Stream:         o.Stream,
		ShardID:        o.ShardID,
		Type:           typ,
		SequenceNumber: seq,
	}, nil
}
