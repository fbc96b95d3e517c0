package shardtail

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"go.uber.org/zap"

	si "github.com/Fewbytes/shardtail/interface"
)

type iteratorState int

const (
	iterInit iteratorState = iota
	iterActive
	iterExpired
	iterRenewing
	iterFatal
)

// IteratorManager owns the opaque shard iterator handle. It resolves the
// initial read position (a matching checkpoint beats a configured LATEST or
// TRIM_HORIZON) and produces replacement handles after the service expires
// one. Handles are replaced wholesale, never mutated.
type IteratorManager struct {
	stream  string
	shardID string
	svc     si.Stream
	store   si.CheckpointStore
	state   iteratorState
	log     *zap.Logger
}

func NewIteratorManager(svc si.Stream, store si.CheckpointStore, stream, shardID string, log *zap.Logger) *IteratorManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &IteratorManager{
		stream:  stream,
		shardID: shardID,
		svc:     svc,
		store:   store,
		state:   iterInit,
		log:     log,
	}
}

// Acquire resolves pos against the checkpoint store and asks the service
// for the initial iterator handle. An explicit sequence position is taken
// as configured; LATEST and TRIM_HORIZON are overridden to
// AFTER_SEQUENCE_NUMBER when a matching checkpoint exists.
func (m *IteratorManager) Acquire(pos ShardPosition) (string, error) {
	if err := pos.Validate(); err != nil {
		m.state = iterFatal
		return "", err
	}
	if !pos.Type.hasSequence() {
		cp, err := m.store.Load(m.stream, m.shardID)
		if err != nil {
			m.state = iterFatal
			return "", err
		}
		if cp != nil {
			m.log.Info("resuming after checkpoint",
				zap.String("sequence_number", cp.SequenceNumber))
			pos.Type = AfterSequenceNumber
			pos.SequenceNumber = cp.SequenceNumber
		}
	}
	it, err := m.getIterator(pos.Type, pos.SequenceNumber)
	if err != nil {
		m.state = iterFatal
		return "", si.Fatal("could not acquire shard iterator", err)
	}
	m.state = iterActive
	return it, nil
}

// Renew produces a fresh handle after the service reported the current one
// expired. With nothing consumed yet there is no position to renew at, and
// that is a hard stop rather than a retry.
func (m *IteratorManager) Renew(lastSequence string) (string, error) {
	m.state = iterExpired
	if lastSequence == "" {
		m.state = iterFatal
		return "", si.Fatal("iterator expired before any record was consumed", si.ErrNoSequence)
	}
	m.state = iterRenewing
	m.log.Info("renewing expired iterator",
		zap.String("sequence_number", lastSequence))
	it, err := m.getIterator(AfterSequenceNumber, lastSequence)
	if err != nil {
		m.state = iterFatal
		return "", si.Fatal("could not renew shard iterator", err)
	}
	m.state = iterActive
	return it, nil
}

func (m *IteratorManager) getIterator(t IteratorType, sequence string) (string, error) {
	in := &kinesis.GetShardIteratorInput{
		StreamName:        aws.String(m.stream),
		ShardId:           aws.String(m.shardID),
		ShardIteratorType: aws.String(t.String()),
	}
	if sequence != "" {
		in.StartingSequenceNumber = aws.String(sequence)
	}
	out, err := m.svc.GetShardIterator(in)
	if err != nil {
		return "", err
	}
	return aws.StringValue(out.ShardIterator), nil
}
