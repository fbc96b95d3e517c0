package shardtail

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/service/kinesis"

	si "github.com/Fewbytes/shardtail/interface"
)

// IteratorType is the closed set of positions a shard iterator can be
// requested at.
type IteratorType int

const (
	Latest IteratorType = iota
	TrimHorizon
	AtSequenceNumber
	AfterSequenceNumber
)

func (t IteratorType) String() string {
	switch t {
	case Latest:
		return kinesis.ShardIteratorTypeLatest
	case TrimHorizon:
		return kinesis.ShardIteratorTypeTrimHorizon
	case AtSequenceNumber:
		return kinesis.ShardIteratorTypeAtSequenceNumber
	case AfterSequenceNumber:
		return kinesis.ShardIteratorTypeAfterSequenceNumber
	}
	return fmt.Sprintf("IteratorType(%d)", int(t))
}

// hasSequence reports whether the type carries a starting sequence number.
func (t IteratorType) hasSequence() bool {
	return t == AtSequenceNumber || t == AfterSequenceNumber
}

// ShardPosition names where reading of a shard should start.
type ShardPosition struct {
	Stream         string
	ShardID        string
	Type           IteratorType
	SequenceNumber string
}

// Validate enforces that a sequence number is present exactly when the
// iterator type needs one.
func (p ShardPosition) Validate() error {
	if p.Stream == "" || p.ShardID == "" {
		return si.Fatal("shard position needs a stream and a shard id", nil)
	}
	if p.Type.hasSequence() != (p.SequenceNumber != "") {
		return si.Fatal(fmt.Sprintf("iterator type %s and sequence number %q do not agree", p.Type, p.SequenceNumber), nil)
	}
	return nil
}

// ParseStartFrom maps a start_from configuration value to an iterator type.
// An explicit sequence number means AT_SEQUENCE_NUMBER; empty means LATEST.
func ParseStartFrom(s string) (IteratorType, string, error) {
	switch strings.ToUpper(s) {
	case "", kinesis.ShardIteratorTypeLatest:
		return Latest, "", nil
	case kinesis.ShardIteratorTypeTrimHorizon:
		return TrimHorizon, "", nil
	}
	if !isDecimal(s) {
		return Latest, "", si.Fatal(fmt.Sprintf("start_from %q is neither LATEST, TRIM_HORIZON nor a sequence number", s), nil)
	}
	return AtSequenceNumber, s, nil
}
