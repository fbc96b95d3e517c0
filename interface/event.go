package shardtailiface

// Event is one decoded unit of data recovered from a stream record. The
// worker tags every event with the sequence number and shard of the record
// it came from before handing it to the sink, whatever the decoder did.
type Event struct {
	Data           []byte
	SequenceNumber string
	ShardID        string
	PartitionKey   string
}

// Decoder turns one record payload into zero or more event payloads.
type Decoder interface {
	Decode(data []byte) ([][]byte, error)
}

// EventSink receives decoded events in shard arrival order.
type EventSink interface {
	Put(*Event) error
}

type Unit struct{}
