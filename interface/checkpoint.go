package shardtailiface

// Checkpoint is the persisted snapshot of read progress for one shard.
// Exactly one checkpoint exists per (stream, shard) pair at any time; it is
// the sole source of resumable progress across restarts.
type Checkpoint struct {
	ShardID        string `json:"shard_id"`
	Stream         string `json:"stream"`
	SequenceNumber string `json:"sequence_number"`
}

// CheckpointStore persists a single Checkpoint per (stream, shard) pair.
//
// Load returns nil with no error when nothing has been persisted yet; that
// means "start from the configured position". A persisted record belonging
// to a different stream or shard is a fatal mismatch, never a fallback.
// Implementations assume a single writer per (stream, shard).
type CheckpointStore interface {
	Load(stream, shardID string) (*Checkpoint, error)
	Save(*Checkpoint) error
	Close() error
}
