// Package filecheckpointer persists a shard checkpoint as a single JSON
// record in a local file. The record is overwritten in place on every save;
// there is no append log and no atomic rename. That is acceptable under the
// single-writer assumption: exactly one process owns the checkpoint file
// for a given (stream, shard) at a time.
package filecheckpointer

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	si "github.com/Fewbytes/shardtail/interface"
)

type Checkpointer struct {
	f  *os.File
	mu sync.Mutex
}

// Open acquires the checkpoint file, creating it if absent. The file stays
// open until Close so the resource is held for the worker's lifetime and
// released with it.
func Open(path string) (*Checkpointer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, si.Fatal("could not open checkpoint file "+path, err)
	}
	return &Checkpointer{f: f}, nil
}

// Load reads the persisted record. An empty file is not an error, it means
// no progress has been persisted yet. A record for a different stream or
// shard is fatal: the store refuses to resume from someone else's progress
// rather than silently falling back to a default position.
func (c *Checkpointer) Load(stream, shardID string) (*si.Checkpoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	raw, err := io.ReadAll(c.f)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var cp si.Checkpoint
	if err := json.Unmarshal(raw, &cp); err != nil {
		return nil, si.Fatal("corrupt checkpoint record", err)
	}
	if cp.Stream != stream || cp.ShardID != shardID {
		return nil, si.Fatal(
			"checkpoint belongs to "+cp.Stream+"/"+cp.ShardID+", configured for "+stream+"/"+shardID,
			si.ErrCheckpointMismatch)
	}
	return &cp, nil
}

// Save overwrites the record wholesale.
func (c *Checkpointer) Save(cp *si.Checkpoint) error {
	raw, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.f.Truncate(0); err != nil {
		return err
	}
	if _, err := c.f.WriteAt(raw, 0); err != nil {
		return err
	}
	return c.f.Sync()
}

func (c *Checkpointer) Close() error {
	return c.f.Close()
}
