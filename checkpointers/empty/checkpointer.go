// Package emptycheckpointer disables checkpoint persistence: progress is
// never saved and the worker always restarts from its configured position.
package emptycheckpointer

import (
	si "github.com/Fewbytes/shardtail/interface"
)

type Checkpointer struct{}

func New() *Checkpointer {
	return &Checkpointer{}
}

func (*Checkpointer) Load(stream, shardID string) (*si.Checkpoint, error) {
	return nil, nil
}

func (*Checkpointer) Save(*si.Checkpoint) error {
	return nil
}

func (*Checkpointer) Close() error {
	return nil
}
