// Package postgrescheckpointer persists shard checkpoints in postgres, one
// row per (stream, shard). Saves are upserts, so the row keeps the
// single-record semantics of the other stores.
package postgrescheckpointer

import (
	"database/sql"

	_ "github.com/lib/pq"

	si "github.com/Fewbytes/shardtail/interface"
)

const defaultTable = "shard_checkpoints"

type Options struct {
	DSN string
	// Table defaults to "shard_checkpoints".
	Table string
}

type Checkpointer struct {
	db    *sql.DB
	table string
}

// Open connects and makes sure the checkpoint table exists.
func Open(opt *Options) (*Checkpointer, error) {
	table := opt.Table
	if table == "" {
		table = defaultTable
	}
	db, err := sql.Open("postgres", opt.DSN)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + table + ` (
		stream TEXT NOT NULL,
		shard_id TEXT NOT NULL,
		sequence_number TEXT NOT NULL,
		PRIMARY KEY (stream, shard_id)
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &Checkpointer{db: db, table: table}, nil
}

func (c *Checkpointer) Load(stream, shardID string) (*si.Checkpoint, error) {
	row := c.db.QueryRow(
		`SELECT sequence_number FROM `+c.table+` WHERE stream = $1 AND shard_id = $2`,
		stream, shardID)
	cp := &si.Checkpoint{Stream: stream, ShardID: shardID}
	switch err := row.Scan(&cp.SequenceNumber); err {
	case nil:
		return cp, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}

func (c *Checkpointer) Save(cp *si.Checkpoint) error {
	_, err := c.db.Exec(
		`INSERT INTO `+c.table+` (stream, shard_id, sequence_number) VALUES ($1, $2, $3)
		 ON CONFLICT (stream, shard_id) DO UPDATE SET sequence_number = EXCLUDED.sequence_number`,
		cp.Stream, cp.ShardID, cp.SequenceNumber)
	return err
}

func (c *Checkpointer) Close() error {
	return c.db.Close()
}
