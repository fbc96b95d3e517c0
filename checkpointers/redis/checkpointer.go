// Package redischeckpointer persists shard checkpoints in redis, one hash
// per (stream, shard). A lock key holding a per-process token enforces the
// single-writer assumption: a second process opening the same checkpoint
// fails fast instead of silently interleaving saves. The lock carries a
// TTL refreshed on every load and save, so a writer that dies without
// calling Close frees the shard once the lease runs out.
package redischeckpointer

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/pborman/uuid"

	si "github.com/Fewbytes/shardtail/interface"
)

const defaultLockTTL = 30 * time.Second

type Options struct {
	Pool *redis.Pool
	// Prefix namespaces all keys; defaults to "shardtail".
	Prefix string
	// LockTTL bounds how long a dead writer's lock survives. A live
	// writer refreshes the lease on every load and save, so the TTL only
	// has to outlast the gap between checkpoint operations. Defaults to
	// 30 seconds.
	LockTTL time.Duration
}

type Checkpointer struct {
	pool   *redis.Pool
	prefix string
	token  string
	ttl    time.Duration
	locked []string
}

func New(opt *Options) (*Checkpointer, error) {
	if opt == nil || opt.Pool == nil {
		return nil, errors.New("redis checkpointer needs a pool")
	}
	prefix := opt.Prefix
	if prefix == "" {
		prefix = "shardtail"
	}
	ttl := opt.LockTTL
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &Checkpointer{
		pool:   opt.Pool,
		prefix: prefix,
		token:  uuid.New(),
		ttl:    ttl,
	}, nil
}

func (c *Checkpointer) key(stream, shardID string) string {
	return c.prefix + ":checkpoint:" + stream + ":" + shardID
}

func (c *Checkpointer) lockKey(stream, shardID string) string {
	return c.prefix + ":lock:" + stream + ":" + shardID
}

// acquire takes or refreshes the writer lock for one (stream, shard)
// pair. Held locks get their lease extended; a lock that expired between
// operations is simply taken again with the same token.
func (c *Checkpointer) acquire(conn redis.Conn, stream, shardID string) error {
	lk := c.lockKey(stream, shardID)
	for _, held := range c.locked {
		if held == lk {
			n, err := redis.Int(conn.Do("PEXPIRE", lk, int64(c.ttl/time.Millisecond)))
			if err != nil {
				return err
			}
			if n == 1 {
				return nil
			}
			// lease lapsed while this writer was idle; fall through
			// and contend for the lock again
			break
		}
	}
	res, err := redis.String(conn.Do("SET", lk, c.token,
		"PX", int64(c.ttl/time.Millisecond), "NX"))
	if err == redis.ErrNil || (err == nil && res != "OK") {
		return si.Fatal("checkpoint "+stream+"/"+shardID+" is owned by another writer", nil)
	}
	if err != nil {
		return err
	}
	for _, held := range c.locked {
		if held == lk {
			return nil
		}
	}
	c.locked = append(c.locked, lk)
	return nil
}

func (c *Checkpointer) Load(stream, shardID string) (*si.Checkpoint, error) {
	conn := c.pool.Get()
	defer conn.Close()
	if err := c.acquire(conn, stream, shardID); err != nil {
		return nil, err
	}
	m, err := redis.StringMap(conn.Do("HGETALL", c.key(stream, shardID)))
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	cp := &si.Checkpoint{
		ShardID:        m["shard_id"],
		Stream:         m["stream"],
		SequenceNumber: m["sequence_number"],
	}
	if cp.Stream != stream || cp.ShardID != shardID {
		return nil, si.Fatal(
			"checkpoint belongs to "+cp.Stream+"/"+cp.ShardID+", configured for "+stream+"/"+shardID,
			si.ErrCheckpointMismatch)
	}
	return cp, nil
}

func (c *Checkpointer) Save(cp *si.Checkpoint) error {
	conn := c.pool.Get()
	defer conn.Close()
	if err := c.acquire(conn, cp.Stream, cp.ShardID); err != nil {
		return err
	}
	_, err := conn.Do("HSET", c.key(cp.Stream, cp.ShardID),
		"shard_id", cp.ShardID,
		"stream", cp.Stream,
		"sequence_number", cp.SequenceNumber)
	return err
}

// Close releases the writer locks. A lock is deleted only while its value
// still matches this writer's token, so a replaced owner never removes its
// successor's lock.
func (c *Checkpointer) Close() error {
	conn := c.pool.Get()
	defer conn.Close()
	var firstErr error
	for _, lk := range c.locked {
		val, err := redis.String(conn.Do("GET", lk))
		if err != nil {
			if firstErr == nil && err != redis.ErrNil {
				firstErr = err
			}
			continue
		}
		if val != c.token {
			continue
		}
		if _, err := conn.Do("DEL", lk); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.locked = nil
	return firstErr
}

// NewPool builds a redigo pool for a redis:// URL.
func NewPool(rawurl string) *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(rawurl)
		},
		TestOnBorrow: func(conn redis.Conn, t time.Time) error {
			_, err := conn.Do("PING")
			return err
		},
	}
}
