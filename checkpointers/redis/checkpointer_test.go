//go:build integration

package redischeckpointer

import (
	"os"
	"testing"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	si "github.com/Fewbytes/shardtail/interface"
)

func testPool(t *testing.T) *redis.Pool {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	return NewPool(url)
}

func TestRoundTrip(t *testing.T) {
	pool := testPool(t)
	defer pool.Close()

	conn := pool.Get()
	conn.Do("DEL", "shardtail-test:checkpoint:orders:s1", "shardtail-test:lock:orders:s1")
	conn.Close()

	c, err := New(&Options{Pool: pool, Prefix: "shardtail-test"})
	require.NoError(t, err)
	defer c.Close()

	cp, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Nil(t, cp)

	want := &si.Checkpoint{ShardID: "s1", Stream: "orders", SequenceNumber: "49598630142999655949899080"}
	require.NoError(t, c.Save(want))

	got, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSecondWriterIsRejected(t *testing.T) {
	pool := testPool(t)
	defer pool.Close()

	conn := pool.Get()
	conn.Do("DEL", "shardtail-test:checkpoint:orders:s9", "shardtail-test:lock:orders:s9")
	conn.Close()

	first, err := New(&Options{Pool: pool, Prefix: "shardtail-test"})
	require.NoError(t, err)
	defer first.Close()
	_, err = first.Load("orders", "s9")
	require.NoError(t, err)

	second, err := New(&Options{Pool: pool, Prefix: "shardtail-test"})
	require.NoError(t, err)
	defer second.Close()
	_, err = second.Load("orders", "s9")
	assert.Error(t, err)
	assert.True(t, si.IsFatal(err))
}

// A writer that dies without Close must not hold the shard forever; its
// lock lapses with the lease and the next writer takes over.
func TestDeadWriterLockExpires(t *testing.T) {
	pool := testPool(t)
	defer pool.Close()

	conn := pool.Get()
	conn.Do("DEL", "shardtail-test:checkpoint:orders:s2", "shardtail-test:lock:orders:s2")
	conn.Close()

	dead, err := New(&Options{Pool: pool, Prefix: "shardtail-test", LockTTL: 100 * time.Millisecond})
	require.NoError(t, err)
	_, err = dead.Load("orders", "s2")
	require.NoError(t, err)
	// no Close: simulate a crash while holding the lock

	next, err := New(&Options{Pool: pool, Prefix: "shardtail-test", LockTTL: 100 * time.Millisecond})
	require.NoError(t, err)
	defer next.Close()
	_, err = next.Load("orders", "s2")
	assert.Error(t, err)

	time.Sleep(300 * time.Millisecond)
	cp, err := next.Load("orders", "s2")
	require.NoError(t, err)
	assert.Nil(t, cp)
}

// Every save refreshes the lease, so a writer that keeps checkpointing
// never loses the lock even when the TTL is shorter than the run.
func TestSaveRefreshesLease(t *testing.T) {
	pool := testPool(t)
	defer pool.Close()

	conn := pool.Get()
	conn.Do("DEL", "shardtail-test:checkpoint:orders:s3", "shardtail-test:lock:orders:s3")
	conn.Close()

	c, err := New(&Options{Pool: pool, Prefix: "shardtail-test", LockTTL: 400 * time.Millisecond})
	require.NoError(t, err)
	defer c.Close()
	_, err = c.Load("orders", "s3")
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		time.Sleep(200 * time.Millisecond)
		require.NoError(t, c.Save(&si.Checkpoint{
			ShardID: "s3", Stream: "orders", SequenceNumber: "10",
		}))
	}

	other, err := New(&Options{Pool: pool, Prefix: "shardtail-test", LockTTL: 400 * time.Millisecond})
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Load("orders", "s3")
	assert.Error(t, err)
	assert.True(t, si.IsFatal(err))
}
