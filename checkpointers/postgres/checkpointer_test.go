//go:build integration

package postgrescheckpointer

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	si "github.com/Fewbytes/shardtail/interface"
)

func testDSN(t *testing.T) string {
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		t.Skip("POSTGRES_URL not set")
	}
	return dsn
}

func openTestStore(t *testing.T) *Checkpointer {
	c, err := Open(&Options{DSN: testDSN(t), Table: "shardtail_test_checkpoints"})
	require.NoError(t, err)
	_, err = c.db.Exec(`DELETE FROM ` + c.table)
	require.NoError(t, err)
	return c
}

func TestRoundTrip(t *testing.T) {
	c := openTestStore(t)
	defer c.Close()

	// absent checkpoint reads as nil, not as an error
	cp, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Nil(t, cp)

	want := &si.Checkpoint{ShardID: "s1", Stream: "orders", SequenceNumber: "49598630142999655949899080"}
	require.NoError(t, c.Save(want))

	got, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveOverwrites(t *testing.T) {
	c := openTestStore(t)
	defer c.Close()

	require.NoError(t, c.Save(&si.Checkpoint{ShardID: "s1", Stream: "orders", SequenceNumber: "100"}))
	require.NoError(t, c.Save(&si.Checkpoint{ShardID: "s1", Stream: "orders", SequenceNumber: "250"}))

	got, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Equal(t, "250", got.SequenceNumber)
}

func TestRowsAreScopedByStreamAndShard(t *testing.T) {
	c := openTestStore(t)
	defer c.Close()

	require.NoError(t, c.Save(&si.Checkpoint{ShardID: "s1", Stream: "orders", SequenceNumber: "7"}))
	require.NoError(t, c.Save(&si.Checkpoint{ShardID: "s2", Stream: "orders", SequenceNumber: "9"}))

	got, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Equal(t, "7", got.SequenceNumber)

	cp, err := c.Load("payments", "s1")
	require.NoError(t, err)
	assert.Nil(t, cp)
}

func TestCheckpointSurvivesReopen(t *testing.T) {
	c := openTestStore(t)
	require.NoError(t, c.Save(&si.Checkpoint{ShardID: "s1", Stream: "orders", SequenceNumber: "31"}))
	require.NoError(t, c.Close())

	c, err := Open(&Options{DSN: testDSN(t), Table: "shardtail_test_checkpoints"})
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Load("orders", "s1")
	require.NoError(t, err)
	assert.Equal(t, "31", got.SequenceNumber)
}
