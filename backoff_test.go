package shardtail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	si "github.com/Fewbytes/shardtail/interface"
)

func TestBackoffSchedule(t *testing.T) {
	stop := make(chan si.Unit)
	b := NewBackoff(time.Microsecond)

	var delays []int
	for i := 0; i < 6; i++ {
		delays = append(delays, b.Delay())
		b.Suspend(stop)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 5}, delays)

	b.Reset()
	assert.Equal(t, 1, b.Delay())
}

func TestBackoffSuspendDuration(t *testing.T) {
	stop := make(chan si.Unit)
	b := NewBackoff(time.Millisecond)

	assert.Equal(t, 1*time.Millisecond, b.Suspend(stop))
	assert.Equal(t, 2*time.Millisecond, b.Suspend(stop))
}

func TestBackoffSuspendObservesStop(t *testing.T) {
	b := NewBackoff(time.Hour)
	stop := make(chan si.Unit)
	close(stop)

	done := make(chan si.Unit)
	go func() {
		b.Suspend(stop)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("suspend did not observe stop")
	}
}
