package shardtail

import (
	"time"

	si "github.com/Fewbytes/shardtail/interface"
)

const (
	backoffMin = 1
	backoffMax = 5
)

// Backoff is the linear empty-poll delay schedule: 1 unit, then 2, up to 5,
// back to 1 after any nonempty poll. It keeps an idle shard from being
// busy-polled without ever making the worker unresponsive for long.
type Backoff struct {
	delay int
	unit  time.Duration
}

func NewBackoff(unit time.Duration) *Backoff {
	return &Backoff{delay: backoffMin, unit: unit}
}

// Delay reports, in units, how long the next Suspend will wait.
func (b *Backoff) Delay() int {
	return b.delay
}

// Suspend blocks for the current delay, or until stop is closed, then
// advances the schedule. It returns the duration it was set to wait.
func (b *Backoff) Suspend(stop <-chan si.Unit) time.Duration {
	d := time.Duration(b.delay) * b.unit
	t := time.NewTimer(d)
	select {
	case <-t.C:
	case <-stop:
		t.Stop()
	}
	if b.delay < backoffMax {
		b.delay++
	}
	return d
}

// Reset restores the minimum delay.
func (b *Backoff) Reset() {
	b.delay = backoffMin
}
