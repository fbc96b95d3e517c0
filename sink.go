package shardtail

import (
	si "github.com/Fewbytes/shardtail/interface"
)

// ChannelSink delivers events to a channel, for callers that want to pull
// from a worker instead of being called back.
type ChannelSink struct {
	C chan *si.Event
}

func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{C: make(chan *si.Event, buffer)}
}

func (s *ChannelSink) Put(ev *si.Event) error {
	s.C <- ev
	return nil
}

// SinkFunc adapts a function to an EventSink.
type SinkFunc func(*si.Event) error

func (f SinkFunc) Put(ev *si.Event) error {
	return f(ev)
}
