package mocks

import (
	"github.com/stretchr/testify/mock"

	si "github.com/Fewbytes/shardtail/interface"
)

type Checkpointer struct {
	mock.Mock
}

func (m *Checkpointer) Load(stream, shardID string) (*si.Checkpoint, error) {
	ret := m.Called(stream, shardID)

	var r0 *si.Checkpoint
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*si.Checkpoint)
	}
	r1 := ret.Error(1)

	return r0, r1
}

func (m *Checkpointer) Save(_a0 *si.Checkpoint) error {
	ret := m.Called(_a0)

	r0 := ret.Error(0)

	return r0
}

func (m *Checkpointer) Close() error {
	ret := m.Called()

	r0 := ret.Error(0)

	return r0
}
