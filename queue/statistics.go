package queue

import (
	"go.uber.org/atomic"
)

type counters struct {
	Enqueued atomic.Uint64
	Dequeued atomic.Uint64
	Disposed atomic.Uint64
	Rejected atomic.Uint64
	Waits    atomic.Uint64
}

type Statistics struct {
	Enqueued uint64 `json:",omitempty"`
	Dequeued uint64 `json:",omitempty"`
	Disposed uint64 `json:",omitempty"`

	// Rejected counts Enqueue calls which returned false.
	Rejected uint64 `json:",omitempty"`

	// Waits counts how many times a caller had to block on a full or an empty queue.
	Waits uint64 `json:",omitempty"`

	Size    uint
	MaxSize uint
}

func (c *counters) snapshot() Statistics {
	return Statistics{
		Enqueued: c.Enqueued.Load(),
		Dequeued: c.Dequeued.Load(),
		Disposed: c.Disposed.Load(),
		Rejected: c.Rejected.Load(),
		Waits:    c.Waits.Load(),
	}
}
