package player

import (
	"github.com/xaionaro-go/avsync/avsync"
	"github.com/xaionaro-go/avsync/queue"
	"go.uber.org/atomic"
)

type counters struct {
	VideoPresented atomic.Uint64
	AudioPlayed    atomic.Uint64
	SinkErrors     atomic.Uint64
	Released       atomic.Uint64
	Stale          atomic.Uint64
}

type Statistics struct {
	VideoPresented uint64
	AudioPlayed    uint64
	SinkErrors     uint64 `json:",omitempty"`
	Released       uint64

	// Stale counts the units dropped because a Flush happened while
	// they were being played.
	Stale uint64 `json:",omitempty"`

	Speed  float64
	Paused bool

	VideoQueue queue.Statistics
	AudioQueue queue.Statistics
	Sync       avsync.Statistics
}
