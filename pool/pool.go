// Package pool recycles media units between the producer and the sinks.
package pool

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// ReuseMemory may be disabled to make every Put a no-op (e.g. to hunt
// use-after-release bugs).
var ReuseMemory = true

type Pool[T any] struct {
	pool      sync.Pool
	resetFunc func(*T)

	allocated atomic.Uint64
	gets      atomic.Uint64
	puts      atomic.Uint64
}

// NewPool returns a pool allocating with allocFunc and cleaning up returned
// items with resetFunc. If freeFunc is not nil it is called on items
// which are garbage collected without being returned.
func NewPool[T any](
	allocFunc func() *T,
	resetFunc func(*T),
	freeFunc func(*T),
) *Pool[T] {
	p := &Pool[T]{
		resetFunc: resetFunc,
	}
	p.pool.New = func() any {
		p.allocated.Inc()
		v := allocFunc()
		if freeFunc != nil {
			runtime.SetFinalizer(v, freeFunc)
		}
		return v
	}
	return p
}

func (p *Pool[T]) Get() *T {
	p.gets.Inc()
	return p.pool.Get().(*T)
}

func (p *Pool[T]) Put(items ...*T) {
	if !ReuseMemory {
		return
	}
	for _, item := range items {
		if item == nil {
			continue
		}
		if p.resetFunc != nil {
			p.resetFunc(item)
		}
		p.puts.Inc()
		p.pool.Put(item)
	}
}

type Statistics struct {
	Allocated uint64
	Gets      uint64
	Puts      uint64
}

func (p *Pool[T]) GetStats() Statistics {
	return Statistics{
		Allocated: p.allocated.Load(),
		Gets:      p.gets.Load(),
		Puts:      p.puts.Load(),
	}
}
