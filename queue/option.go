package queue

import (
	"time"
)

// DefaultPollInterval is how long a blocked Enqueue or Dequeue waits
// before re-checking the lock flag, even if nobody woke it up.
const DefaultPollInterval = 50 * time.Millisecond

type config[T any] struct {
	PollInterval    time.Duration
	DisposeCallback func(*T)
}

type Option[T any] interface {
	apply(*config[T])
}

type Options[T any] []Option[T]

func (s Options[T]) apply(cfg *config[T]) {
	for _, opt := range s {
		opt.apply(cfg)
	}
}

func (s Options[T]) config() config[T] {
	cfg := config[T]{
		PollInterval: DefaultPollInterval,
	}
	s.apply(&cfg)
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return cfg
}

type OptionPollInterval[T any] time.Duration

func (opt OptionPollInterval[T]) apply(cfg *config[T]) {
	cfg.PollInterval = time.Duration(opt)
}

// OptionDisposeCallback is called for every item discarded by Clear.
// See also Queue.SetDisposeCallback.
type OptionDisposeCallback[T any] func(*T)

func (opt OptionDisposeCallback[T]) apply(cfg *config[T]) {
	cfg.DisposeCallback = opt
}
