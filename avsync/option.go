package avsync

import (
	"github.com/xaionaro-go/avsync/clock"
)

type config struct {
	TimeSource          clock.Source
	DriftAveragingCount uint
}

var defaultDriftAveragingCount = uint(50)

type Option interface {
	apply(*config)
}

type Options []Option

func (s Options) apply(cfg *config) {
	for _, opt := range s {
		opt.apply(cfg)
	}
}

func (s Options) config() config {
	cfg := config{
		DriftAveragingCount: defaultDriftAveragingCount,
	}
	s.apply(&cfg)
	if cfg.TimeSource == nil {
		cfg.TimeSource = clock.NewSystemSource()
	}
	if cfg.DriftAveragingCount == 0 {
		cfg.DriftAveragingCount = 1
	}
	return cfg
}

// OptionTimeSource replaces the wall clock (the monotonic system clock by default).
type OptionTimeSource struct {
	clock.Source
}

func (opt OptionTimeSource) apply(cfg *config) {
	cfg.TimeSource = opt.Source
}

// OptionDriftAveragingCount is how many drift measurements are averaged
// for the statistics.
type OptionDriftAveragingCount uint

func (opt OptionDriftAveragingCount) apply(cfg *config) {
	cfg.DriftAveragingCount = uint(opt)
}
