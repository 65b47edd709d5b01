package avsync

import (
	"time"

	"github.com/xaionaro-go/avsync/clock"
)

type ClockStatistics struct {
	Updates           uint64 `json:",omitempty"`
	Extrapolated      uint64 `json:",omitempty"`
	JumpsRejected     uint64 `json:",omitempty"`
	DurationsRejected uint64 `json:",omitempty"`
	Invalidated       uint64 `json:",omitempty"`
}

func (s *ClockStatistics) account(flags clock.UpdateFlags) {
	s.Updates++
	if flags.HasAll(clock.FlagExtrapolated) {
		s.Extrapolated++
	}
	if flags.HasAll(clock.FlagJumpRejected) {
		s.JumpsRejected++
	}
	if flags.HasAll(clock.FlagDurationRejected) {
		s.DurationsRejected++
	}
	if flags.HasAll(clock.FlagInvalidated) {
		s.Invalidated++
	}
}

type Statistics struct {
	Audio ClockStatistics
	Video ClockStatistics

	// CatchUps counts video frames released immediately because the video was far behind.
	CatchUps uint64 `json:",omitempty"`

	// PausedCalls counts clock updates received while paused.
	PausedCalls uint64 `json:",omitempty"`

	LastSleep time.Duration

	// DriftAverage is set once enough drift measurements are collected.
	DriftAverage *time.Duration `json:",omitempty"`
}
