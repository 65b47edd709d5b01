// clock.go implements the per-stream presentation clock and its update algorithm.

// Package clock tracks the presentation time of a single media stream.
package clock

import (
	"fmt"
	"math"
)

// Clock is the timestamp-tracking record of one stream (audio or video).
// All times are in seconds.
type Clock struct {
	// IsValid is false until a consistent timestamp sequence is observed.
	IsValid bool

	PTS      float64
	Duration float64

	// LastPTS is negative until the first update.
	LastPTS      float64
	LastDuration float64

	// UpdateTime is the wall-clock time of the last update.
	UpdateTime float64
}

// New returns a clock for a stream which nominally produces units of the given duration.
func New(nominalDuration float64) Clock {
	return Clock{
		Duration: nominalDuration,
		LastPTS:  -1,
	}
}

// Touch moves only the wall-clock update time.
func (c *Clock) Touch(now float64) {
	c.UpdateTime = now
}

// Update consumes the timestamp and the duration of a newly presented unit.
//
// pts < 0 means "unknown, continue from the previous unit"; pts == 0 is a
// legitimate timestamp only if the previous one was zero as well.
// Durations and timestamps which deviate too much from what is expected
// are replaced by extrapolated values.
func (c *Clock) Update(
	now float64,
	nominalDuration float64,
	pts float64,
	duration float64,
) (flags UpdateFlags) {
	defer func() {
		c.UpdateTime = now
		if !c.IsValid {
			flags.Set(FlagInvalidated)
		}
	}()

	if nominalDuration <= 0 {
		c.IsValid = false
		return FlagNoNominalDuration
	}

	c.LastPTS = c.PTS
	c.LastDuration = c.Duration

	switch {
	case duration <= 0:
		c.Duration = nominalDuration
		flags.Set(FlagDurationDefaulted)
	case math.Abs(duration-c.LastDuration) >= nominalDuration/2 ||
		math.Abs(duration-nominalDuration) >= nominalDuration/2:
		c.Duration = nominalDuration
		flags.Set(FlagDurationRejected)
	default:
		c.Duration = duration
	}

	switch {
	case pts < 0:
		flags.Set(c.continueFromLast())
	case pts == 0:
		c.PTS = 0
		c.IsValid = c.LastPTS == 0
	default:
		c.PTS = pts
		if math.Abs(c.PTS-c.LastPTS) >= c.Duration/2 {
			flags.Set(FlagJumpRejected)
			flags.Set(c.continueFromLast())
		} else {
			c.IsValid = true
		}
	}

	return flags
}

func (c *Clock) continueFromLast() UpdateFlags {
	if c.LastPTS < 0 {
		c.PTS = 0
		c.IsValid = false
		return 0
	}

	c.PTS = c.LastPTS + c.Duration
	c.IsValid = true
	return FlagExtrapolated
}

func (c Clock) String() string {
	return fmt.Sprintf(
		"Clock(valid:%t; pts:%.6f; dur:%.6f; last_pts:%.6f; last_dur:%.6f; updated_at:%.6f)",
		c.IsValid, c.PTS, c.Duration, c.LastPTS, c.LastDuration, c.UpdateTime,
	)
}
