// delay.go implements the policy that turns the audio/video drift into a frame delay.

package avsync

import (
	"time"
)

const (
	// IdlePollInterval is returned to the video loop while the playback is paused.
	IdlePollInterval = 100 * time.Millisecond

	// MinDelay and MaxDelay bound every delay recommended for a video frame.
	MinDelay = 0.001
	MaxDelay = 0.1

	// If the video is behind the audio by this much (in seconds, scaled by speed)
	// the frame is shown as soon as possible.
	CatchUpDrift = -0.1

	// SetSpeed ignores changes smaller than this.
	SpeedEpsilon = 0.01
)

// speedRegime is the set of drift thresholds (seconds) and delay multipliers
// used within a range of playback speeds.
type speedRegime struct {
	Name           string
	LargeDrift     float64
	SmallDrift     float64
	LargeAheadMul  float64
	SmallAheadMul  float64
	LargeBehindMul float64
	SmallBehindMul float64
}

var (
	regimeSlow = speedRegime{
		Name:           "slow",
		LargeDrift:     0.05,
		SmallDrift:     0.02,
		LargeAheadMul:  1.5,
		SmallAheadMul:  1.1,
		LargeBehindMul: 0.5,
		SmallBehindMul: 0.9,
	}
	regimeFast = speedRegime{
		Name:           "fast",
		LargeDrift:     0.15,
		SmallDrift:     0.06,
		LargeAheadMul:  1.5,
		SmallAheadMul:  1.1,
		LargeBehindMul: 0.5,
		SmallBehindMul: 0.9,
	}
	regimeNormal = speedRegime{
		Name:           "normal",
		LargeDrift:     0.02,
		SmallDrift:     0.01,
		LargeAheadMul:  1.2,
		SmallAheadMul:  1.05,
		LargeBehindMul: 0.8,
		SmallBehindMul: 0.95,
	}
)

func regimeForSpeed(speed float64) speedRegime {
	switch {
	case speed <= 0.8:
		return regimeSlow
	case speed >= 1.2:
		return regimeFast
	default:
		return regimeNormal
	}
}

func (r speedRegime) multiplier(diff float64) float64 {
	switch {
	case diff > r.LargeDrift:
		return r.LargeAheadMul
	case diff > r.SmallDrift:
		return r.SmallAheadMul
	case diff < -r.LargeDrift:
		return r.LargeBehindMul
	case diff < -r.SmallDrift:
		return r.SmallBehindMul
	default:
		return 1
	}
}

// ComputeDelay returns how long (in seconds) to wait before presenting the
// next video frame given the nominal frame duration, the playback speed and
// the speed-scaled drift of the video clock against the audio clock
// (positive means the video is ahead). The result is within [MinDelay, MaxDelay].
func ComputeDelay(
	nominalVideoDuration float64,
	speed float64,
	diff float64,
) float64 {
	if diff <= CatchUpDrift {
		return MinDelay
	}

	delay := nominalVideoDuration / speed
	delay *= regimeForSpeed(speed).multiplier(diff)
	return max(MinDelay, min(delay, MaxDelay))
}

// delayToSleep converts a delay in seconds to whole milliseconds.
func delayToSleep(delay float64) time.Duration {
	return time.Duration(int64(delay*1000)) * time.Millisecond
}
