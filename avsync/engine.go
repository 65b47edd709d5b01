// Package avsync keeps a video stream presented in lock-step with an audio
// stream. The audio clock is the master: it is never delayed or rate-adjusted,
// while every video frame gets a recommended sleep which corrects the drift.
package avsync

import (
	"context"
	"math"
	"time"

	"github.com/xaionaro-go/avsync/clock"
	"github.com/xaionaro-go/avsync/indicator"
	"github.com/xaionaro-go/avsync/internal"
	"github.com/xaionaro-go/avsync/logger"
	"github.com/xaionaro-go/avsync/types"
	"github.com/xaionaro-go/typing"
	"github.com/xaionaro-go/xsync"
)

// Engine is the synchronization engine. Every method is atomic with respect
// to every other and none of them blocks beyond acquiring the internal lock.
type Engine struct {
	locker     xsync.Mutex
	timeSource clock.Source

	nominalVideoDuration float64
	nominalAudioDuration float64

	paused     bool
	speed      float64
	videoClock clock.Clock
	audioClock clock.Clock

	stats        Statistics
	driftAverage indicator.MovingAverage[int64]
}

// New returns an engine for streams with the given expected unit durations
// (in seconds; 0 if unknown, in which case the stream clock is never valid).
func New(
	ctx context.Context,
	nominalVideoDuration float64,
	nominalAudioDuration float64,
	opts ...Option,
) *Engine {
	cfg := Options(opts).config()
	e := &Engine{
		timeSource:           cfg.TimeSource,
		nominalVideoDuration: nominalVideoDuration,
		nominalAudioDuration: nominalAudioDuration,
		driftAverage:         indicator.NewMAMADefault[int64](int(cfg.DriftAveragingCount)),
	}
	e.resetLocked(ctx)
	logger.Debugf(ctx, "avsync.New: video:%v audio:%v", nominalVideoDuration, nominalAudioDuration)
	return e
}

func (e *Engine) nominalDuration(mediaType types.MediaType) float64 {
	switch mediaType {
	case types.MediaTypeVideo:
		return e.nominalVideoDuration
	case types.MediaTypeAudio:
		return e.nominalAudioDuration
	default:
		return 0
	}
}

// Reset returns both clocks, the pause flag and the speed to the initial state.
func (e *Engine) Reset(ctx context.Context) {
	e.locker.Do(ctx, func() {
		e.resetLocked(ctx)
	})
}

func (e *Engine) resetLocked(ctx context.Context) {
	e.resetClocksLocked(ctx)
	e.paused = false
	e.speed = 1.0
}

// ResetClocks is like Reset, but keeps the speed and the pause state
// (e.g. to resynchronize after a seek).
func (e *Engine) ResetClocks(ctx context.Context) {
	e.locker.Do(ctx, func() {
		e.resetClocksLocked(ctx)
	})
}

func (e *Engine) resetClocksLocked(ctx context.Context) {
	logger.Debugf(ctx, "resetting the A/V clocks")
	e.videoClock = clock.New(e.nominalVideoDuration)
	e.audioClock = clock.New(e.nominalAudioDuration)
	e.driftAverage.Reset()
	e.stats.DriftAverage = nil
}

func (e *Engine) Pause(ctx context.Context) {
	e.locker.Do(ctx, func() {
		e.setPausedLocked(ctx, true)
	})
}

func (e *Engine) Resume(ctx context.Context) {
	e.locker.Do(ctx, func() {
		e.setPausedLocked(ctx, false)
	})
}

func (e *Engine) setPausedLocked(ctx context.Context, paused bool) {
	if e.paused == paused {
		return
	}
	now := e.timeSource.Now()
	logger.Debugf(ctx, "paused: %t -> %t (at %.3f)", e.paused, paused, now)
	e.paused = paused
	e.videoClock.Touch(now)
	e.audioClock.Touch(now)
}

func (e *Engine) IsPaused(ctx context.Context) bool {
	return xsync.DoR1(ctx, &e.locker, func() bool {
		return e.paused
	})
}

// SetSpeed changes the playback speed. Non-positive values and changes
// not exceeding SpeedEpsilon are ignored; the return value tells if the
// speed was changed.
func (e *Engine) SetSpeed(ctx context.Context, speed float64) bool {
	return xsync.DoA2R1(ctx, &e.locker, e.setSpeedLocked, ctx, speed)
}

func (e *Engine) setSpeedLocked(ctx context.Context, speed float64) bool {
	if !(speed > 0) || math.Abs(e.speed-speed) <= SpeedEpsilon {
		logger.Debugf(ctx, "ignoring speed %v (current: %v)", speed, e.speed)
		return false
	}
	logger.Debugf(ctx, "speed: %v -> %v", e.speed, speed)
	e.speed = speed
	return true
}

func (e *Engine) Speed(ctx context.Context) float64 {
	return xsync.DoR1(ctx, &e.locker, func() float64 {
		return e.speed
	})
}

// UpdateAudioClock feeds the timestamp (seconds; negative if unknown) and
// the duration of the audio unit which is being played. It does nothing
// while paused.
func (e *Engine) UpdateAudioClock(
	ctx context.Context,
	pts float64,
	duration float64,
) {
	e.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		if e.paused {
			e.stats.PausedCalls++
			return
		}
		e.updateClockLocked(ctx, types.MediaTypeAudio, pts, duration)
	})
}

// UpdateVideoClock feeds the timestamp (seconds; negative if unknown) and
// the duration of the next video frame and returns how long to sleep before
// presenting it: whole milliseconds within [1ms, 100ms], or IdlePollInterval
// while paused (the video clock is untouched then).
func (e *Engine) UpdateVideoClock(
	ctx context.Context,
	pts float64,
	duration float64,
) time.Duration {
	return xsync.DoA3R1(xsync.WithNoLogging(ctx, true), &e.locker, e.updateVideoClockLocked, ctx, pts, duration)
}

func (e *Engine) updateVideoClockLocked(
	ctx context.Context,
	pts float64,
	duration float64,
) time.Duration {
	if e.paused {
		e.stats.PausedCalls++
		return IdlePollInterval
	}

	e.updateClockLocked(ctx, types.MediaTypeVideo, pts, duration)

	diff := 0.0
	if drift, ok := e.driftLocked(); ok {
		diff = drift
		avg := e.driftAverage.Update(int64(diff * 1e6))
		if e.driftAverage.Valid() {
			e.stats.DriftAverage = ptr(time.Duration(avg) * time.Microsecond)
		}
	}
	if diff <= CatchUpDrift {
		e.stats.CatchUps++
	}

	sleep := delayToSleep(ComputeDelay(e.nominalVideoDuration, e.speed, diff))
	internal.Assert(ctx, sleep >= time.Millisecond && sleep <= IdlePollInterval, sleep)
	e.stats.LastSleep = sleep
	logger.Tracef(ctx, "video frame: pts:%v dur:%v diff:%.4f speed:%v sleep:%v", pts, duration, diff, e.speed, sleep)
	return sleep
}

// updateClockLocked runs the clock update algorithm on the clock of the given
// stream and returns the wall-clock time of the update.
func (e *Engine) updateClockLocked(
	ctx context.Context,
	mediaType types.MediaType,
	pts float64,
	duration float64,
) float64 {
	now := e.timeSource.Now()
	c, stats := &e.videoClock, &e.stats.Video
	if mediaType == types.MediaTypeAudio {
		c, stats = &e.audioClock, &e.stats.Audio
	}

	flags := c.Update(now, e.nominalDuration(mediaType), pts, duration)
	stats.account(flags)
	internal.Assert(ctx, !c.IsValid || c.Duration > 0, mediaType, c.String())
	if flags.HasAny(clock.FlagJumpRejected | clock.FlagDurationRejected) {
		logger.Tracef(ctx, "%s clock corrected (%s): in_pts:%v in_dur:%v -> %s", mediaType, flags, pts, duration, c)
	}
	return now
}

// driftLocked returns the speed-scaled difference between the video and the
// audio clocks (seconds, positive if the video is ahead), if both are valid.
func (e *Engine) driftLocked() (float64, bool) {
	if !e.audioClock.IsValid || !e.videoClock.IsValid {
		return 0, false
	}
	return (e.videoClock.PTS - e.audioClock.PTS) / e.speed, true
}

// Drift returns the current speed-scaled drift of the video against the
// audio, if both clocks are valid.
func (e *Engine) Drift(ctx context.Context) typing.Optional[time.Duration] {
	return xsync.DoR1(ctx, &e.locker, func() typing.Optional[time.Duration] {
		diff, ok := e.driftLocked()
		if !ok {
			return typing.Optional[time.Duration]{}
		}
		return typing.Opt(time.Duration(diff * float64(time.Second)))
	})
}

func (e *Engine) VideoClock(ctx context.Context) clock.Clock {
	return xsync.DoR1(ctx, &e.locker, func() clock.Clock {
		return e.videoClock
	})
}

func (e *Engine) AudioClock(ctx context.Context) clock.Clock {
	return xsync.DoR1(ctx, &e.locker, func() clock.Clock {
		return e.audioClock
	})
}

func (e *Engine) GetStats(ctx context.Context) Statistics {
	return xsync.DoR1(ctx, &e.locker, func() Statistics {
		stats := e.stats
		if stats.DriftAverage != nil {
			stats.DriftAverage = ptr(*stats.DriftAverage)
		}
		return stats
	})
}
