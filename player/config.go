package player

import (
	"fmt"
	"time"

	"github.com/xaionaro-go/avsync/clock"
	"github.com/xaionaro-go/avsync/pool"
	"github.com/xaionaro-go/avsync/queue"
	"github.com/xaionaro-go/avsync/tempo"
	"github.com/xaionaro-go/avsync/types"
)

const (
	DefaultVideoQueueSize = 16
	DefaultAudioQueueSize = 64
)

type QueueLimits struct {
	MinSize uint
	MaxSize uint
}

type Config struct {
	VideoQueue QueueLimits
	AudioQueue QueueLimits

	// FrameRate and SampleRate/SamplesPerUnit define the nominal durations
	// of the video and the audio units; if unknown the corresponding clock
	// never becomes valid and the video is not synchronized.
	FrameRate      types.Rational
	SampleRate     int
	SamplesPerUnit int

	PollInterval time.Duration

	// TimeSource defaults to the monotonic system clock.
	TimeSource clock.Source

	// UnitPool receives the units after they were consumed or discarded.
	UnitPool *pool.Pool[Unit]

	TempoAdjuster tempo.Adjuster
}

func (cfg Config) withDefaults() Config {
	if cfg.VideoQueue == (QueueLimits{}) {
		cfg.VideoQueue.MaxSize = DefaultVideoQueueSize
	}
	if cfg.AudioQueue == (QueueLimits{}) {
		cfg.AudioQueue.MaxSize = DefaultAudioQueueSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = queue.DefaultPollInterval
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.FrameRate.Num < 0 || cfg.FrameRate.Den < 0 {
		return fmt.Errorf("invalid frame rate: %s", cfg.FrameRate)
	}
	if cfg.SampleRate < 0 || cfg.SamplesPerUnit < 0 {
		return fmt.Errorf("invalid audio unit format: %d samples at %d Hz", cfg.SamplesPerUnit, cfg.SampleRate)
	}
	return nil
}

func (cfg Config) NominalVideoDuration() float64 {
	return types.NominalVideoDuration(cfg.FrameRate)
}

func (cfg Config) NominalAudioDuration() float64 {
	return types.NominalAudioDuration(cfg.SamplesPerUnit, cfg.SampleRate)
}
