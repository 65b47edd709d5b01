// Package player plays a video stream synchronized to an audio stream:
// units pushed by a producer are queued and handed over to the sinks
// at the moments recommended by the synchronization engine.
package player

import (
	"context"
	"fmt"
	"sync"

	"github.com/xaionaro-go/avsync/avsync"
	"github.com/xaionaro-go/avsync/helpers/closuresignaler"
	"github.com/xaionaro-go/avsync/logger"
	"github.com/xaionaro-go/avsync/queue"
	"github.com/xaionaro-go/avsync/tempo"
	"github.com/xaionaro-go/avsync/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

type Player struct {
	config    Config
	engine    *avsync.Engine
	videoSink VideoSink
	audioSink AudioSink

	videoQueue *queue.Queue[Unit]
	audioQueue *queue.Queue[Unit]

	locker    xsync.Mutex
	cancelFn  context.CancelFunc
	loops     sync.WaitGroup
	loopsDone chan struct{}
	closer    *closuresignaler.ClosureSignaler

	// flushGeneration is incremented by every Flush; units pushed before
	// are never presented.
	flushGeneration atomic.Uint64

	counters counters
}

func New(
	ctx context.Context,
	cfg Config,
	videoSink VideoSink,
	audioSink AudioSink,
) (*Player, error) {
	if videoSink == nil || audioSink == nil {
		return nil, ErrNoSink
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var engineOpts []avsync.Option
	if cfg.TimeSource != nil {
		engineOpts = append(engineOpts, avsync.OptionTimeSource{Source: cfg.TimeSource})
	}

	p := &Player{
		config:    cfg,
		engine:    avsync.New(ctx, cfg.NominalVideoDuration(), cfg.NominalAudioDuration(), engineOpts...),
		videoSink: videoSink,
		audioSink: audioSink,
		loopsDone: make(chan struct{}),
		closer:    closuresignaler.New(),
	}
	p.videoQueue = p.newQueue(cfg.VideoQueue)
	p.audioQueue = p.newQueue(cfg.AudioQueue)
	logger.Debugf(ctx, "player.New: %#+v", cfg)
	return p, nil
}

func (p *Player) newQueue(limits QueueLimits) *queue.Queue[Unit] {
	return queue.New[Unit](
		limits.MinSize, limits.MaxSize,
		queue.OptionPollInterval[Unit](p.config.PollInterval),
		queue.OptionDisposeCallback[Unit](p.releaseUnit),
	)
}

// AcquireUnit returns an empty unit, from Config.UnitPool if it is set.
func (p *Player) AcquireUnit() *Unit {
	if p.config.UnitPool == nil {
		return &Unit{PTS: types.PTSNone}
	}
	return p.config.UnitPool.Get()
}

// ReleaseUnit returns a unit which was not accepted by PushVideo/PushAudio.
func (p *Player) ReleaseUnit(unit *Unit) {
	p.releaseUnit(unit)
}

func (p *Player) releaseUnit(unit *Unit) {
	p.counters.Released.Inc()
	unit.Free()
	if p.config.UnitPool != nil {
		p.config.UnitPool.Put(unit)
	}
}

func (p *Player) Engine() *avsync.Engine {
	return p.engine
}

// PushVideo passes the ownership of the frame to the player, blocking while
// the video queue is full. On false the caller still owns the unit.
func (p *Player) PushVideo(ctx context.Context, unit *Unit) bool {
	if p.closer.IsClosed() {
		return false
	}
	unit.flushGeneration = p.flushGeneration.Load()
	return p.videoQueue.Enqueue(ctx, unit)
}

// PushAudio is the audio counterpart of PushVideo.
func (p *Player) PushAudio(ctx context.Context, unit *Unit) bool {
	if p.closer.IsClosed() {
		return false
	}
	unit.flushGeneration = p.flushGeneration.Load()
	return p.audioQueue.Enqueue(ctx, unit)
}

// Start launches the playback loops; they run until Close is called,
// a sink fails or ctx is canceled.
func (p *Player) Start(ctx context.Context) error {
	return xsync.DoA1R1(ctx, &p.locker, p.startLocked, ctx)
}

func (p *Player) startLocked(ctx context.Context) error {
	if p.closer.IsClosed() {
		return ErrClosed
	}
	if p.cancelFn != nil {
		return ErrAlreadyStarted
	}
	ctx, cancelFn := context.WithCancel(ctx)
	p.cancelFn = cancelFn

	p.loops.Add(2)
	observability.Go(ctx, func(ctx context.Context) {
		defer p.loops.Done()
		ctx = logger.CtxWithStream(ctx, types.MediaTypeVideo)
		p.onLoopEnd(ctx, types.MediaTypeVideo, p.videoLoop(ctx))
	})
	observability.Go(ctx, func(ctx context.Context) {
		defer p.loops.Done()
		ctx = logger.CtxWithStream(ctx, types.MediaTypeAudio)
		p.onLoopEnd(ctx, types.MediaTypeAudio, p.audioLoop(ctx))
	})
	observability.Go(ctx, func(ctx context.Context) {
		p.loops.Wait()
		close(p.loopsDone)
	})
	logger.Infof(ctx, "playback started")
	return nil
}

func (p *Player) onLoopEnd(
	ctx context.Context,
	mediaType types.MediaType,
	err error,
) {
	if err == nil || ctx.Err() != nil {
		logger.Debugf(ctx, "the %s loop ended", mediaType)
		return
	}
	logger.Warnf(ctx, "the %s loop failed: %v", mediaType, err)
	p.closer.CloseWithError(ctx, err)
	p.locker.Do(ctx, func() {
		p.cancelFn()
	})
}

// Wait blocks until the playback loops end and returns the error which
// ended them, if any. It returns ErrNotStarted if Start was never called.
func (p *Player) Wait(ctx context.Context) error {
	started := xsync.DoR1(ctx, &p.locker, func() bool {
		return p.cancelFn != nil
	})
	if !started {
		return ErrNotStarted
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.loopsDone:
	}
	return p.closer.Err()
}

func (p *Player) Pause(ctx context.Context) {
	p.engine.Pause(ctx)
}

func (p *Player) Resume(ctx context.Context) {
	p.engine.Resume(ctx)
}

func (p *Player) IsPaused(ctx context.Context) bool {
	return p.engine.IsPaused(ctx)
}

// SetSpeed changes the playback speed of both streams. The audio tempo is
// changed by Config.TempoAdjuster (if set), the video follows the audio.
//
// Changes within avsync.SpeedEpsilon of the current speed are ignored
// (the adjuster is not called either).
func (p *Player) SetSpeed(ctx context.Context, speed float64) error {
	chain, err := tempo.Chain(speed)
	if err != nil {
		return err
	}
	prevSpeed := p.engine.Speed(ctx)
	if !p.engine.SetSpeed(ctx, speed) {
		logger.Debugf(ctx, "the speed change %f -> %f is ignored", prevSpeed, speed)
		return nil
	}
	if p.config.TempoAdjuster == nil {
		return nil
	}
	if err := p.config.TempoAdjuster.SetTempoChain(ctx, chain); err != nil {
		p.engine.SetSpeed(ctx, prevSpeed)
		return fmt.Errorf("unable to set the audio tempo chain %s: %w", tempo.FilterDescription(chain), err)
	}
	return nil
}

func (p *Player) Speed(ctx context.Context) float64 {
	return p.engine.Speed(ctx)
}

// Flush drops everything queued and resynchronizes from scratch
// (e.g. after a seek); the speed and the pause state are preserved.
func (p *Player) Flush(ctx context.Context) {
	logger.Debugf(ctx, "Flush")
	defer logger.Debugf(ctx, "/Flush")
	p.videoQueue.Lock(ctx)
	p.audioQueue.Lock(ctx)
	p.flushGeneration.Inc()
	p.videoQueue.Clear(ctx)
	p.audioQueue.Clear(ctx)
	p.engine.ResetClocks(ctx)
	p.videoQueue.Unlock(ctx)
	p.audioQueue.Unlock(ctx)
}

// Close stops the playback and releases every queued unit. It is safe to
// call it multiple times.
func (p *Player) Close(ctx context.Context) error {
	ctx = xcontext.DetachDone(ctx)
	logger.Debugf(ctx, "Close")
	defer logger.Debugf(ctx, "/Close")
	p.closer.Close(ctx)
	p.videoQueue.Close(ctx)
	p.audioQueue.Close(ctx)
	started := xsync.DoR1(ctx, &p.locker, func() bool {
		if p.cancelFn == nil {
			return false
		}
		p.cancelFn()
		return true
	})
	if !started {
		return nil
	}
	<-p.loopsDone
	return nil
}

func (p *Player) GetStats(ctx context.Context) Statistics {
	return Statistics{
		VideoPresented: p.counters.VideoPresented.Load(),
		AudioPlayed:    p.counters.AudioPlayed.Load(),
		SinkErrors:     p.counters.SinkErrors.Load(),
		Released:       p.counters.Released.Load(),
		Stale:          p.counters.Stale.Load(),
		Speed:          p.engine.Speed(ctx),
		Paused:         p.engine.IsPaused(ctx),
		VideoQueue:     p.videoQueue.GetStats(ctx),
		AudioQueue:     p.audioQueue.GetStats(ctx),
		Sync:           p.engine.GetStats(ctx),
	}
}
