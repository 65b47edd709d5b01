package player

import (
	"context"
	"time"

	"github.com/xaionaro-go/avsync/avsync"
	"github.com/xaionaro-go/avsync/logger"
	"github.com/xaionaro-go/avsync/queue"
	"github.com/xaionaro-go/avsync/types"
)

func (p *Player) videoLoop(ctx context.Context) error {
	for {
		unit, ok := p.nextUnit(ctx, p.videoQueue)
		if !ok {
			return nil
		}
		err := p.presentVideo(ctx, unit)
		p.releaseUnit(unit)
		if err != nil {
			return err
		}
	}
}

func (p *Player) presentVideo(ctx context.Context, unit *Unit) error {
	if !p.waitWhilePaused(ctx) {
		return nil
	}
	if p.isStale(ctx, unit) {
		return nil
	}
	sleep := p.engine.UpdateVideoClock(ctx, unit.PTSSeconds(), unit.DurationSeconds())
	if !p.sleep(ctx, sleep) {
		return nil
	}
	if p.isStale(ctx, unit) {
		return nil
	}
	if err := p.videoSink.PresentVideo(ctx, unit); err != nil {
		p.counters.SinkErrors.Inc()
		return ErrSink{MediaType: types.MediaTypeVideo, Err: err}
	}
	p.counters.VideoPresented.Inc()
	return nil
}

func (p *Player) audioLoop(ctx context.Context) error {
	for {
		unit, ok := p.nextUnit(ctx, p.audioQueue)
		if !ok {
			return nil
		}
		err := p.playAudio(ctx, unit)
		p.releaseUnit(unit)
		if err != nil {
			return err
		}
	}
}

func (p *Player) playAudio(ctx context.Context, unit *Unit) error {
	if !p.waitWhilePaused(ctx) {
		return nil
	}
	if p.isStale(ctx, unit) {
		return nil
	}
	p.engine.UpdateAudioClock(ctx, unit.PTSSeconds(), unit.DurationSeconds())
	if err := p.audioSink.PlayAudio(ctx, unit); err != nil {
		p.counters.SinkErrors.Inc()
		return ErrSink{MediaType: types.MediaTypeAudio, Err: err}
	}
	p.counters.AudioPlayed.Inc()
	return nil
}

// nextUnit dequeues the next unit, riding out the periods when the queue is
// locked by Flush; it returns false once the loop should end.
func (p *Player) nextUnit(
	ctx context.Context,
	q *queue.Queue[Unit],
) (*Unit, bool) {
	for {
		unit, ok := q.Dequeue(ctx)
		if ok {
			return unit, true
		}
		if p.closer.IsClosed() {
			return nil, false
		}
		logger.Tracef(ctx, "%s is locked, retrying", q)
		if !p.sleep(ctx, p.config.PollInterval) {
			return nil, false
		}
	}
}

// isStale reports whether a Flush happened after the unit was pushed.
func (p *Player) isStale(ctx context.Context, unit *Unit) bool {
	if unit.flushGeneration == p.flushGeneration.Load() {
		return false
	}
	logger.Debugf(ctx, "dropping a unit pushed before the flush: %s", unit)
	p.counters.Stale.Inc()
	return true
}

func (p *Player) waitWhilePaused(ctx context.Context) bool {
	for p.engine.IsPaused(ctx) {
		if !p.sleep(ctx, avsync.IdlePollInterval) {
			return false
		}
	}
	return true
}

// sleep returns false if the player is stopping.
func (p *Player) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-p.closer.CloseChan():
		return false
	case <-t.C:
		return true
	}
}
