package main

import (
	"context"
	"time"

	"github.com/xaionaro-go/avsync/player"
	"github.com/xaionaro-go/avsync/ts"
	"go.uber.org/atomic"
)

// deviceSink imitates an audio device: it consumes units in real time.
type deviceSink struct {
	Speed float64
}

func newDeviceSink(speed float64) *deviceSink {
	return &deviceSink{Speed: speed}
}

func (s *deviceSink) PlayAudio(ctx context.Context, unit *player.Unit) error {
	d := time.Duration(float64(ts.NewConverter(unit.TimeBase).ToDuration(unit.Duration)) / s.Speed)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return nil
	case <-t.C:
		return nil
	}
}

// displaySink imitates a display: it only measures how regularly frames arrive.
type displaySink struct {
	LastPresent time.Time
	LateFrames  atomic.Int64
}

func newDisplaySink() *displaySink {
	return &displaySink{}
}

func (s *displaySink) PresentVideo(ctx context.Context, unit *player.Unit) error {
	now := time.Now()
	expected := ts.NewConverter(unit.TimeBase).ToDuration(unit.Duration)
	if !s.LastPresent.IsZero() && expected > 0 && now.Sub(s.LastPresent) > 2*expected {
		s.LateFrames.Inc()
	}
	s.LastPresent = now
	return nil
}
