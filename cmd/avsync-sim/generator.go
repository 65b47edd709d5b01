package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/xaionaro-go/avsync/player"
	"github.com/xaionaro-go/avsync/ts"
	"github.com/xaionaro-go/avsync/types"
)

var microsecondTimeBase = types.Rational{Num: 1, Den: 1000000}

// generator produces synthetic media as fast as the player accepts it.
type generator struct {
	Player      *player.Player
	Config      player.Config
	Jitter      time.Duration
	VideoOffset time.Duration
}

type payload []byte

func newPayload(size int) payload {
	return make(payload, size)
}

func (g generator) ServeVideo(ctx context.Context) error {
	timeBase := types.Rational{Num: 1, Den: 90000}
	frameDuration := int64(types.NominalVideoDuration(g.Config.FrameRate) * 90000)
	offset := ts.Rescale(g.VideoOffset.Microseconds(), microsecondTimeBase, timeBase)
	jitter := ts.Rescale(g.Jitter.Microseconds(), microsecondTimeBase, timeBase)
	for idx := int64(0); ; idx++ {
		unit := g.Player.AcquireUnit()
		unit.TimeBase = timeBase
		unit.Duration = frameDuration
		unit.PTS = idx*frameDuration + offset
		if jitter > 0 {
			unit.PTS += rand.Int63n(2*jitter+1) - jitter
		}
		if unit.PTS < 0 {
			unit.PTS = types.PTSNone
		}
		unit.Payload = newPayload(64)
		if !g.Player.PushVideo(ctx, unit) {
			g.Player.ReleaseUnit(unit)
			return ctx.Err()
		}
	}
}

func (g generator) ServeAudio(ctx context.Context) error {
	timeBase := types.Rational{Num: 1, Den: g.Config.SampleRate}
	unitSamples := int64(g.Config.SamplesPerUnit)
	for idx := int64(0); ; idx++ {
		unit := g.Player.AcquireUnit()
		unit.TimeBase = timeBase
		unit.Duration = unitSamples
		unit.PTS = idx * unitSamples
		unit.Payload = newPayload(int(unitSamples) * 4)
		if !g.Player.PushAudio(ctx, unit) {
			g.Player.ReleaseUnit(unit)
			return ctx.Err()
		}
	}
}
