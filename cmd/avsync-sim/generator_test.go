package main

import (
	"context"
	"testing"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avsync/logger"
	"github.com/xaionaro-go/avsync/player"
	"github.com/xaionaro-go/avsync/types"
)

func newTestGenerator(t *testing.T) (context.Context, generator) {
	l := logrus.Default().WithLevel(logger.LevelWarning)
	ctx := logger.CtxWithLogger(context.Background(), l)
	cfg := player.Config{
		FrameRate:      types.Rational{Num: 25, Den: 1},
		SampleRate:     48000,
		SamplesPerUnit: 1024,
		UnitPool:       player.NewUnitPool(),
	}
	p, err := player.New(ctx, cfg, newDisplaySink(), newDeviceSink(1))
	require.NoError(t, err)
	t.Cleanup(func() { p.Close(ctx) })
	return ctx, generator{Player: p, Config: cfg, VideoOffset: -time.Second}
}

func TestGeneratorReleasesRejectedUnits(t *testing.T) {
	ctx, g := newTestGenerator(t)
	require.NoError(t, g.Player.Close(ctx))

	require.NoError(t, g.ServeVideo(ctx))
	require.NoError(t, g.ServeAudio(ctx))

	poolStats := g.Config.UnitPool.GetStats()
	require.Equal(t, uint64(2), poolStats.Gets)
	require.Equal(t, uint64(2), poolStats.Puts)
	require.Equal(t, uint64(2), g.Player.GetStats(ctx).Released)
}

func TestDeviceSinkFollowsSpeed(t *testing.T) {
	ctx := context.Background()
	unit := &player.Unit{
		PTS:      0,
		Duration: 4800,
		TimeBase: types.Rational{Num: 1, Den: 48000},
	}

	startTS := time.Now()
	require.NoError(t, newDeviceSink(2).PlayAudio(ctx, unit))
	elapsed := time.Since(startTS)
	require.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	require.Less(t, elapsed, time.Second)
}
