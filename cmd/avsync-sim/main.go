package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/avsync/player"
	"github.com/xaionaro-go/avsync/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xcontext"
	"golang.org/x/sync/errgroup"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [flags]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	loggerLevel := logger.LevelWarning
	pflag.Var(&loggerLevel, "log-level", "Log level")
	duration := pflag.Duration("duration", 10*time.Second, "how long to play")
	frameRate := types.Rational{Num: 30, Den: 1}
	pflag.Var(&frameRate, "fps", "video frame rate (e.g. 30 or 30000/1001)")
	sampleRate := pflag.Int("sample-rate", 48000, "audio sample rate")
	samplesPerUnit := pflag.Int("samples-per-unit", 1024, "audio samples per unit")
	jitter := pflag.Duration("jitter", 0, "max random deviation of the video timestamps")
	speed := pflag.Float64("speed", 1, "playback speed")
	queueSize := pflag.Uint("queue-size", player.DefaultVideoQueueSize, "video queue size (the audio queue is 4 times larger)")
	videoOffset := pflag.Duration("video-offset", 0, "constant shift of the video timestamps against the audio ones")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	pflag.Parse()
	if pflag.NArg() != 0 {
		pflag.Usage()
		os.Exit(1)
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func(ctx context.Context) {
			l.Error(http.ListenAndServe(*netPprofAddr, nil))
		})
	}

	cfg := player.Config{
		VideoQueue:     player.QueueLimits{MaxSize: *queueSize},
		AudioQueue:     player.QueueLimits{MaxSize: *queueSize * 4},
		FrameRate:      frameRate,
		SampleRate:     *sampleRate,
		SamplesPerUnit: *samplesPerUnit,
		UnitPool:       player.NewUnitPool(),
	}
	audioSink := newDeviceSink(*speed)
	videoSink := newDisplaySink()
	p, err := player.New(ctx, cfg, videoSink, audioSink)
	if err != nil {
		l.Fatal(err)
	}
	if err := p.SetSpeed(ctx, *speed); err != nil {
		l.Fatal(err)
	}
	l.Debugf("config: %s", spew.Sdump(cfg))

	ctx, cancelFn := context.WithTimeout(ctx, *duration)
	defer cancelFn()
	if err := p.Start(ctx); err != nil {
		l.Fatal(err)
	}

	gen := generator{
		Player:      p,
		Config:      cfg,
		Jitter:      *jitter,
		VideoOffset: *videoOffset,
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return gen.ServeVideo(ctx)
	})
	g.Go(func() error {
		return gen.ServeAudio(ctx)
	})
	g.Go(func() error {
		return p.Wait(ctx)
	})
	g.Go(func() error {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
				printStats(p.GetStats(ctx), videoSink)
			}
		}
	})
	err = g.Wait()
	if closeErr := p.Close(xcontext.DetachDone(ctx)); closeErr != nil {
		l.Error(closeErr)
	}
	stats := p.GetStats(xcontext.DetachDone(ctx))
	l.Debugf("final stats: %s", spew.Sdump(stats))
	printStats(stats, videoSink)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		l.Fatal(err)
	}
}

func printStats(stats player.Statistics, videoSink *displaySink) {
	drift := "n/a"
	if stats.Sync.DriftAverage != nil {
		drift = stats.Sync.DriftAverage.String()
	}
	fmt.Printf(
		"video:%s (catch-ups:%s; jumps:%s) audio:%s queues:%d/%d speed:%v drift:%s late:%s\n",
		humanize.Comma(int64(stats.VideoPresented)),
		humanize.Comma(int64(stats.Sync.CatchUps)),
		humanize.Comma(int64(stats.Sync.Video.JumpsRejected)),
		humanize.Comma(int64(stats.AudioPlayed)),
		stats.VideoQueue.Size, stats.AudioQueue.Size,
		stats.Speed,
		drift,
		humanize.Comma(videoSink.LateFrames.Load()),
	)
}
