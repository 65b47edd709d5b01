package player

import (
	"context"
)

// VideoSink displays video frames. It must not retain the unit after
// returning: the unit is released right after that.
type VideoSink interface {
	PresentVideo(ctx context.Context, unit *Unit) error
}

// AudioSink plays audio units; it is expected to block for roughly as long
// as the unit takes to play, since the audio is the master clock.
// It must not retain the unit after returning.
type AudioSink interface {
	PlayAudio(ctx context.Context, unit *Unit) error
}
