package logger

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// CtxWithLogger returns a context carrying the logger; all the avsync
// packages log through it.
func CtxWithLogger(ctx context.Context, l Logger) context.Context {
	return logger.CtxWithLogger(ctx, l)
}

// CtxWithStream tags every log entry made with the returned context by the
// media stream (e.g. "video") it is about.
func CtxWithStream(ctx context.Context, stream fmt.Stringer) context.Context {
	return belt.WithField(ctx, "media_type", stream.String())
}
