// Package internal holds helpers shared by avsync packages but not exported.
package internal

import (
	"context"

	"github.com/xaionaro-go/avsync/logger"
)

// Assert panics (through the panic log level) if mustBeTrue is false.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed", extraArgs)
}
