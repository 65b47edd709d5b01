package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/avsync/logger"
)

// SetFinalizerClose arranges obj.Close to be called once obj becomes unreachable,
// so owned items are released even if the owner forgot to.
func SetFinalizerClose[T interface{ Close(context.Context) }](
	ctx context.Context,
	obj T,
) {
	runtime.SetFinalizer(obj, func(obj T) {
		logger.Debugf(ctx, "finalizing %T", obj)
		obj.Close(ctx)
	})
}
