package queue

import (
	"context"
	"io"

	"github.com/xaionaro-go/avsync/logger"
	"github.com/xaionaro-go/avsync/types"
)

// defaultDispose releases an item nobody is going to dequeue anymore.
func defaultDispose[T any](ctx context.Context, item *T) {
	switch item := any(item).(type) {
	case types.Freer:
		item.Free()
	case types.Closer:
		if err := item.Close(ctx); err != nil {
			logger.Errorf(ctx, "unable to close %T: %v", item, err)
		}
	case io.Closer:
		if err := item.Close(); err != nil {
			logger.Errorf(ctx, "unable to close %T: %v", item, err)
		}
	}
}
