// Package closuresignaler signals the closure of a resource to any number
// of goroutines, remembering why it was closed.
package closuresignaler

import (
	"context"
	"sync"

	"github.com/xaionaro-go/avsync/logger"
)

type ClosureSignaler struct {
	closeOnce sync.Once
	c         chan struct{}
	err       error
}

func New() *ClosureSignaler {
	return &ClosureSignaler{
		c: make(chan struct{}),
	}
}

func (c *ClosureSignaler) CloseChan() <-chan struct{} {
	return c.c
}

// Close closes the signaler (if it is not closed yet) without a cause.
func (c *ClosureSignaler) Close(ctx context.Context) {
	c.CloseWithError(ctx, nil)
}

// CloseWithError closes the signaler, recording the cause. Only the first
// call has any effect; it returns true if this was that call.
func (c *ClosureSignaler) CloseWithError(ctx context.Context, err error) bool {
	closedNow := false
	c.closeOnce.Do(func() {
		logger.Debugf(ctx, "closing: %v", err)
		c.err = err
		close(c.c)
		closedNow = true
	})
	return closedNow
}

func (c *ClosureSignaler) IsClosed() bool {
	select {
	case <-c.c:
		return true
	default:
		return false
	}
}

// Err returns the cause passed to CloseWithError; it is nil while the
// signaler is open.
func (c *ClosureSignaler) Err() error {
	if !c.IsClosed() {
		return nil
	}
	return c.err
}
