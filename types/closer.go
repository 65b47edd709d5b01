// closer.go defines the release interfaces recognized when an owned item is dropped.

package types

import (
	"context"
)

type Closer interface {
	Close(context.Context) error
}

// Freer is implemented by items which hold resources outside of the Go heap
// (frame buffers, device handles).
type Freer interface {
	Free()
}
