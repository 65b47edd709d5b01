package player

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/avsync/types"
)

var (
	ErrClosed         = errors.New("the player is closed")
	ErrAlreadyStarted = errors.New("the player is already started")
	ErrNotStarted     = errors.New("the player is not started")
	ErrNoSink         = errors.New("a sink is not set")
)

type ErrSink struct {
	MediaType types.MediaType
	Err       error
}

func (e ErrSink) Error() string {
	return fmt.Sprintf("the %s sink failed: %v", e.MediaType, e.Err)
}

func (e ErrSink) Unwrap() error {
	return e.Err
}
