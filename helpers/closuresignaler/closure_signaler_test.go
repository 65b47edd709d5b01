package closuresignaler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClosureSignaler(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.False(t, s.IsClosed())
	require.NoError(t, s.Err())

	errCause := errors.New("the source ended")
	var wg sync.WaitGroup
	closedNow := make(chan bool, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			closedNow <- s.CloseWithError(ctx, errCause)
		}()
	}
	wg.Wait()
	close(closedNow)

	count := 0
	for v := range closedNow {
		if v {
			count++
		}
	}
	require.Equal(t, 1, count)

	<-s.CloseChan()
	require.True(t, s.IsClosed())
	require.ErrorIs(t, s.Err(), errCause)

	s.Close(ctx)
	require.ErrorIs(t, s.Err(), errCause)
}
