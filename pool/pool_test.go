package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type buffer struct {
	Data []byte
}

func TestPool(t *testing.T) {
	p := NewPool(
		func() *buffer { return &buffer{Data: make([]byte, 0, 16)} },
		func(b *buffer) { b.Data = b.Data[:0] },
		nil,
	)

	b := p.Get()
	require.NotNil(t, b)
	b.Data = append(b.Data, 1, 2, 3)
	p.Put(b, nil)

	stats := p.GetStats()
	require.Equal(t, uint64(1), stats.Gets)
	require.Equal(t, uint64(1), stats.Puts)
	require.Equal(t, uint64(1), stats.Allocated)

	// sync.Pool gives no guarantee the item comes back, but it must be reset if it does
	b = p.Get()
	require.Empty(t, b.Data)
}
