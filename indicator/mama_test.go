package indicator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMAMA(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		m := NewMAMADefault[int64](50)
		for range 100 {
			require.Equal(t, int64(100), m.Update(100))
		}
		require.True(t, m.Valid())
	})

	t.Run("0-100", func(t *testing.T) {
		m := NewMAMA[int64](50, 0.3, 0.05)
		for i := int64(0); i <= 100; i++ {
			v := m.Update(i)
			require.True(t, i/2 <= v && v <= i, "%d: %d", i, v)
		}
	})

	t.Run("0,100,0,100...", func(t *testing.T) {
		m := NewMAMA[int64](50, 0.3, 0.05)
		for i := range 100 {
			v := m.Update(0)
			if i > 50 {
				require.True(t, 40 <= v && v <= 60, "%d: %d", i, v)
			}

			v = m.Update(100)
			if i > 50 {
				require.True(t, 40 <= v && v <= 60, "%d: %d", i, v)
			}
		}
	})

	t.Run("reset", func(t *testing.T) {
		m := NewMAMADefault[float64](50)
		for range 50 {
			m.Update(1)
		}
		require.True(t, m.Valid())
		m.Reset()
		require.False(t, m.Valid())
		require.Equal(t, float64(7), m.Update(7))
		require.Equal(t, int64(50), m.InitPeriod())
	})
}

func TestRingOrder(t *testing.T) {
	r := newRing(3)
	dst := make([]float64, 3)
	for _, v := range []float64{1, 2, 3, 4} {
		r.push(v)
	}
	r.orderedInto(dst)
	require.Equal(t, []float64{2, 3, 4}, dst)
}
