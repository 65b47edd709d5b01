package ts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/avsync/types"
)

func TestConverterSeconds(t *testing.T) {
	c := NewConverter(types.Rational{Num: 1, Den: 90000})
	require.Equal(t, 1.0, c.Seconds(90000))
	require.Equal(t, 0.0, c.Seconds(0))
	require.Equal(t, types.PTSUnknownSeconds, c.Seconds(types.PTSNone))
	require.InDelta(t, 1.0/30, c.Seconds(3000), 1e-12)

	require.Equal(t, types.PTSUnknownSeconds, Converter{}.Seconds(100))
}

func TestConverterDuration(t *testing.T) {
	c := NewConverter(types.Rational{Num: 1, Den: 48000})
	require.InDelta(t, 1024.0/48000, c.Duration(1024), 1e-12)
	require.Zero(t, c.Duration(0))
	require.Zero(t, c.Duration(-5))
	require.Equal(t, 500*time.Millisecond, c.ToDuration(24000))
}

func TestRescale(t *testing.T) {
	require.Equal(t, int64(90000), Rescale(1000, types.Rational{Num: 1, Den: 1000}, types.Rational{Num: 1, Den: 90000}))
	require.Equal(t, types.PTSNone, Rescale(types.PTSNone, types.Rational{Num: 1, Den: 1000}, types.Rational{Num: 1, Den: 90000}))
}
