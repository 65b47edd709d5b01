package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockNoNominalDuration(t *testing.T) {
	c := New(0)
	flags := c.Update(5, 0, 1.0, 0.04)
	require.True(t, flags.HasAll(FlagNoNominalDuration|FlagInvalidated), flags.String())
	require.False(t, c.IsValid)
	require.Equal(t, float64(5), c.UpdateTime)
	require.Equal(t, float64(0), c.PTS)
	require.Equal(t, float64(-1), c.LastPTS)
}

func TestClockContinuousSequence(t *testing.T) {
	c := New(0.04)
	var prevPTS float64
	for i, pts := range []float64{1.0, 1.04, 1.08} {
		c.Update(float64(i), 0.04, pts, 0.04)
		require.True(t, c.IsValid, "%d: %s", i, c)
		require.Greater(t, c.PTS, prevPTS, "%d: %s", i, c)
		prevPTS = c.PTS
	}
}

func TestClockSteadyStreamTracksTimestamps(t *testing.T) {
	c := New(0.04)
	c.Update(0, 0.04, 0, 0.04)
	require.True(t, c.IsValid)

	for i := 1; i <= 10; i++ {
		pts := float64(i) * 0.04
		c.Update(float64(i), 0.04, pts, 0.04)
		require.True(t, c.IsValid)
		require.InDelta(t, pts, c.PTS, 1e-9)
	}
}

func TestClockAcceptsCloseTimestamp(t *testing.T) {
	c := New(0.04)
	c.Update(0, 0.04, 0, 0.04)

	flags := c.Update(1, 0.04, 0.01, 0.04)
	require.False(t, flags.HasAny(FlagJumpRejected|FlagExtrapolated), flags.String())
	require.True(t, c.IsValid)
	require.Equal(t, 0.01, c.PTS)
}

func TestClockResyncOnUnknownPTS(t *testing.T) {
	c := New(0.04)
	c.PTS = 2.0
	c.IsValid = true

	flags := c.Update(1, 0.04, -1, 0.04)
	require.True(t, flags.HasAll(FlagExtrapolated), flags.String())
	require.True(t, c.IsValid)
	require.InDelta(t, 2.04, c.PTS, 1e-9)
	require.Equal(t, 2.0, c.LastPTS)
}

func TestClockUnknownPTSWithoutHistory(t *testing.T) {
	c := New(0.04)
	c.PTS = -1 // as if nothing valid was ever seen
	c.Update(1, 0.04, -1, 0.04)
	require.False(t, c.IsValid)
	require.Equal(t, float64(0), c.PTS)
}

func TestClockZeroPTS(t *testing.T) {
	t.Run("twice", func(t *testing.T) {
		c := New(0.04)
		c.Update(0, 0.04, 0, 0.04)
		require.True(t, c.IsValid)
		c.Update(1, 0.04, 0, 0.04)
		require.True(t, c.IsValid)
	})

	t.Run("after-non-zero", func(t *testing.T) {
		c := New(0.04)
		c.Update(0, 0.04, 0, 0.04)
		c.Update(1, 0.04, 0.04, 0.04)
		require.True(t, c.IsValid)
		flags := c.Update(2, 0.04, 0, 0.04)
		require.False(t, c.IsValid)
		require.True(t, flags.HasAll(FlagInvalidated))
		require.Equal(t, float64(0), c.PTS)
	})
}

func TestClockJumpIsExtrapolated(t *testing.T) {
	c := New(0.04)
	c.Update(0, 0.04, 0, 0.04)
	c.Update(1, 0.04, 0.04, 0.04)

	flags := c.Update(2, 0.04, 10.0, 0.04)
	require.True(t, flags.HasAll(FlagJumpRejected|FlagExtrapolated), flags.String())
	require.True(t, c.IsValid)
	require.InDelta(t, 0.08, c.PTS, 1e-9)
}

func TestClockDurationResolution(t *testing.T) {
	type testCase struct {
		name         string
		lastDuration float64
		duration     float64
		expected     float64
		expectedFlag UpdateFlags
	}
	for _, tc := range []testCase{
		{name: "missing", lastDuration: 0.04, duration: 0, expected: 0.04, expectedFlag: FlagDurationDefaulted},
		{name: "negative", lastDuration: 0.04, duration: -0.04, expected: 0.04, expectedFlag: FlagDurationDefaulted},
		{name: "close", lastDuration: 0.04, duration: 0.041, expected: 0.041},
		{name: "far-from-nominal", lastDuration: 0.04, duration: 0.07, expected: 0.04, expectedFlag: FlagDurationRejected},
		{name: "far-from-previous", lastDuration: 0.01, duration: 0.04, expected: 0.04, expectedFlag: FlagDurationRejected},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := New(0.04)
			c.Duration = tc.lastDuration
			flags := c.Update(0, 0.04, -1, tc.duration)
			require.InDelta(t, tc.expected, c.Duration, 1e-12)
			require.Equal(t, tc.lastDuration, c.LastDuration)
			if tc.expectedFlag != 0 {
				require.True(t, flags.HasAll(tc.expectedFlag), flags.String())
			} else {
				require.False(t, flags.HasAny(FlagDurationDefaulted|FlagDurationRejected), flags.String())
			}
		})
	}
}

func TestClockDurationToleranceBoundary(t *testing.T) {
	c := New(0.5)
	flags := c.Update(0, 0.5, -1, 0.75)
	require.True(t, flags.HasAll(FlagDurationRejected), flags.String())
	require.Equal(t, 0.5, c.Duration)

	c = New(0.5)
	flags = c.Update(0, 0.5, -1, 0.625)
	require.False(t, flags.HasAny(FlagDurationRejected), flags.String())
	require.Equal(t, 0.625, c.Duration)
}

func TestClockValidImpliesPositiveDuration(t *testing.T) {
	c := New(0.02)
	for i, in := range [][2]float64{
		{0, 0}, {-1, -5}, {0.02, 0.5}, {0.04, 0.02}, {100, 0}, {-1, 0.019},
	} {
		c.Update(float64(i), 0.02, in[0], in[1])
		if c.IsValid {
			require.Greater(t, c.Duration, float64(0), c.String())
		}
	}
}

func TestManualSource(t *testing.T) {
	s := NewManualSource(10)
	require.Equal(t, float64(10), s.Now())
	require.InDelta(t, 10.5, s.Advance(500*time.Millisecond), 1e-12)
	s.Set(1)
	require.Equal(t, float64(1), s.Now())
}

func TestSystemSourceIsMonotonic(t *testing.T) {
	s := NewSystemSource()
	a := s.Now()
	time.Sleep(time.Millisecond)
	b := s.Now()
	require.GreaterOrEqual(t, a, float64(0))
	require.Greater(t, b, a)
}
