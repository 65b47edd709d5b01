package avsync

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComputeDelay(t *testing.T) {
	type testCase struct {
		speed    float64
		diff     float64
		expected float64
	}
	const nominal = 0.04
	for _, tc := range []testCase{
		// normal speed
		{speed: 1, diff: 0, expected: 0.04},
		{speed: 1, diff: 0.03, expected: 0.04 * 1.2},
		{speed: 1, diff: 0.015, expected: 0.04 * 1.05},
		{speed: 1, diff: -0.03, expected: 0.04 * 0.8},
		{speed: 1, diff: -0.015, expected: 0.04 * 0.95},
		{speed: 1, diff: -0.09, expected: 0.04 * 0.8},
		{speed: 1, diff: -0.1, expected: MinDelay},
		{speed: 1, diff: -5, expected: MinDelay},
		{speed: 1, diff: 5, expected: 0.04 * 1.2},

		// slow
		{speed: 0.5, diff: 0.01, expected: 0.08},
		{speed: 0.5, diff: 0.03, expected: 0.08 * 1.1},
		{speed: 0.5, diff: 0.06, expected: MaxDelay},
		{speed: 0.5, diff: -0.03, expected: 0.08 * 0.9},
		{speed: 0.5, diff: -0.06, expected: 0.08 * 0.5},
		{speed: 0.8, diff: 0.03, expected: 0.04 / 0.8 * 1.1},

		// fast
		{speed: 2, diff: 0.05, expected: 0.02},
		{speed: 2, diff: 0.1, expected: 0.02 * 1.1},
		{speed: 2, diff: 0.2, expected: 0.02 * 1.5},
		{speed: 2, diff: -0.09, expected: 0.02 * 0.9},
		{speed: 2, diff: -0.2, expected: MinDelay},
		{speed: 1.2, diff: 0.1, expected: 0.04 / 1.2 * 1.1},
		{speed: 4, diff: 0, expected: 0.01},
	} {
		t.Run(fmt.Sprintf("speed%v_diff%v", tc.speed, tc.diff), func(t *testing.T) {
			require.InDelta(t, tc.expected, ComputeDelay(nominal, tc.speed, tc.diff), 1e-12)
		})
	}
}

func TestComputeDelayClamps(t *testing.T) {
	require.Equal(t, MinDelay, ComputeDelay(0, 1, 0))
	require.Equal(t, MinDelay, ComputeDelay(0.001, 4, 0))
	require.Equal(t, MaxDelay, ComputeDelay(1, 1, 0))
}

func TestDelayToSleep(t *testing.T) {
	require.Equal(t, time.Millisecond, delayToSleep(MinDelay))
	require.Equal(t, 100*time.Millisecond, delayToSleep(MaxDelay))
	require.Equal(t, 33*time.Millisecond, delayToSleep(1.0/30))
}
