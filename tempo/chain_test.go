package tempo

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	for _, tc := range []struct {
		tempo    float64
		expected []float64
	}{
		{tempo: 1, expected: []float64{1}},
		{tempo: 1.0005, expected: []float64{1}},
		{tempo: 0.5, expected: []float64{0.5}},
		{tempo: 0.75, expected: []float64{0.75}},
		{tempo: 1.5, expected: []float64{1.5}},
		{tempo: 2, expected: []float64{2}},
		{tempo: 3, expected: []float64{2, 1.5}},
		{tempo: 4, expected: []float64{2, 2}},
	} {
		t.Run(fmt.Sprint(tc.tempo), func(t *testing.T) {
			chain, err := Chain(tc.tempo)
			require.NoError(t, err)
			require.InDeltaSlice(t, tc.expected, chain, 1e-9)

			product := 1.0
			for _, factor := range chain {
				require.GreaterOrEqual(t, factor, MinNodeTempo)
				require.LessOrEqual(t, factor, MaxNodeTempo)
				product *= factor
			}
			require.InDelta(t, tc.tempo, product, 0.001)
			require.LessOrEqual(t, len(chain), MaxNodeCount)
		})
	}
}

func TestChainOutOfRange(t *testing.T) {
	for _, tempo := range []float64{0, -1, 0.49, 4.01, 100} {
		_, err := Chain(tempo)
		require.ErrorIs(t, err, ErrOutOfRange, tempo)
	}
}

func TestFilterDescription(t *testing.T) {
	require.Equal(t, "anull", FilterDescription([]float64{1}))
	require.Equal(t, "anull", FilterDescription(nil))
	require.Equal(t, "atempo=2.000,atempo=1.500", FilterDescription([]float64{2, 1.5}))
	require.True(t, IsIdentity([]float64{1}))
	require.False(t, IsIdentity([]float64{0.5}))
}
