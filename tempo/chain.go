// Package tempo splits a playback speed into a chain of audio tempo
// filter factors, each within the range a single "atempo" filter accepts.
package tempo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	MinTempo = 0.5
	MaxTempo = 4.0

	// MinNodeTempo and MaxNodeTempo are the limits of a single filter node.
	MinNodeTempo = 0.5
	MaxNodeTempo = 2.0

	MaxNodeCount = 4

	epsilon = 0.001
)

var ErrOutOfRange = errors.New("tempo is out of range")

// Adjuster is the audio filter graph which actually changes the tempo.
type Adjuster interface {
	SetTempoChain(ctx context.Context, chain []float64) error
}

// Chain returns the factors whose product is the requested tempo.
// A tempo close enough to 1 yields the single factor 1.
func Chain(tempo float64) ([]float64, error) {
	if !(tempo >= MinTempo && tempo <= MaxTempo) {
		return nil, fmt.Errorf("%w: %v is not in [%v, %v]", ErrOutOfRange, tempo, MinTempo, MaxTempo)
	}
	if math.Abs(tempo-1) < epsilon {
		return []float64{1}, nil
	}

	var chain []float64
	remain := tempo
	for math.Abs(remain-1) > epsilon && len(chain) < MaxNodeCount {
		switch {
		case remain >= MinNodeTempo && remain <= MaxNodeTempo:
			return append(chain, remain), nil
		case remain < MinNodeTempo:
			chain = append(chain, MinNodeTempo)
			remain /= MinNodeTempo
		default:
			chain = append(chain, MaxNodeTempo)
			remain /= MaxNodeTempo
		}
	}
	return chain, nil
}

// IsIdentity returns true if the chain does not change the tempo at all,
// so the filter may be bypassed.
func IsIdentity(chain []float64) bool {
	return len(chain) == 0 || (len(chain) == 1 && math.Abs(chain[0]-1) < epsilon)
}

// FilterDescription renders the chain as a libavfilter graph description,
// e.g. "atempo=2.000,atempo=1.500".
func FilterDescription(chain []float64) string {
	if IsIdentity(chain) {
		return "anull"
	}
	nodes := make([]string, 0, len(chain))
	for _, factor := range chain {
		nodes = append(nodes, fmt.Sprintf("atempo=%.3f", factor))
	}
	return strings.Join(nodes, ",")
}
