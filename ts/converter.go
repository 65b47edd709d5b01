// Package ts converts stream timestamps expressed in time-base units into
// the seconds used by the synchronization clocks.
package ts

import (
	"fmt"
	"math"
	"time"

	"github.com/xaionaro-go/avsync/types"
)

type Converter struct {
	TimeBase types.Rational
}

func NewConverter(timeBase types.Rational) Converter {
	return Converter{TimeBase: timeBase}
}

func (c Converter) String() string {
	return fmt.Sprintf("Converter(%s)", c.TimeBase)
}

// Seconds converts a timestamp; types.PTSNone and an unusable time base
// produce types.PTSUnknownSeconds.
func (c Converter) Seconds(ts int64) float64 {
	if ts == types.PTSNone || c.TimeBase.Num <= 0 || c.TimeBase.Den <= 0 {
		return types.PTSUnknownSeconds
	}
	return float64(ts) * c.TimeBase.Float64()
}

// Duration converts a unit duration; non-positive durations become 0 (unknown).
func (c Converter) Duration(d int64) float64 {
	if d <= 0 || c.TimeBase.Num <= 0 || c.TimeBase.Den <= 0 {
		return 0
	}
	return float64(d) * c.TimeBase.Float64()
}

// ToDuration is like Duration, but returns a time.Duration.
func (c Converter) ToDuration(d int64) time.Duration {
	return time.Duration(c.Duration(d) * float64(time.Second))
}

// Rescale converts a timestamp from one time base to another,
// keeping types.PTSNone as is.
func Rescale(ts int64, from, to types.Rational) int64 {
	if ts == types.PTSNone || to.Float64() == 0 {
		return types.PTSNone
	}
	return int64(math.Round(float64(ts) * from.Float64() / to.Float64()))
}
