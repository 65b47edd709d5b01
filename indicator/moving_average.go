// Package indicator provides smoothing indicators over streams of measurements.
package indicator

import (
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

type MovingAverage[T Number] interface {
	Update(v T) T
	InitPeriod() int64
	Valid() bool
	Reset()
}
