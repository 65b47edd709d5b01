// pts.go defines constants related to Presentation Time Stamps (PTS).

package types

import (
	"math"
)

const (
	// PTSNone marks a unit without a known timestamp (the libav AV_NOPTS_VALUE).
	PTSNone = int64(math.MinInt64)

	// PTSUnknownSeconds is how an unknown timestamp is expressed in seconds:
	// any negative value means "continue from the previous unit".
	PTSUnknownSeconds = float64(-1)
)
