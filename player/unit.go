package player

import (
	"fmt"

	"github.com/xaionaro-go/avsync/pool"
	"github.com/xaionaro-go/avsync/ts"
	"github.com/xaionaro-go/avsync/types"
)

// Unit is a decoded video frame or a chunk of decoded audio samples.
type Unit struct {
	// PTS is types.PTSNone if unknown.
	PTS int64

	// Duration is non-positive if unknown.
	Duration int64

	TimeBase types.Rational

	// Payload is the actual data; it is freed together with the unit if
	// it implements types.Freer.
	Payload any

	flushGeneration uint64
}

var _ types.Freer = (*Unit)(nil)

func (u *Unit) String() string {
	return fmt.Sprintf("Unit(pts:%d; dur:%d; tb:%s; payload:%T)", u.PTS, u.Duration, u.TimeBase, u.Payload)
}

func (u *Unit) PTSSeconds() float64 {
	return ts.NewConverter(u.TimeBase).Seconds(u.PTS)
}

func (u *Unit) DurationSeconds() float64 {
	return ts.NewConverter(u.TimeBase).Duration(u.Duration)
}

// Free releases the payload.
func (u *Unit) Free() {
	if f, ok := u.Payload.(types.Freer); ok {
		f.Free()
	}
	u.Payload = nil
}

func resetUnit(u *Unit) {
	*u = Unit{PTS: types.PTSNone}
}

// NewUnitPool returns a pool suitable for Config.UnitPool.
func NewUnitPool() *pool.Pool[Unit] {
	return pool.NewPool(
		func() *Unit {
			return &Unit{PTS: types.PTSNone}
		},
		resetUnit,
		nil,
	)
}
