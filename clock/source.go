package clock

import (
	"time"

	"go.uber.org/atomic"
)

// Source is a monotonic wall clock reporting seconds.
type Source interface {
	Now() float64
}

// SystemSource reports the seconds elapsed since it was created,
// using the monotonic reading of the system clock.
type SystemSource struct {
	StartTime time.Time
}

var _ Source = (*SystemSource)(nil)

func NewSystemSource() *SystemSource {
	return &SystemSource{
		StartTime: time.Now(),
	}
}

func (s *SystemSource) Now() float64 {
	return time.Since(s.StartTime).Seconds()
}

// ManualSource only moves when told to; it is safe for concurrent use.
type ManualSource struct {
	now atomic.Float64
}

var _ Source = (*ManualSource)(nil)

func NewManualSource(now float64) *ManualSource {
	s := &ManualSource{}
	s.now.Store(now)
	return s
}

func (s *ManualSource) Now() float64 {
	return s.now.Load()
}

func (s *ManualSource) Set(now float64) {
	s.now.Store(now)
}

func (s *ManualSource) Advance(d time.Duration) float64 {
	return s.now.Add(d.Seconds())
}
