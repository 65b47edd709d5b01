package clock

import (
	"strings"
)

// UpdateFlags describes which corrections Update had to apply.
type UpdateFlags uint64

const (
	// The stream has no nominal duration, so the timestamps were not tracked at all.
	FlagNoNominalDuration UpdateFlags = 1 << iota

	// The unit had no duration, the nominal one was used.
	FlagDurationDefaulted

	// The unit duration was an outlier and was replaced by the nominal one.
	FlagDurationRejected

	// The timestamp jumped by at least half a unit and was ignored.
	FlagJumpRejected

	// The timestamp was computed as the previous one plus the duration.
	FlagExtrapolated

	// The clock is not valid after the update.
	FlagInvalidated
)

func (f UpdateFlags) HasAll(flag UpdateFlags) bool {
	return f&flag == flag
}

func (f UpdateFlags) HasAny(flag UpdateFlags) bool {
	return f&flag != 0
}

func (f *UpdateFlags) Set(flag UpdateFlags) {
	*f |= flag
}

func (f UpdateFlags) String() string {
	var names []string
	for _, item := range []struct {
		Flag UpdateFlags
		Name string
	}{
		{FlagNoNominalDuration, "no_nominal_duration"},
		{FlagDurationDefaulted, "duration_defaulted"},
		{FlagDurationRejected, "duration_rejected"},
		{FlagJumpRejected, "jump_rejected"},
		{FlagExtrapolated, "extrapolated"},
		{FlagInvalidated, "invalidated"},
	} {
		if f.HasAll(item.Flag) {
			names = append(names, item.Name)
		}
	}
	return strings.Join(names, "|")
}
