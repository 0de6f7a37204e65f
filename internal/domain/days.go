package domain

import (
	"math"
	"time"
)

const dayLength = 24 * time.Hour

// Days is a point in time expressed as fractional days since the Unix epoch.
// Grade sheets store timestamps in this unit.
type Days float64

// DaysAt converts t to fractional days since the Unix epoch.
func DaysAt(t time.Time) Days {
	return Days(float64(t.UnixNano()) / float64(dayLength))
}

// Since returns the number of days elapsed from d until now.
// The result is negative when d lies after now.
func (d Days) Since(now Days) float64 {
	return float64(now - d)
}

// Time converts d back to a UTC time.Time, truncated to the nanosecond.
func (d Days) Time() time.Time {
	return time.Unix(0, int64(math.Round(float64(d)*float64(dayLength)))).UTC()
}

// IsFinite reports whether d is neither NaN nor infinite.
func (d Days) IsFinite() bool {
	f := float64(d)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
