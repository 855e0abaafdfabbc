package clock

import "time"

// Clock is the single source of "now" for redemption eligibility and report
// windows. Kiosks and browsers never supply their own date; the server clock
// is authoritative.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

// NewSystemClock returns a Clock pinned to the given IANA timezone. Falls
// back to UTC when the zone cannot be loaded.
func NewSystemClock(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Fixed is a Clock frozen at a single instant, for tests.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
