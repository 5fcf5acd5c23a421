package booking

import "time"

// DateLayout is the wire format for all booking dates.
const DateLayout = "2006-01-02"

// Day collapses t to its calendar day at midnight UTC. This is the one
// canonical representation used for storage, comparison, and expiry; no
// other normalization rule may be applied to a booking date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into its canonical day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// NextDay returns the day after d.
func NextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// PrevDay returns the day before d.
func PrevDay(d time.Time) time.Time {
	return d.AddDate(0, 0, -1)
}

// Overlaps reports whether the inclusive day ranges [s1,e1] and [s2,e2]
// share at least one day. Touching endpoints count as overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}
