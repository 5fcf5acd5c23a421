package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayCollapsesTimeOfDay(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "already midnight UTC",
			in:   date(2024, time.June, 1),
			want: date(2024, time.June, 1),
		},
		{
			name: "afternoon UTC",
			in:   time.Date(2024, time.June, 1, 15, 30, 45, 123, time.UTC),
			want: date(2024, time.June, 1),
		},
		{
			name: "midnight in a non-UTC zone keeps its calendar day",
			in:   time.Date(2024, time.June, 1, 0, 0, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			want: date(2024, time.June, 1),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, Day(tc.in).Equal(tc.want), "Day(%v) = %v, want %v", tc.in, Day(tc.in), tc.want)
		})
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2024-06-01")
	require.NoError(t, err)
	assert.True(t, d.Equal(date(2024, time.June, 1)))

	// Equal inputs normalize to the identical canonical value.
	same := Day(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, same, d)

	_, err = ParseDay("01.06.2024")
	assert.Error(t, err)

	_, err = ParseDay("")
	assert.Error(t, err)
}

func TestNextPrevDay(t *testing.T) {
	d := date(2024, time.February, 29)
	assert.True(t, NextDay(d).Equal(date(2024, time.March, 1)))
	assert.True(t, PrevDay(date(2024, time.March, 1)).Equal(d))

	// Month boundary
	assert.True(t, NextDay(date(2024, time.June, 30)).Equal(date(2024, time.July, 1)))
}

func TestOverlaps(t *testing.T) {
	s1, e1 := date(2024, time.June, 1), date(2024, time.June, 5)

	cases := []struct {
		name   string
		s2, e2 time.Time
		want   bool
	}{
		{"identical", s1, e1, true},
		{"contained", date(2024, time.June, 2), date(2024, time.June, 4), true},
		{"touching end", date(2024, time.June, 5), date(2024, time.June, 10), true},
		{"touching start", date(2024, time.May, 25), date(2024, time.June, 1), true},
		{"disjoint after", date(2024, time.June, 6), date(2024, time.June, 10), false},
		{"disjoint before", date(2024, time.May, 25), date(2024, time.May, 31), false},
		{"single day inside", date(2024, time.June, 3), date(2024, time.June, 3), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(s1, e1, tc.s2, tc.e2))
			// Overlap is symmetric.
			assert.Equal(t, Overlaps(s1, e1, tc.s2, tc.e2), Overlaps(tc.s2, tc.e2, s1, e1))
		})
	}
}
