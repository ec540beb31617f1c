package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentcal/core/internal/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_RoundTrip(t *testing.T) {
	d, err := Parse("2026-09-01")
	require.NoError(t, err)
	require.Equal(t, date(2026, time.September, 1), d)
	require.Equal(t, "2026-09-01", Format(d))
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "2026/09/01", "not-a-date", "2026-13-01"} {
		_, err := Parse(input)
		require.ErrorIs(t, err, entities.ErrInvalidDate, "input %q", input)
	}
}

func TestStartOfWeek_AlwaysMonday(t *testing.T) {
	// 2026-08-31 is a Monday.
	monday := date(2026, time.August, 31)
	for i := 0; i < 7; i++ {
		got := StartOfWeek(monday.AddDate(0, 0, i))
		require.Equal(t, monday, got, "offset %d", i)
		require.Equal(t, time.Monday, got.Weekday())
	}
	require.Equal(t, date(2026, time.September, 6), EndOfWeek(monday))
}

func TestMonthBounds(t *testing.T) {
	d := date(2026, time.February, 14)
	require.Equal(t, date(2026, time.February, 1), StartOfMonth(d))
	require.Equal(t, date(2026, time.February, 28), EndOfMonth(d))

	leap := date(2028, time.February, 14)
	require.Equal(t, date(2028, time.February, 29), EndOfMonth(leap))
}

func TestAddMonths_ClampsDayOfMonth(t *testing.T) {
	require.Equal(t, date(2026, time.February, 28), AddMonths(date(2026, time.January, 31), 1))
	require.Equal(t, date(2028, time.February, 29), AddMonths(date(2028, time.January, 31), 1))
	require.Equal(t, date(2025, time.December, 31), AddMonths(date(2026, time.January, 31), -1))
	require.Equal(t, date(2026, time.April, 30), AddMonths(date(2026, time.May, 31), -1))
	require.Equal(t, date(2027, time.March, 15), AddMonths(date(2026, time.November, 15), 4))
	require.Equal(t, date(2025, time.November, 15), AddMonths(date(2026, time.March, 15), -4))
}

func TestAddYears_ClampsLeapDay(t *testing.T) {
	require.Equal(t, date(2029, time.February, 28), AddYears(date(2028, time.February, 29), 1))
	require.Equal(t, date(2027, time.February, 28), AddYears(date(2028, time.February, 29), -1))
	require.Equal(t, date(2027, time.June, 10), AddYears(date(2026, time.June, 10), 1))
}

func TestEachDay(t *testing.T) {
	days := EachDay(date(2026, time.February, 27), date(2026, time.March, 2))
	require.Len(t, days, 4)
	require.Equal(t, date(2026, time.February, 27), days[0])
	require.Equal(t, date(2026, time.March, 2), days[3])

	single := EachDay(date(2026, time.June, 1), date(2026, time.June, 1))
	require.Len(t, single, 1)
}

func TestWithin_InclusiveBounds(t *testing.T) {
	start, end := date(2026, time.March, 2), date(2026, time.March, 8)
	require.True(t, Within(start, start, end))
	require.True(t, Within(end, start, end))
	require.False(t, Within(start.AddDate(0, 0, -1), start, end))
	require.False(t, Within(end.AddDate(0, 0, 1), start, end))
}

func TestISOWeekStart(t *testing.T) {
	for _, tc := range []struct {
		year, week int
		want       time.Time
	}{
		{2026, 1, date(2025, time.December, 29)},
		{2026, 36, date(2026, time.August, 31)},
		{2024, 1, date(2024, time.January, 1)},
	} {
		got := ISOWeekStart(tc.year, tc.week)
		require.Equal(t, tc.want, got, "year %d week %d", tc.year, tc.week)

		y, w := got.ISOWeek()
		require.Equal(t, tc.year, y)
		require.Equal(t, tc.week, w)
	}
}
