package viewstate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentcal/core/internal/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func requireCoherent(t *testing.T, s State) {
	t.Helper()
	require.True(t, s.Date.Equal(s.Selected),
		"anchor %s and selected %s drifted apart", s.Date, s.Selected)
}

func TestNew_AnchorsOnToday(t *testing.T) {
	s := New(time.Date(2026, time.September, 1, 15, 4, 5, 0, time.UTC))
	require.Equal(t, ViewWeek, s.View)
	require.Equal(t, date(2026, time.September, 1), s.Date)
	requireCoherent(t, s)
}

func TestNavigate_StepsByViewGranularity(t *testing.T) {
	anchor := date(2026, time.June, 15)
	for _, tc := range []struct {
		view ViewType
		next time.Time
	}{
		{ViewDay, date(2026, time.June, 16)},
		{ViewWeek, date(2026, time.June, 22)},
		{ViewMonth, date(2026, time.July, 15)},
		{ViewYear, date(2027, time.June, 15)},
	} {
		s := State{View: tc.view, Date: anchor, Selected: anchor}
		got, err := Reduce(s, Navigate{Direction: Next})
		require.NoError(t, err)
		require.Equal(t, tc.next, got.Date, "view %s", tc.view)
		requireCoherent(t, got)
	}
}

func TestNavigate_NextThenPrevRoundTrips(t *testing.T) {
	anchors := []time.Time{
		date(2026, time.June, 15),
		date(2026, time.December, 31),
		date(2028, time.February, 29), // leap day
	}
	for _, view := range []ViewType{ViewDay, ViewWeek, ViewMonth, ViewYear} {
		for _, anchor := range anchors {
			s := State{View: view, Date: anchor, Selected: anchor}
			fwd, err := Reduce(s, Navigate{Direction: Next})
			require.NoError(t, err)
			back, err := Reduce(fwd, Navigate{Direction: Prev})
			require.NoError(t, err)

			// The clamp applies the same rule in both directions, so a
			// round trip from a clamped start lands on the clamped value
			// (Feb 29 +1y -1y = Feb 28), and any other start returns
			// exactly to itself.
			again, err := Reduce(back, Navigate{Direction: Next})
			require.NoError(t, err)
			final, err := Reduce(again, Navigate{Direction: Prev})
			require.NoError(t, err)
			require.Equal(t, back.Date, final.Date, "view %s anchor %s", view, anchor)
			requireCoherent(t, final)
		}
	}
}

func TestNavigate_MonthClampIsStable(t *testing.T) {
	s := State{View: ViewMonth, Date: date(2026, time.January, 31), Selected: date(2026, time.January, 31)}

	fwd, err := Reduce(s, Navigate{Direction: Next})
	require.NoError(t, err)
	require.Equal(t, date(2026, time.February, 28), fwd.Date)

	back, err := Reduce(fwd, Navigate{Direction: Prev})
	require.NoError(t, err)
	require.Equal(t, date(2026, time.January, 28), back.Date)
	requireCoherent(t, back)
}

func TestSwitchView_KeepsAnchorAndCoherence(t *testing.T) {
	anchor := date(2026, time.April, 10)
	s := State{View: ViewWeek, Date: anchor, Selected: anchor}

	got, err := Reduce(s, SwitchView{View: ViewMonth})
	require.NoError(t, err)
	require.Equal(t, ViewMonth, got.View)
	require.Equal(t, anchor, got.Date)
	requireCoherent(t, got)

	_, err = Reduce(s, SwitchView{View: ViewType("quarter")})
	require.ErrorIs(t, err, ErrInvalidView)
}

func TestToday_ReanchorsPreservingView(t *testing.T) {
	s := State{View: ViewMonth, Date: date(2020, time.January, 1), Selected: date(2020, time.January, 1)}
	got, err := Reduce(s, Today{Now: time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)})
	require.NoError(t, err)
	require.Equal(t, ViewMonth, got.View)
	require.Equal(t, date(2026, time.September, 1), got.Date)
	requireCoherent(t, got)
}

func TestJumpToDate_InvalidInputIsNoOp(t *testing.T) {
	anchor := date(2026, time.April, 10)
	s := State{View: ViewWeek, Date: anchor, Selected: anchor}

	for _, input := range []string{"", "31/12/2026", "tomorrow", "2026-02-30"} {
		got, err := Reduce(s, JumpToDate{Input: input})
		require.ErrorIs(t, err, entities.ErrInvalidDate, "input %q", input)
		require.Equal(t, s, got, "state must not change on parse failure")
	}

	got, err := Reduce(s, JumpToDate{Input: "2026-12-24"})
	require.NoError(t, err)
	require.Equal(t, date(2026, time.December, 24), got.Date)
	requireCoherent(t, got)
}

func TestMachine_CoherenceAcrossSequences(t *testing.T) {
	m := NewMachine(fixedClock(time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)))

	m.Navigate(Next)
	m.Navigate(Next)
	_, err := m.SwitchView(ViewMonth)
	require.NoError(t, err)
	m.Navigate(Prev)
	_, err = m.JumpToDate("2026-01-31")
	require.NoError(t, err)
	m.Navigate(Next)
	m.GoToToday()
	m.SetDate(date(2026, time.July, 4))

	s := m.State()
	require.Equal(t, ViewMonth, s.View)
	require.Equal(t, date(2026, time.July, 4), s.Date)
	requireCoherent(t, s)
}

func TestMachine_JumpFailureLeavesStateUntouched(t *testing.T) {
	m := NewMachine(fixedClock(time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)))
	before := m.State()

	_, err := m.JumpToDate("bogus")
	require.Error(t, err)
	require.Equal(t, before, m.State())
}

func TestWindow(t *testing.T) {
	anchor := date(2026, time.September, 2) // Wednesday
	for _, tc := range []struct {
		view       ViewType
		start, end time.Time
	}{
		{ViewDay, anchor, anchor},
		{ViewWeek, date(2026, time.August, 31), date(2026, time.September, 6)},
		{ViewMonth, date(2026, time.September, 1), date(2026, time.September, 30)},
		{ViewYear, date(2026, time.January, 1), date(2026, time.December, 31)},
	} {
		s := State{View: tc.view, Date: anchor, Selected: anchor}
		start, end := s.Window()
		require.Equal(t, tc.start, start, "view %s", tc.view)
		require.Equal(t, tc.end, end, "view %s", tc.view)
	}
}
