// Package viewstate tracks the active view granularity, its anchor date and
// the selected date. All mutations go through a single reducer so the anchor
// and the selected date can never drift apart: every transition returns a
// fully-formed state with both fields set from the same value.
package viewstate

import (
	"errors"
	"time"

	"github.com/agentcal/core/internal/dateutil"
)

// ErrInvalidView is reported when a view switch names an unknown
// granularity. The state is left unchanged.
var ErrInvalidView = errors.New("invalid view type")

// ViewType is the granularity of the calendar view.
type ViewType string

const (
	ViewDay   ViewType = "day"
	ViewWeek  ViewType = "week"
	ViewMonth ViewType = "month"
	ViewYear  ViewType = "year"
)

func (v ViewType) IsValid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return true
	default:
		return false
	}
}

// Direction of a navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// State is the full view/date state. Date is the view's anchor date and
// Selected the separately-tracked selected date; Reduce keeps them equal
// after every completed transition.
type State struct {
	View     ViewType
	Date     time.Time
	Selected time.Time
}

// Action is one of the view/date transitions.
type Action interface{ isAction() }

// Navigate steps the anchor by one unit of the current granularity.
type Navigate struct{ Direction Direction }

// SwitchView changes the granularity, keeping the current anchor.
type SwitchView struct{ View ViewType }

// Today moves both dates to the given current date, preserving view type.
type Today struct{ Now time.Time }

// SetDate moves both dates to an explicit date, preserving view type.
type SetDate struct{ Date time.Time }

// JumpToDate parses a YYYY-MM-DD string and behaves like SetDate. Invalid
// input leaves the state unchanged and reports entities.ErrInvalidDate so
// callers can show feedback instead of failing silently.
type JumpToDate struct{ Input string }

func (Navigate) isAction()   {}
func (SwitchView) isAction() {}
func (Today) isAction()      {}
func (SetDate) isAction()    {}
func (JumpToDate) isAction() {}

// New returns the initial state: week view anchored on the given date.
func New(now time.Time) State {
	d := dateutil.Truncate(now)
	return State{View: ViewWeek, Date: d, Selected: d}
}

// Reduce applies an action and returns the next state. It is a pure
// function; on error the input state is returned unchanged.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case Navigate:
		return s.withDate(step(s.View, s.Date, act.Direction)), nil

	case SwitchView:
		if !act.View.IsValid() {
			return s, ErrInvalidView
		}
		next := s.withDate(s.Date)
		next.View = act.View
		return next, nil

	case Today:
		return s.withDate(dateutil.Truncate(act.Now)), nil

	case SetDate:
		return s.withDate(dateutil.Truncate(act.Date)), nil

	case JumpToDate:
		d, err := dateutil.Parse(act.Input)
		if err != nil {
			return s, err
		}
		return s.withDate(d), nil
	}
	return s, nil
}

// withDate sets anchor and selected date together.
func (s State) withDate(d time.Time) State {
	s.Date = d
	s.Selected = d
	return s
}

func step(view ViewType, anchor time.Time, dir Direction) time.Time {
	n := int(dir)
	switch view {
	case ViewDay:
		return anchor.AddDate(0, 0, n)
	case ViewWeek:
		return anchor.AddDate(0, 0, 7*n)
	case ViewMonth:
		return dateutil.AddMonths(anchor, n)
	case ViewYear:
		return dateutil.AddYears(anchor, n)
	}
	return anchor
}

// Window returns the date range the current view spans, used to scope event
// fetches and window statistics.
func (s State) Window() (start, end time.Time) {
	switch s.View {
	case ViewDay:
		return s.Date, s.Date
	case ViewWeek:
		return dateutil.StartOfWeek(s.Date), dateutil.EndOfWeek(s.Date)
	case ViewMonth:
		return dateutil.StartOfMonth(s.Date), dateutil.EndOfMonth(s.Date)
	case ViewYear:
		return dateutil.StartOfYear(s.Date), dateutil.EndOfYear(s.Date)
	}
	return s.Date, s.Date
}

// Machine wraps the reducer with a clock for the Today transition.
type Machine struct {
	state State
	now   func() time.Time
}

// NewMachine builds a machine anchored on the current date. A nil clock
// defaults to time.Now.
func NewMachine(now func() time.Time) *Machine {
	if now == nil {
		now = time.Now
	}
	return &Machine{state: New(now()), now: now}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Apply runs an action through the reducer and stores the result.
func (m *Machine) Apply(a Action) (State, error) {
	next, err := Reduce(m.state, a)
	if err != nil {
		return m.state, err
	}
	m.state = next
	return next, nil
}

// Navigate steps the view by one unit in the given direction.
func (m *Machine) Navigate(dir Direction) State {
	s, _ := m.Apply(Navigate{Direction: dir})
	return s
}

// SwitchView changes the view granularity.
func (m *Machine) SwitchView(v ViewType) (State, error) {
	return m.Apply(SwitchView{View: v})
}

// GoToToday re-anchors on the machine's clock.
func (m *Machine) GoToToday() State {
	s, _ := m.Apply(Today{Now: m.now()})
	return s
}

// JumpToDate parses user input and re-anchors on success. Invalid input is
// a no-op returning entities.ErrInvalidDate.
func (m *Machine) JumpToDate(input string) (State, error) {
	return m.Apply(JumpToDate{Input: input})
}

// SetDate re-anchors on an explicit date.
func (m *Machine) SetDate(d time.Time) State {
	s, _ := m.Apply(SetDate{Date: d})
	return s
}
