package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidSlotKey = errors.New("invalid time slot key")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// Period groups time slots into the three sections of a day. It is also
// the unit of the per-event completion flags.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// TimeSlot describes one fixed one-hour interval of the planning grid.
type TimeSlot struct {
	Key       string
	Label     string
	Period    Period
	StartHour int
	EndHour   int
}

// TimeSlots is the closed enumeration of the 17 one-hour intervals spanning
// 07:00-24:00. Aggregation iterates exactly this set; changing it is a
// schema change, not a runtime concern.
var TimeSlots = []TimeSlot{
	{Key: "morning_7_8", Label: "7:00-8:00", Period: PeriodMorning, StartHour: 7, EndHour: 8},
	{Key: "morning_8_9", Label: "8:00-9:00", Period: PeriodMorning, StartHour: 8, EndHour: 9},
	{Key: "morning_9_10", Label: "9:00-10:00", Period: PeriodMorning, StartHour: 9, EndHour: 10},
	{Key: "morning_10_11", Label: "10:00-11:00", Period: PeriodMorning, StartHour: 10, EndHour: 11},
	{Key: "morning_11_12", Label: "11:00-12:00", Period: PeriodMorning, StartHour: 11, EndHour: 12},

	{Key: "afternoon_12_13", Label: "12:00-13:00", Period: PeriodAfternoon, StartHour: 12, EndHour: 13},
	{Key: "afternoon_13_14", Label: "13:00-14:00", Period: PeriodAfternoon, StartHour: 13, EndHour: 14},
	{Key: "afternoon_14_15", Label: "14:00-15:00", Period: PeriodAfternoon, StartHour: 14, EndHour: 15},
	{Key: "afternoon_15_16", Label: "15:00-16:00", Period: PeriodAfternoon, StartHour: 15, EndHour: 16},
	{Key: "afternoon_16_17", Label: "16:00-17:00", Period: PeriodAfternoon, StartHour: 16, EndHour: 17},
	{Key: "afternoon_17_18", Label: "17:00-18:00", Period: PeriodAfternoon, StartHour: 17, EndHour: 18},

	{Key: "evening_18_19", Label: "18:00-19:00", Period: PeriodEvening, StartHour: 18, EndHour: 19},
	{Key: "evening_19_20", Label: "19:00-20:00", Period: PeriodEvening, StartHour: 19, EndHour: 20},
	{Key: "evening_20_21", Label: "20:00-21:00", Period: PeriodEvening, StartHour: 20, EndHour: 21},
	{Key: "evening_21_22", Label: "21:00-22:00", Period: PeriodEvening, StartHour: 21, EndHour: 22},
	{Key: "evening_22_23", Label: "22:00-23:00", Period: PeriodEvening, StartHour: 22, EndHour: 23},
	{Key: "evening_23_24", Label: "23:00-24:00", Period: PeriodEvening, StartHour: 23, EndHour: 24},
}

// SlotPeriod maps a slot key to its period. The second return is false for
// keys outside the fixed enumeration; such keys must not be counted in any
// distribution bucket.
func SlotPeriod(key string) (Period, bool) {
	for _, s := range TimeSlots {
		if s.Key == key {
			return s.Period, true
		}
	}
	return "", false
}

// CalendarEvent is one record per calendar date. The date is the external
// join key against "the day" and is always exchanged as YYYY-MM-DD.
type CalendarEvent struct {
	ID       int    `json:"id,omitempty"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`

	Morning7_8   string `json:"morning_7_8,omitempty"`
	Morning8_9   string `json:"morning_8_9,omitempty"`
	Morning9_10  string `json:"morning_9_10,omitempty"`
	Morning10_11 string `json:"morning_10_11,omitempty"`
	Morning11_12 string `json:"morning_11_12,omitempty"`

	Afternoon12_13 string `json:"afternoon_12_13,omitempty"`
	Afternoon13_14 string `json:"afternoon_13_14,omitempty"`
	Afternoon14_15 string `json:"afternoon_14_15,omitempty"`
	Afternoon15_16 string `json:"afternoon_15_16,omitempty"`
	Afternoon16_17 string `json:"afternoon_16_17,omitempty"`
	Afternoon17_18 string `json:"afternoon_17_18,omitempty"`

	Evening18_19 string `json:"evening_18_19,omitempty"`
	Evening19_20 string `json:"evening_19_20,omitempty"`
	Evening20_21 string `json:"evening_20_21,omitempty"`
	Evening21_22 string `json:"evening_21_22,omitempty"`
	Evening22_23 string `json:"evening_22_23,omitempty"`
	Evening23_24 string `json:"evening_23_24,omitempty"`

	MorningCompleted   bool `json:"morning_completed"`
	AfternoonCompleted bool `json:"afternoon_completed"`
	EveningCompleted   bool `json:"evening_completed"`

	ProductivityScore float64 `json:"productivity_score"`
	Notes             string  `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Slot returns the content of the slot with the given key.
func (e *CalendarEvent) Slot(key string) (string, error) {
	p := e.slotField(key)
	if p == nil {
		return "", ErrInvalidSlotKey
	}
	return *p, nil
}

// SetSlot writes the content of the slot with the given key.
func (e *CalendarEvent) SetSlot(key, value string) error {
	p := e.slotField(key)
	if p == nil {
		return ErrInvalidSlotKey
	}
	*p = value
	return nil
}

func (e *CalendarEvent) slotField(key string) *string {
	switch key {
	case "morning_7_8":
		return &e.Morning7_8
	case "morning_8_9":
		return &e.Morning8_9
	case "morning_9_10":
		return &e.Morning9_10
	case "morning_10_11":
		return &e.Morning10_11
	case "morning_11_12":
		return &e.Morning11_12
	case "afternoon_12_13":
		return &e.Afternoon12_13
	case "afternoon_13_14":
		return &e.Afternoon13_14
	case "afternoon_14_15":
		return &e.Afternoon14_15
	case "afternoon_15_16":
		return &e.Afternoon15_16
	case "afternoon_16_17":
		return &e.Afternoon16_17
	case "afternoon_17_18":
		return &e.Afternoon17_18
	case "evening_18_19":
		return &e.Evening18_19
	case "evening_19_20":
		return &e.Evening19_20
	case "evening_20_21":
		return &e.Evening20_21
	case "evening_21_22":
		return &e.Evening21_22
	case "evening_22_23":
		return &e.Evening22_23
	case "evening_23_24":
		return &e.Evening23_24
	}
	return nil
}

// IsFullyCompleted reports whether all three period flags are set. Window
// statistics count an event as completed only under this conjunction.
func (e *CalendarEvent) IsFullyCompleted() bool {
	return e.MorningCompleted && e.AfternoonCompleted && e.EveningCompleted
}

// CompletedPeriods counts the period flags that are set (0 to 3).
func (e *CalendarEvent) CompletedPeriods() int {
	n := 0
	if e.MorningCompleted {
		n++
	}
	if e.AfternoonCompleted {
		n++
	}
	if e.EveningCompleted {
		n++
	}
	return n
}

// PeriodCompleted returns the completion flag for the given period.
func (e *CalendarEvent) PeriodCompleted(p Period) bool {
	switch p {
	case PeriodMorning:
		return e.MorningCompleted
	case PeriodAfternoon:
		return e.AfternoonCompleted
	case PeriodEvening:
		return e.EveningCompleted
	}
	return false
}

// EventPatch is a partial update of a CalendarEvent. Nil fields are left
// untouched when the patch is applied; the same shape travels over PUT
// /events/:id and is produced by client-side editors.
type EventPatch struct {
	Date     *string `json:"date,omitempty"`
	Title    *string `json:"title,omitempty"`
	Category *string `json:"category,omitempty"`

	Morning7_8   *string `json:"morning_7_8,omitempty"`
	Morning8_9   *string `json:"morning_8_9,omitempty"`
	Morning9_10  *string `json:"morning_9_10,omitempty"`
	Morning10_11 *string `json:"morning_10_11,omitempty"`
	Morning11_12 *string `json:"morning_11_12,omitempty"`

	Afternoon12_13 *string `json:"afternoon_12_13,omitempty"`
	Afternoon13_14 *string `json:"afternoon_13_14,omitempty"`
	Afternoon14_15 *string `json:"afternoon_14_15,omitempty"`
	Afternoon15_16 *string `json:"afternoon_15_16,omitempty"`
	Afternoon16_17 *string `json:"afternoon_16_17,omitempty"`
	Afternoon17_18 *string `json:"afternoon_17_18,omitempty"`

	Evening18_19 *string `json:"evening_18_19,omitempty"`
	Evening19_20 *string `json:"evening_19_20,omitempty"`
	Evening20_21 *string `json:"evening_20_21,omitempty"`
	Evening21_22 *string `json:"evening_21_22,omitempty"`
	Evening22_23 *string `json:"evening_22_23,omitempty"`
	Evening23_24 *string `json:"evening_23_24,omitempty"`

	MorningCompleted   *bool `json:"morning_completed,omitempty"`
	AfternoonCompleted *bool `json:"afternoon_completed,omitempty"`
	EveningCompleted   *bool `json:"evening_completed,omitempty"`

	ProductivityScore *float64 `json:"productivity_score,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// Apply copies the non-nil fields of the patch onto the event.
func (p *EventPatch) Apply(e *CalendarEvent) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&e.Date, p.Date)
	setStr(&e.Title, p.Title)
	setStr(&e.Category, p.Category)

	setStr(&e.Morning7_8, p.Morning7_8)
	setStr(&e.Morning8_9, p.Morning8_9)
	setStr(&e.Morning9_10, p.Morning9_10)
	setStr(&e.Morning10_11, p.Morning10_11)
	setStr(&e.Morning11_12, p.Morning11_12)

	setStr(&e.Afternoon12_13, p.Afternoon12_13)
	setStr(&e.Afternoon13_14, p.Afternoon13_14)
	setStr(&e.Afternoon14_15, p.Afternoon14_15)
	setStr(&e.Afternoon15_16, p.Afternoon15_16)
	setStr(&e.Afternoon16_17, p.Afternoon16_17)
	setStr(&e.Afternoon17_18, p.Afternoon17_18)

	setStr(&e.Evening18_19, p.Evening18_19)
	setStr(&e.Evening19_20, p.Evening19_20)
	setStr(&e.Evening20_21, p.Evening20_21)
	setStr(&e.Evening21_22, p.Evening21_22)
	setStr(&e.Evening22_23, p.Evening22_23)
	setStr(&e.Evening23_24, p.Evening23_24)

	if p.MorningCompleted != nil {
		e.MorningCompleted = *p.MorningCompleted
	}
	if p.AfternoonCompleted != nil {
		e.AfternoonCompleted = *p.AfternoonCompleted
	}
	if p.EveningCompleted != nil {
		e.EveningCompleted = *p.EveningCompleted
	}
	if p.ProductivityScore != nil {
		e.ProductivityScore = *p.ProductivityScore
	}
	setStr(&e.Notes, p.Notes)
}

// Task board types. The board is a purely local subsystem, never persisted
// remotely, with no data dependency on calendar events.

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Task is a kanban card. A task belongs to exactly one column at a time.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Tags        []string     `json:"tags"`
	CreatedAt   time.Time    `json:"created_at"`
	Order       int          `json:"order"`
}

// TaskColumn is one kanban lane holding an ordered list of tasks.
type TaskColumn struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Tasks []Task `json:"tasks"`
	Order int    `json:"order"`
}

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}
