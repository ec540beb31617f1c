// Package stats derives productivity statistics from a collection of
// calendar events. All aggregations are pure functions of the event set and
// a date window; nothing here touches the network or mutates its input.
package stats

import (
	"math"
	"strings"
	"time"

	"github.com/agentcal/core/internal/dateutil"
	"github.com/agentcal/core/internal/domain/entities"
)

// Category classifies the free-text content of a time slot.
type Category string

const (
	CategoryMeeting  Category = "meeting"
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryExercise Category = "exercise"
	CategoryRest     Category = "rest"
	CategoryOther    Category = "other"
)

// categoryRules is the ordered classification table. The first rule whose
// keyword appears in the slot text (case-insensitive) wins; content
// matching none of them falls through to CategoryOther. Keywords come in
// English/Chinese pairs matching the data the grid editor produces.
var categoryRules = []struct {
	keywords []string
	category Category
}{
	{[]string{"meeting", "会议"}, CategoryMeeting},
	{[]string{"study", "学习"}, CategoryStudy},
	{[]string{"work", "工作"}, CategoryWork},
	{[]string{"exercise", "运动"}, CategoryExercise},
	{[]string{"rest", "休息"}, CategoryRest},
}

// Classify assigns slot content to exactly one category.
func Classify(content string) Category {
	lower := strings.ToLower(content)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// WindowStats summarizes the events falling inside one week or month
// window.
type WindowStats struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	AvgProductivity float64 `json:"avg_productivity"`
}

// CompletionRate is the completed share as a rounded percentage, 0 when the
// window is empty.
func (w WindowStats) CompletionRate() int {
	if w.Total == 0 {
		return 0
	}
	return int(math.Round(float64(w.Completed) / float64(w.Total) * 100))
}

// WeekStats aggregates the Monday-start week containing selected.
func WeekStats(events []entities.CalendarEvent, selected time.Time) WindowStats {
	return windowStats(events, dateutil.StartOfWeek(selected), dateutil.EndOfWeek(selected))
}

// MonthStats aggregates the calendar month containing selected.
func MonthStats(events []entities.CalendarEvent, selected time.Time) WindowStats {
	return windowStats(events, dateutil.StartOfMonth(selected), dateutil.EndOfMonth(selected))
}

func windowStats(events []entities.CalendarEvent, start, end time.Time) WindowStats {
	var s WindowStats
	var sum float64
	for _, e := range events {
		d, err := dateutil.Parse(e.Date)
		if err != nil || !dateutil.Within(d, start, end) {
			continue
		}
		s.Total++
		if e.IsFullyCompleted() {
			s.Completed++
		}
		sum += e.ProductivityScore
	}
	if s.Total > 0 {
		s.AvgProductivity = sum / float64(s.Total)
	}
	return s
}

// Distribution counts recorded hours per period of the day.
type Distribution struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
}

func (d Distribution) total() int { return d.Morning + d.Afternoon + d.Evening }

// MonthlyPoint is one bucket of the grouped hours/tasks series.
type MonthlyPoint struct {
	Month string `json:"month"`
	Hours int    `json:"hours"`
	Tasks int    `json:"tasks"`
}

// maxSeriesPoints caps the grouped series; points beyond it are dropped in
// encounter order, keeping the first twelve.
const maxSeriesPoints = 12

// Overview is the month/year breakdown: total recorded hours, completed
// period tasks, slot category histogram, time-of-day histogram and the
// per-month series.
type Overview struct {
	TotalHours        int              `json:"total_hours"`
	CompletedTasks    int              `json:"completed_tasks"`
	ProductivityScore float64          `json:"productivity_score"`
	MonthlyData       []MonthlyPoint   `json:"monthly_data"`
	CategoryBreakdown map[Category]int `json:"category_breakdown"`
	TimeDistribution  Distribution     `json:"time_distribution"`
}

// MonthOverview computes the breakdown for the full calendar month
// containing anchor.
func MonthOverview(events []entities.CalendarEvent, anchor time.Time) Overview {
	return RangeOverview(events, dateutil.StartOfMonth(anchor), dateutil.EndOfMonth(anchor))
}

// YearOverview computes the breakdown for the full calendar year containing
// anchor.
func YearOverview(events []entities.CalendarEvent, anchor time.Time) Overview {
	return RangeOverview(events, dateutil.StartOfYear(anchor), dateutil.EndOfYear(anchor))
}

// RangeOverview computes the breakdown for an arbitrary inclusive date
// range, enumerating every calendar day in it. Grouping is always by
// calendar month; for a single-month range the series collapses to one
// bucket.
func RangeOverview(events []entities.CalendarEvent, start, end time.Time) Overview {
	o := Overview{CategoryBreakdown: make(map[Category]int)}

	byDate := make(map[string][]entities.CalendarEvent)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	groups := make(map[string]*MonthlyPoint)
	var order []string

	for _, day := range dateutil.EachDay(start, end) {
		key := dateutil.MonthKey(day)
		bucket, ok := groups[key]
		if !ok {
			bucket = &MonthlyPoint{Month: key}
			groups[key] = bucket
			order = append(order, key)
		}

		for _, e := range byDate[dateutil.Format(day)] {
			for _, slot := range entities.TimeSlots {
				content, err := e.Slot(slot.Key)
				if err != nil || content == "" {
					continue
				}
				// One non-empty slot is one hour of recorded activity,
				// regardless of content length.
				o.TotalHours++
				bucket.Hours++

				switch slot.Period {
				case entities.PeriodMorning:
					o.TimeDistribution.Morning++
				case entities.PeriodAfternoon:
					o.TimeDistribution.Afternoon++
				case entities.PeriodEvening:
					o.TimeDistribution.Evening++
				}

				o.CategoryBreakdown[Classify(content)]++
			}

			n := e.CompletedPeriods()
			o.CompletedTasks += n
			bucket.Tasks += n
		}
	}

	for _, key := range order {
		if len(o.MonthlyData) == maxSeriesPoints {
			break
		}
		o.MonthlyData = append(o.MonthlyData, *groups[key])
	}

	// The productivity score averages over the whole fetched collection,
	// not just the days inside the window.
	if len(events) > 0 {
		var sum float64
		for _, e := range events {
			sum += e.ProductivityScore
		}
		o.ProductivityScore = sum / float64(len(events))
	}

	return o
}
