// Package schedule holds the day plan: tasks, the parser that builds them
// from raw input, and the conflict-checked store that keeps them in order.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds a TimeOfDay.
const MinutesPerDay = 24 * 60

// TimeOfDay is a bare clock time, stored as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses "H:MM" or "HH:MM" on a 24-hour clock.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	raw := strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !digits(hh) || !digits(mm) {
		return 0, &ParseError{Input: s}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, &ParseError{Input: s}
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, &ParseError{Input: s}
	}
	return TimeOfDay(h*60 + m), nil
}

// digits reports whether s is made only of ASCII digits. strconv.Atoi alone
// would also accept a sign.
func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Hour returns the hour component.
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component.
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Priority ranks a task.
type Priority int

const (
	Low Priority = iota + 1
	Medium
	High
)

// ParsePriority matches Low, Medium or High regardless of case.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return 0, &ValidationError{Field: "priority", Reason: fmt.Sprintf("%q is not one of Low, Medium, High", s)}
}

func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// Task is one time-boxed item on the day plan. Only Completed changes after
// construction, and only through Store.Complete.
type Task struct {
	Description string
	Start       TimeOfDay
	End         TimeOfDay
	Priority    Priority
	Completed   bool
}

// NewTask validates the fields and returns a pending task.
func NewTask(description string, start, end TimeOfDay, priority Priority) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if start < 0 || start >= MinutesPerDay || end < 0 || end >= MinutesPerDay {
		return Task{}, &ValidationError{Field: "time", Reason: "must be within a single day"}
	}
	if end <= start {
		return Task{}, &ValidationError{Field: "end", Reason: fmt.Sprintf("end time %s must be after start time %s", end, start)}
	}
	if priority < Low || priority > High {
		return Task{}, &ValidationError{Field: "priority", Reason: priority.String() + " is not a known priority"}
	}
	return Task{
		Description: description,
		Start:       start,
		End:         end,
		Priority:    priority,
	}, nil
}

// Overlaps reports whether the half-open intervals [Start, End) intersect.
// Touching endpoints do not overlap.
func (t Task) Overlaps(other Task) bool {
	return t.Start < other.End && t.End > other.Start
}

// Status is "Completed" or "Pending".
func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}

// String renders the display line, e.g. "06:00 - 07:00: Exercise [Medium] - Pending".
func (t Task) String() string {
	return fmt.Sprintf("%s - %s: %s [%s] - %s", t.Start, t.End, t.Description, t.Priority, t.Status())
}

// key is the case-insensitive lookup key for a description.
func key(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}
