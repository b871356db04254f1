// Package ui renders schedule output for the terminal.
package ui

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/pearcec/astrosched/internal/schedule"
)

// Style colours console output. The zero value is not usable; call New.
type Style struct {
	bold    *color.Color
	dim     *color.Color
	green   *color.Color
	red     *color.Color
	yellow  *color.Color
	cyan    *color.Color
	magenta *color.Color
}

// New returns a Style that emits ANSI colour codes only when enabled.
func New(enabled bool) *Style {
	s := &Style{
		bold:    color.New(color.Bold),
		dim:     color.New(color.Faint),
		green:   color.New(color.FgGreen),
		red:     color.New(color.FgRed),
		yellow:  color.New(color.FgYellow),
		cyan:    color.New(color.FgCyan),
		magenta: color.New(color.Bold, color.FgMagenta),
	}
	for _, c := range []*color.Color{s.bold, s.dim, s.green, s.red, s.yellow, s.cyan, s.magenta} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Task renders the display line:
//
//	HH:MM - HH:MM: <description> [<Priority>] - <Pending|Completed>
func (s *Style) Task(t schedule.Task) string {
	return fmt.Sprintf("%s - %s: %s [%s] - %s",
		s.cyan.Sprint(t.Start), s.cyan.Sprint(t.End),
		s.bold.Sprint(t.Description),
		s.Priority(t.Priority),
		s.Status(t))
}

// Priority colours a priority label by urgency.
func (s *Style) Priority(p schedule.Priority) string {
	switch p {
	case schedule.High:
		return s.magenta.Sprint(p)
	case schedule.Medium:
		return s.yellow.Sprint(p)
	default:
		return s.dim.Sprint(p)
	}
}

// Status renders Completed in green and Pending in yellow.
func (s *Style) Status(t schedule.Task) string {
	if t.Completed {
		return s.green.Sprint(t.Status())
	}
	return s.yellow.Sprint(t.Status())
}

// Success renders a confirmation message.
func (s *Style) Success(msg string) string { return s.green.Sprint(msg) }

// Error renders a failure message.
func (s *Style) Error(msg string) string { return s.red.Sprint(msg) }

// Heading renders a section title.
func (s *Style) Heading(msg string) string { return s.bold.Sprint(msg) }

// Dim renders secondary text.
func (s *Style) Dim(msg string) string { return s.dim.Sprint(msg) }
