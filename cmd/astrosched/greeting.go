package main

import (
	"fmt"
	"io"
	"time"
)

// PrintGreeting writes a time-appropriate salutation and the size of the plan.
func PrintGreeting(w io.Writer, now time.Time, taskCount int) {
	fmt.Fprintf(w, "%s\n\n", getSalutation(now.Hour()))
	fmt.Fprintf(w, "📅 Today: %s\n", now.Format("Monday, January 2, 2006"))

	fmt.Fprintf(w, "🛰  %d task", taskCount)
	if taskCount != 1 {
		fmt.Fprint(w, "s")
	}
	fmt.Fprintln(w, " on the plan")
	fmt.Fprintln(w)
}

// getSalutation returns a time-appropriate greeting.
func getSalutation(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning, Commander."
	case hour >= 12 && hour < 17:
		return "Good afternoon, Commander."
	default:
		return "Good evening, Commander."
	}
}
