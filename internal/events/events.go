// Package events is the notification channel between the schedule store and
// anything that wants to hear about it: the log file, the console history,
// tests.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies what happened to the schedule.
type Kind string

const (
	// KindAdded is published after a task is inserted.
	KindAdded Kind = "added"
	// KindRemoved is published after a task is deleted.
	KindRemoved Kind = "removed"
	// KindEdited is published after a task is replaced.
	KindEdited Kind = "edited"
	// KindCompleted is published after a task is marked done.
	KindCompleted Kind = "completed"
	// KindError is published before a failed operation returns its error.
	KindError Kind = "error"
)

// Notification is a single message fanned out to listeners.
type Notification struct {
	ID      string
	Kind    Kind
	Message string
	At      time.Time
}

// New stamps a notification with a fresh ID and the current time.
func New(kind Kind, message string) Notification {
	return Notification{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: message,
		At:      time.Now(),
	}
}

// IsError reports whether the notification announces a failure.
func (n Notification) IsError() bool {
	return n.Kind == KindError
}

// Listener receives notifications. Implementations must be comparable
// (pointer receivers are the usual choice) so the bus can tell them apart.
type Listener interface {
	Update(n Notification) error
}
