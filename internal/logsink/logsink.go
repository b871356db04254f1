// Package logsink writes schedule notifications and failures to a log file.
package logsink

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pearcec/astrosched/internal/events"
)

// Stderr is the path value that sends the log to standard error.
const Stderr = "-"

// Sink is an events.Listener backed by a *log.Logger.
type Sink struct {
	logger *log.Logger
	closer io.Closer
}

// New logs to w.
func New(w io.Writer) *Sink {
	return &Sink{logger: log.New(w, "", log.Ldate|log.Ltime)}
}

// Open appends to the log file at path, creating it and its directory if
// needed. An empty path discards output; Stderr logs to standard error.
func Open(path string) (*Sink, error) {
	switch path {
	case "":
		return New(io.Discard), nil
	case Stderr:
		return New(os.Stderr), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	s := New(f)
	s.closer = f
	return s, nil
}

// Update records n. Error notifications are logged at ERROR level, everything
// else at INFO. A failed write is returned to the publisher.
func (s *Sink) Update(n events.Notification) error {
	level := "INFO"
	if n.IsError() {
		level = "ERROR"
	}
	return s.logger.Output(2, fmt.Sprintf("[schedule] %s %s: %s", level, n.Kind, n.Message))
}

// Infof writes an INFO record for the given component.
func (s *Sink) Infof(component, format string, args ...any) {
	s.logger.Printf("[%s] INFO %s", component, fmt.Sprintf(format, args...))
}

// Errorf writes an ERROR record for the given component.
func (s *Sink) Errorf(component, format string, args ...any) {
	s.logger.Printf("[%s] ERROR %s", component, fmt.Sprintf(format, args...))
}

// Close releases the log file, if one was opened.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
