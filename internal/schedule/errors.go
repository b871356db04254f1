package schedule

import "fmt"

// ParseError reports time text that is not hours:minutes.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time %q: expected HH:MM", e.Input)
}

// ValidationError reports a field that parsed but is not acceptable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports an interval that overlaps an existing task.
type ConflictError struct {
	Task     Task
	Existing Task
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("task %q (%s - %s) conflicts with existing task %q (%s - %s)",
		e.Task.Description, e.Task.Start, e.Task.End,
		e.Existing.Description, e.Existing.Start, e.Existing.End)
}

// NotFoundError reports an unknown description.
type NotFoundError struct {
	Description string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.Description)
}

// AlreadyCompletedError reports a second completion of the same task.
type AlreadyCompletedError struct {
	Description string
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("task %q is already completed", e.Description)
}

// DuplicateError reports a description already used by another task.
type DuplicateError struct {
	Description string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("a task named %q already exists", e.Description)
}
