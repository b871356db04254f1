package schedule

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"

	"github.com/pearcec/astrosched/internal/events"
)

// Publisher fans notifications out to listeners. *events.Bus satisfies it.
type Publisher interface {
	Publish(n events.Notification) error
}

// Store is the day plan. Tasks never overlap and are kept ordered by start
// time. Non-overlapping tasks cannot share a start, so the order is total.
//
// Mutations hold the store lock; notifications are published after it is
// released so listeners may read the store.
type Store struct {
	mu    sync.Mutex
	tasks []Task
	pub   Publisher
}

// NewStore creates an empty store that announces changes on pub. A nil pub
// discards notifications.
func NewStore(pub Publisher) *Store {
	return &Store{pub: pub}
}

// Add inserts task unless its interval overlaps an existing task or its
// description is already taken. The stored copy is rebuilt through NewTask,
// so it is trimmed and pending whatever the caller set.
func (s *Store) Add(task Task) error {
	task, err := NewTask(task.Description, task.Start, task.End, task.Priority)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	if s.indexOf(task.Description) >= 0 {
		s.mu.Unlock()
		return s.fail(&DuplicateError{Description: task.Description})
	}
	if existing, ok := s.conflict(task); ok {
		s.mu.Unlock()
		return s.fail(&ConflictError{Task: task, Existing: existing})
	}
	s.insert(task)
	s.mu.Unlock()

	return s.notify(events.KindAdded, fmt.Sprintf("Task '%s' added.", task.Description))
}

// Create parses the raw fields with ParseTask and adds the result. Parse and
// validation failures are announced like any other failed mutation.
func (s *Store) Create(description, start, end, priority string) error {
	task, err := ParseTask(description, start, end, priority)
	if err != nil {
		return s.fail(err)
	}
	return s.Add(task)
}

// Remove deletes the task with the given description.
func (s *Store) Remove(description string) error {
	s.mu.Lock()
	i := s.indexOf(description)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(&NotFoundError{Description: description})
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	return s.notify(events.KindRemoved, fmt.Sprintf("Task '%s' removed.", removed.Description))
}

// Edit replaces the task named description with one built from the new
// fields. Either the replacement is stored or nothing changes. The completion
// flag carries over.
func (s *Store) Edit(description, newDescription, newStart, newEnd, newPriority string) error {
	s.mu.Lock()
	i := s.indexOf(description)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(&NotFoundError{Description: description})
	}
	original := s.tasks[i]

	candidate, err := ParseTask(newDescription, newStart, newEnd, newPriority)
	if err != nil {
		s.mu.Unlock()
		return s.fail(err)
	}
	candidate.Completed = original.Completed

	if key(candidate.Description) != key(original.Description) && s.indexOf(candidate.Description) >= 0 {
		s.mu.Unlock()
		return s.fail(&DuplicateError{Description: candidate.Description})
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if existing, ok := s.conflict(candidate); ok {
		s.insert(original)
		s.mu.Unlock()
		return s.fail(&ConflictError{Task: candidate, Existing: existing})
	}
	s.insert(candidate)
	s.mu.Unlock()

	msg := fmt.Sprintf("Task '%s' edited.", original.Description)
	if candidate.Description != original.Description {
		msg = fmt.Sprintf("Task '%s' edited to '%s'.", original.Description, candidate.Description)
	}
	return s.notify(events.KindEdited, msg)
}

// Complete marks the task done. A task can be completed only once.
func (s *Store) Complete(description string) error {
	s.mu.Lock()
	i := s.indexOf(description)
	if i < 0 {
		s.mu.Unlock()
		return s.fail(&NotFoundError{Description: description})
	}
	if s.tasks[i].Completed {
		name := s.tasks[i].Description
		s.mu.Unlock()
		return s.fail(&AlreadyCompletedError{Description: name})
	}
	s.tasks[i].Completed = true
	name := s.tasks[i].Description
	s.mu.Unlock()

	return s.notify(events.KindCompleted, fmt.Sprintf("Task '%s' marked as completed.", name))
}

// Get looks a task up by description, ignoring case.
func (s *Store) Get(description string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(description)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of scheduled tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// List yields every task in start order. Each iteration reads the store
// afresh, so the sequence can be ranged over more than once.
func (s *Store) List() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range s.snapshot() {
			if !yield(t) {
				return
			}
		}
	}
}

// ListByPriority is List restricted to tasks with priority p.
func (s *Store) ListByPriority(p Priority) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for t := range s.List() {
			if t.Priority != p {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

func (s *Store) snapshot() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// indexOf requires s.mu.
func (s *Store) indexOf(description string) int {
	k := key(description)
	for i, t := range s.tasks {
		if key(t.Description) == k {
			return i
		}
	}
	return -1
}

// conflict requires s.mu.
func (s *Store) conflict(task Task) (Task, bool) {
	for _, t := range s.tasks {
		if task.Overlaps(t) {
			return t, true
		}
	}
	return Task{}, false
}

// insert requires s.mu.
func (s *Store) insert(t Task) {
	s.tasks = append(s.tasks, t)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].Start < s.tasks[j].Start
	})
}

func (s *Store) notify(kind events.Kind, message string) error {
	if s.pub == nil {
		return nil
	}
	if err := s.pub.Publish(events.New(kind, message)); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// fail announces err as an error notification and returns it. A listener
// failure is joined onto err so callers can still match the original kind.
func (s *Store) fail(err error) error {
	if nerr := s.notify(events.KindError, err.Error()); nerr != nil {
		return errors.Join(err, nerr)
	}
	return err
}
