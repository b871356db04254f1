package schedule

import (
	"errors"
	"slices"
	"testing"

	"github.com/pearcec/astrosched/internal/events"
)

func mustTask(t *testing.T, desc, start, end, priority string) Task {
	t.Helper()
	task, err := ParseTask(desc, start, end, priority)
	if err != nil {
		t.Fatalf("ParseTask(%q): %v", desc, err)
	}
	return task
}

func newTestStore(t *testing.T) (*Store, *events.Recorder) {
	t.Helper()
	bus := events.NewBus()
	rec := &events.Recorder{}
	bus.Subscribe(rec)
	return NewStore(bus), rec
}

func descriptions(s *Store) []string {
	var out []string
	for task := range s.List() {
		out = append(out, task.Description)
	}
	return out
}

type failingListener struct{ err error }

func (f *failingListener) Update(events.Notification) error { return f.err }

func TestStoreAddTouchingAndConflict(t *testing.T) {
	s, rec := newTestStore(t)

	if err := s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low")); err != nil {
		t.Fatalf("Add(Sleep) error = %v", err)
	}
	if err := s.Add(mustTask(t, "Exercise", "06:00", "07:00", "Medium")); err != nil {
		t.Fatalf("Add(Exercise) error = %v", err)
	}

	err := s.Add(mustTask(t, "Report", "05:00", "06:30", "High"))
	var cerr *ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("Add(Report) error = %v, want *ConflictError", err)
	}
	if cerr.Existing.Description != "Sleep" {
		t.Errorf("conflict reported against %q, want %q", cerr.Existing.Description, "Sleep")
	}

	if got := descriptions(s); !slices.Equal(got, []string{"Sleep", "Exercise"}) {
		t.Errorf("tasks after conflict = %v", got)
	}

	got := rec.Events()
	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Kind != events.KindAdded || got[1].Kind != events.KindAdded || got[2].Kind != events.KindError {
		t.Errorf("unexpected notification kinds: %v, %v, %v", got[0].Kind, got[1].Kind, got[2].Kind)
	}
}

func TestStoreListOrderedByStart(t *testing.T) {
	s, _ := newTestStore(t)

	for _, task := range []Task{
		mustTask(t, "Lunch", "12:00", "13:00", "Low"),
		mustTask(t, "Sleep", "00:00", "06:00", "Low"),
		mustTask(t, "EVA", "08:00", "11:30", "High"),
		mustTask(t, "Exercise", "06:00", "07:00", "Medium"),
		mustTask(t, "Report", "21:00", "22:00", "Medium"),
	} {
		if err := s.Add(task); err != nil {
			t.Fatalf("Add(%s): %v", task.Description, err)
		}
	}

	var prev TimeOfDay = -1
	for task := range s.List() {
		if task.Start < prev {
			t.Errorf("task %q starts at %s before previous %s", task.Description, task.Start, prev)
		}
		prev = task.Start
	}

	want := []string{"Sleep", "Exercise", "EVA", "Lunch", "Report"}
	if got := descriptions(s); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestStoreListIsRestartable(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))
	s.Add(mustTask(t, "Exercise", "06:00", "07:00", "Medium"))

	seq := s.List()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second iteration = %v, want %v", second, first)
	}

	// Stopping early must not break later iterations.
	for range seq {
		break
	}
	if n := len(slices.Collect(seq)); n != 2 {
		t.Errorf("iteration after early break returned %d tasks, want 2", n)
	}
}

func TestStoreListByPriority(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(mustTask(t, "Report", "21:00", "22:00", "High"))
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))
	s.Add(mustTask(t, "EVA", "08:00", "11:30", "High"))

	var got []string
	for task := range s.ListByPriority(High) {
		got = append(got, task.Description)
	}
	if want := []string{"EVA", "Report"}; !slices.Equal(got, want) {
		t.Errorf("ListByPriority(High) = %v, want %v", got, want)
	}

	if n := len(slices.Collect(s.ListByPriority(Medium))); n != 0 {
		t.Errorf("ListByPriority(Medium) returned %d tasks, want 0", n)
	}
}

func TestStoreDuplicateDescription(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))

	err := s.Add(mustTask(t, "SLEEP", "22:00", "23:00", "Low"))
	var derr *DuplicateError
	if !errors.As(err, &derr) {
		t.Fatalf("Add(SLEEP) error = %v, want *DuplicateError", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreAddRejectsInvalidTask(t *testing.T) {
	s, _ := newTestStore(t)

	var verr *ValidationError
	if err := s.Add(Task{}); !errors.As(err, &verr) {
		t.Errorf("Add(Task{}) error = %v, want *ValidationError", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStoreAddNormalizesTask(t *testing.T) {
	s, _ := newTestStore(t)
	start, _ := ParseTimeOfDay("00:00")
	end, _ := ParseTimeOfDay("06:00")

	err := s.Add(Task{Description: "  Sleep  ", Start: start, End: end, Priority: Low, Completed: true})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, ok := s.Get("sleep")
	if !ok {
		t.Fatal("added task not found")
	}
	if got.Description != "Sleep" {
		t.Errorf("Description = %q, want %q", got.Description, "Sleep")
	}
	if got.Completed {
		t.Error("added task should be pending")
	}
	if err := s.Complete("Sleep"); err != nil {
		t.Errorf("Complete() after Add error = %v", err)
	}
}

func TestStoreCreate(t *testing.T) {
	tests := []struct {
		name  string
		start string
		prio  string
		check func(error) bool
	}{
		{"valid", "08:00", "High", func(err error) bool { return err == nil }},
		{"bad time", "8am", "High", func(err error) bool { var e *ParseError; return errors.As(err, &e) }},
		{"bad priority", "08:00", "Urgent", func(err error) bool { var e *ValidationError; return errors.As(err, &e) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, rec := newTestStore(t)
			err := s.Create("EVA", tt.start, "11:30", tt.prio)
			if !tt.check(err) {
				t.Fatalf("Create() error = %v, wrong kind", err)
			}

			got := rec.Events()
			if len(got) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(got))
			}
			if wantErr := err != nil; got[0].IsError() != wantErr {
				t.Errorf("notification kind = %q, error = %v", got[0].Kind, err)
			}
		})
	}
}

func TestStoreAddRemoveRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))
	before := slices.Collect(s.List())

	s.Add(mustTask(t, "Exercise", "06:00", "07:00", "Medium"))
	if err := s.Remove("exercise"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	if after := slices.Collect(s.List()); !slices.Equal(before, after) {
		t.Errorf("after round trip = %v, want %v", after, before)
	}
}

func TestStoreRemoveNotFound(t *testing.T) {
	s, rec := newTestStore(t)

	err := s.Remove("Nothing")
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("Remove() error = %v, want *NotFoundError", err)
	}
	if got := rec.Events(); len(got) != 1 || !got[0].IsError() {
		t.Errorf("expected one error notification, got %v", got)
	}
}

func TestStoreComplete(t *testing.T) {
	s, rec := newTestStore(t)
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))

	if err := s.Complete("sleep"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	err := s.Complete("Sleep")
	var aerr *AlreadyCompletedError
	if !errors.As(err, &aerr) {
		t.Fatalf("second Complete() error = %v, want *AlreadyCompletedError", err)
	}

	task, ok := s.Get("Sleep")
	if !ok || !task.Completed {
		t.Errorf("Get(Sleep) = %+v, %v; want completed", task, ok)
	}

	var nerr *NotFoundError
	if err := s.Complete("Nope"); !errors.As(err, &nerr) {
		t.Errorf("Complete(Nope) error = %v, want *NotFoundError", err)
	}

	kinds := []events.Kind{}
	for _, n := range rec.Events() {
		kinds = append(kinds, n.Kind)
	}
	want := []events.Kind{events.KindAdded, events.KindCompleted, events.KindError, events.KindError}
	if !slices.Equal(kinds, want) {
		t.Errorf("notification kinds = %v, want %v", kinds, want)
	}
}

func TestStoreEdit(t *testing.T) {
	s, rec := newTestStore(t)
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))
	s.Add(mustTask(t, "Exercise", "06:00", "07:00", "Medium"))
	s.Complete("Exercise")

	if err := s.Edit("exercise", "Workout", "18:00", "19:00", "high"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	if _, ok := s.Get("Exercise"); ok {
		t.Error("old description should no longer resolve")
	}
	task, ok := s.Get("workout")
	if !ok {
		t.Fatal("edited task not found")
	}
	if task.Start.String() != "18:00" || task.End.String() != "19:00" || task.Priority != High {
		t.Errorf("edited task = %v", task)
	}
	if !task.Completed {
		t.Error("edit should keep the completion flag")
	}

	if got := descriptions(s); !slices.Equal(got, []string{"Sleep", "Workout"}) {
		t.Errorf("List() = %v", got)
	}

	last := rec.Events()[len(rec.Events())-1]
	if last.Kind != events.KindEdited {
		t.Errorf("last notification kind = %q, want %q", last.Kind, events.KindEdited)
	}
}

func TestStoreEditAllowsOwnInterval(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))

	// Overlapping only with itself is not a conflict.
	if err := s.Edit("Sleep", "Sleep", "00:30", "06:00", "Medium"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	task, _ := s.Get("Sleep")
	if task.Start.String() != "00:30" || task.Priority != Medium {
		t.Errorf("edited task = %v", task)
	}
}

func TestStoreEditIsAtomic(t *testing.T) {
	tests := []struct {
		name                   string
		desc, start, end, prio string
		check                  func(error) bool
	}{
		{
			name: "conflict", desc: "Sleep", start: "05:00", end: "06:30", prio: "Low",
			check: func(err error) bool { var e *ConflictError; return errors.As(err, &e) },
		},
		{
			name: "bad time", desc: "Sleep", start: "5 o'clock", end: "06:00", prio: "Low",
			check: func(err error) bool { var e *ParseError; return errors.As(err, &e) },
		},
		{
			name: "inverted", desc: "Sleep", start: "06:00", end: "05:00", prio: "Low",
			check: func(err error) bool { var e *ValidationError; return errors.As(err, &e) },
		},
		{
			name: "bad priority", desc: "Sleep", start: "00:00", end: "06:00", prio: "Critical",
			check: func(err error) bool { var e *ValidationError; return errors.As(err, &e) },
		},
		{
			name: "rename onto other task", desc: "Exercise", start: "00:00", end: "05:00", prio: "Low",
			check: func(err error) bool { var e *DuplicateError; return errors.As(err, &e) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))
			s.Add(mustTask(t, "Exercise", "06:00", "07:00", "Medium"))
			before := slices.Collect(s.List())
			original, _ := s.Get("Sleep")

			err := s.Edit("Sleep", tt.desc, tt.start, tt.end, tt.prio)
			if !tt.check(err) {
				t.Fatalf("Edit() error = %v, wrong kind", err)
			}

			got, ok := s.Get("Sleep")
			if !ok {
				t.Fatal("original task disappeared after failed edit")
			}
			if got != original {
				t.Errorf("original task changed: got %v, want %v", got, original)
			}
			if after := slices.Collect(s.List()); !slices.Equal(before, after) {
				t.Errorf("store changed: got %v, want %v", after, before)
			}
		})
	}
}

func TestStoreEditNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Edit("Ghost", "Ghost", "01:00", "02:00", "Low")
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("Edit() error = %v, want *NotFoundError", err)
	}
}

func TestStoreListenerErrorPropagates(t *testing.T) {
	bus := events.NewBus()
	boom := errors.New("log unavailable")
	bus.Subscribe(&failingListener{err: boom})
	s := NewStore(bus)

	err := s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low"))
	if !errors.Is(err, boom) {
		t.Fatalf("Add() error = %v, want %v", err, boom)
	}
	// The mutation itself went through before the listener failed.
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	err = s.Remove("Nothing")
	var nerr *NotFoundError
	if !errors.As(err, &nerr) || !errors.Is(err, boom) {
		t.Errorf("Remove() error = %v, want NotFoundError joined with listener error", err)
	}
}

func TestStoreNilPublisher(t *testing.T) {
	s := NewStore(nil)
	if err := s.Add(mustTask(t, "Sleep", "00:00", "06:00", "Low")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Complete("Sleep"); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}
