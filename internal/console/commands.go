package console

import (
	"fmt"

	"github.com/pearcec/astrosched/internal/events"
	"github.com/pearcec/astrosched/internal/schedule"
)

func (l *Loop) add() error {
	a, err := l.askAll(
		"Enter task description: ",
		"Enter start time (HH:MM): ",
		"Enter end time (HH:MM): ",
		"Enter priority (Low/Medium/High): ",
	)
	if err != nil {
		return err
	}

	if err := l.store.Create(a[0], a[1], a[2], a[3]); err != nil {
		return err
	}
	l.success("Task added successfully. No conflicts.")
	return nil
}

func (l *Loop) remove() error {
	desc, err := l.ask("Enter task description to remove: ")
	if err != nil {
		return err
	}
	if err := l.store.Remove(desc); err != nil {
		return err
	}
	l.success("Task removed successfully.")
	return nil
}

func (l *Loop) edit() error {
	a, err := l.askAll(
		"Enter task description to edit: ",
		"Enter new task description: ",
		"Enter new start time (HH:MM): ",
		"Enter new end time (HH:MM): ",
		"Enter new priority (Low/Medium/High): ",
	)
	if err != nil {
		return err
	}
	if err := l.store.Edit(a[0], a[1], a[2], a[3], a[4]); err != nil {
		return err
	}
	l.success("Task edited successfully. No conflicts.")
	return nil
}

func (l *Loop) complete() error {
	desc, err := l.ask("Enter task description to mark as completed: ")
	if err != nil {
		return err
	}
	if err := l.store.Complete(desc); err != nil {
		return err
	}
	l.success("Task marked as completed.")
	if task, ok := l.store.Get(desc); ok {
		fmt.Fprintln(l.out, l.style.Task(task))
	}
	return nil
}

func (l *Loop) view() error {
	n := 0
	for task := range l.store.List() {
		fmt.Fprintln(l.out, l.style.Task(task))
		n++
	}
	if n == 0 {
		fmt.Fprintln(l.out, "No tasks scheduled for the day.")
	}
	return nil
}

// viewPriority reports a bad priority itself rather than returning it, so it
// is not logged as a failed mutation.
func (l *Loop) viewPriority() error {
	raw, err := l.ask("Enter priority (Low/Medium/High): ")
	if err != nil {
		return err
	}
	p, err := schedule.ParsePriority(raw)
	if err != nil {
		fmt.Fprintln(l.out, l.style.Error(fmt.Sprintf("Invalid priority: %s", raw)))
		return nil
	}

	n := 0
	for task := range l.store.ListByPriority(p) {
		fmt.Fprintln(l.out, l.style.Task(task))
		n++
	}
	if n == 0 {
		fmt.Fprintf(l.out, "No tasks with priority %s scheduled.\n", p)
	}
	return nil
}

func (l *Loop) history() error {
	var recorded []events.Notification
	if l.events != nil {
		recorded = l.events.Events()
	}
	if len(recorded) == 0 {
		fmt.Fprintln(l.out, "No schedule activity yet.")
		return nil
	}
	for _, n := range recorded {
		line := fmt.Sprintf("%s [%s] %s", n.At.Format("15:04:05"), n.Kind, n.Message)
		if n.IsError() {
			line = l.style.Error(line)
		}
		fmt.Fprintln(l.out, line)
	}
	return nil
}

func (l *Loop) help() error {
	fmt.Fprintln(l.out, l.style.Heading("Available commands:"))
	for _, c := range l.order {
		fmt.Fprintf(l.out, "  %-14s %s\n", c.name, l.style.Dim(c.help))
	}
	return nil
}
