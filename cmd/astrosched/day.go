package main

import (
	"fmt"

	"github.com/pearcec/astrosched/internal/config"
	"github.com/pearcec/astrosched/internal/schedule"
)

// seedDay adds the configured day plan to store through the task parser. Bad
// entries are skipped and reported; the rest still load.
func seedDay(store *schedule.Store, entries []config.TaskConfig) (int, []error) {
	var (
		loaded int
		errs   []error
	)
	for i, e := range entries {
		if err := store.Create(e.Description, e.Start, e.End, e.Priority); err != nil {
			errs = append(errs, fmt.Errorf("day.tasks[%d] %q: %w", i, e.Description, err))
			continue
		}
		loaded++
	}
	return loaded, errs
}
