package schedule

// ParseTask builds a validated Task from raw text fields. Malformed times fail
// with *ParseError; bad priorities, empty descriptions and inverted intervals
// fail with *ValidationError.
func ParseTask(description, start, end, priority string) (Task, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return Task{}, err
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return Task{}, err
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return Task{}, err
	}
	return NewTask(description, s, e, p)
}
