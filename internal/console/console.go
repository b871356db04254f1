// Package console is the interactive front end of the schedule manager: it
// reads one command per line, prompts for the fields that command needs,
// runs it against the store and reports the outcome.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pearcec/astrosched/internal/events"
	"github.com/pearcec/astrosched/internal/schedule"
	"github.com/pearcec/astrosched/internal/ui"
)

// Logger receives error records for every failed command.
type Logger interface {
	Errorf(component, format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Errorf(string, string, ...any) {}

// errExit stops the loop without reporting an error.
var errExit = errors.New("exit")

type command struct {
	name string
	help string
	run  func(l *Loop) error
}

// commands is the fixed vocabulary, in help order.
var commands = []command{
	{"add", "Add a new task", (*Loop).add},
	{"remove", "Remove a task", (*Loop).remove},
	{"edit", "Edit an existing task", (*Loop).edit},
	{"complete", "Mark a task as completed", (*Loop).complete},
	{"view", "View all tasks", (*Loop).view},
	{"view_priority", "View tasks of one priority", (*Loop).viewPriority},
	{"history", "Show schedule activity this session", (*Loop).history},
	{"help", "Show this list", (*Loop).help},
	{"exit", "Exit the program", func(*Loop) error { return errExit }},
}

// Loop is a read-dispatch-print loop bound to one store.
type Loop struct {
	store  *schedule.Store
	in     *bufio.Reader
	out    io.Writer
	style  *ui.Style
	log    Logger
	events *events.Recorder
	prompt string
	order  []command
	byName map[string]command
}

// Option configures a Loop.
type Option func(*Loop)

// WithStyle sets the output style. The default is uncoloured.
func WithStyle(s *ui.Style) Option {
	return func(l *Loop) { l.style = s }
}

// WithLogger sets where failures are recorded.
func WithLogger(lg Logger) Option {
	return func(l *Loop) { l.log = lg }
}

// WithHistory sets the recorder the history command reads from. It should be
// subscribed to the same bus as the store.
func WithHistory(rec *events.Recorder) Option {
	return func(l *Loop) { l.events = rec }
}

// WithPrompt sets the text printed before each command is read.
func WithPrompt(p string) Option {
	return func(l *Loop) { l.prompt = p }
}

// New creates a loop reading commands from in and writing to out.
func New(store *schedule.Store, in io.Reader, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		store:  store,
		in:     bufio.NewReader(in),
		out:    out,
		style:  ui.New(false),
		log:    nopLogger{},
		prompt: "> ",
		order:  commands,
		byName: make(map[string]command, len(commands)),
	}
	for _, c := range commands {
		l.byName[c.name] = c
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run processes commands until exit, end of input, or ctx is done. Only a
// read failure or cancellation is returned; command failures are reported
// and the loop continues.
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, l.style.Heading("Astronaut Schedule Manager"))
	fmt.Fprintln(l.out, l.style.Dim("Type 'help' for a list of commands."))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(l.out, l.prompt)
		line, err := l.readLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(l.out)
			return nil
		}
		if err != nil {
			return err
		}

		name := strings.ToLower(strings.TrimSpace(line))
		if name == "" {
			continue
		}

		cmd, ok := l.byName[name]
		if !ok {
			fmt.Fprintln(l.out, l.style.Error(fmt.Sprintf("Unknown command: %s. Type 'help' for a list of commands.", name)))
			continue
		}

		err = cmd.run(l)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			fmt.Fprintln(l.out, "Exiting Astronaut Schedule Manager.")
			return nil
		case errors.Is(err, io.EOF):
			fmt.Fprintln(l.out)
			return nil
		case isInputError(err):
			return err
		default:
			l.log.Errorf("console", "%s failed: %v", cmd.name, err)
			fmt.Fprintln(l.out, l.style.Error(Describe(err)))
		}
	}
}

// inputError marks a failure to read from the input stream.
type inputError struct{ err error }

func (e *inputError) Error() string { return "read input: " + e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

func isInputError(err error) bool {
	var ie *inputError
	return errors.As(err, &ie)
}

// readLine returns the next line without its line ending. Lines have no
// length limit; a final line without a newline is still returned.
func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", &inputError{err: err}
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ask prints question and returns the trimmed answer.
func (l *Loop) ask(question string) (string, error) {
	fmt.Fprint(l.out, question)
	line, err := l.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askAll asks each question in turn and stops at the first read failure.
func (l *Loop) askAll(questions ...string) ([]string, error) {
	answers := make([]string, 0, len(questions))
	for _, q := range questions {
		a, err := l.ask(q)
		if err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, nil
}

func (l *Loop) success(msg string) {
	fmt.Fprintln(l.out, l.style.Success(msg))
}

// Describe turns a command error into the message shown to the user.
func Describe(err error) string {
	var (
		parseErr     *schedule.ParseError
		validErr     *schedule.ValidationError
		conflictErr  *schedule.ConflictError
		notFoundErr  *schedule.NotFoundError
		completedErr *schedule.AlreadyCompletedError
		dupErr       *schedule.DuplicateError
	)
	switch {
	case errors.As(err, &parseErr):
		return fmt.Sprintf("Invalid time format: %q. Please use HH:MM.", parseErr.Input)
	case errors.As(err, &validErr):
		return fmt.Sprintf("Invalid input: %s.", validErr.Reason)
	case errors.As(err, &conflictErr):
		e := conflictErr.Existing
		return fmt.Sprintf("Task conflicts with existing task %q (%s - %s).", e.Description, e.Start, e.End)
	case errors.As(err, &notFoundErr):
		return fmt.Sprintf("Task not found: %s", notFoundErr.Description)
	case errors.As(err, &completedErr):
		return fmt.Sprintf("Task %q is already completed.", completedErr.Description)
	case errors.As(err, &dupErr):
		return fmt.Sprintf("A task named %q already exists.", dupErr.Description)
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
