package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pearcec/astrosched/internal/config"
	"github.com/pearcec/astrosched/internal/console"
	"github.com/pearcec/astrosched/internal/events"
	"github.com/pearcec/astrosched/internal/logsink"
	"github.com/pearcec/astrosched/internal/schedule"
	"github.com/pearcec/astrosched/internal/ui"
	"github.com/spf13/cobra"
)

var (
	rootConfigPath string
	rootLogFile    string
	rootNoColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "astrosched",
	Short: "Plan a crew member's day without double-booking a minute of it.",
	Long: `astrosched keeps the day's task list for a single crew member.

Tasks are time-boxed (HH:MM to HH:MM), carry a Low, Medium or High
priority, and may never overlap. Commands are read one per line:

  add            Add a new task
  remove         Remove a task
  edit           Edit an existing task
  complete       Mark a task as completed
  view           View all tasks
  view_priority  View tasks of one priority
  history        Show schedule activity this session
  help           Show the command list
  exit           Exit the program

A day plan template can be loaded at startup from the config file
(~/.config/astrosched/config.yaml, key day.tasks).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().StringVar(&rootConfigPath, "config", config.DefaultConfigPath, "Path to the config file")
	rootCmd.Flags().StringVar(&rootLogFile, "log-file", "", "Override the log file (\"-\" for stderr, relative paths resolve like log.path)")
	rootCmd.Flags().BoolVar(&rootNoColor, "no-color", false, "Disable coloured output")
}

func runRoot(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.LoadFile(rootConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logPath := cfg.LogPath()
	if cmd.Flags().Changed("log-file") {
		logPath = config.ResolveLogPath(rootLogFile)
	}
	sink, err := logsink.Open(logPath)
	if err != nil {
		return err
	}
	defer sink.Close()

	bus := events.NewBus()
	defer bus.Close()
	bus.Subscribe(sink)
	history := &events.Recorder{}
	bus.Subscribe(history)

	store := schedule.NewStore(bus)
	out := cmd.OutOrStdout()
	interactive := isTerminal(os.Stdin) && isTerminal(os.Stdout)
	style := ui.New(useColor(cfg.Display.Color, rootNoColor, isTerminal(os.Stdout)))

	loaded, errs := seedDay(store, cfg.Day.Tasks)
	for _, err := range errs {
		sink.Errorf("config", "%v", err)
		fmt.Fprintln(cmd.ErrOrStderr(), style.Error("Skipping day plan entry: "+err.Error()))
	}
	sink.Infof("astrosched", "session started, %d of %d planned tasks loaded", loaded, len(cfg.Day.Tasks))

	if interactive && cfg.ShowBanner() {
		PrintBanner(out)
		PrintGreeting(out, time.Now(), store.Len())
	}

	loop := console.New(store, cmd.InOrStdin(), out,
		console.WithStyle(style),
		console.WithLogger(sink),
		console.WithPrompt(cfg.Display.Prompt),
		console.WithHistory(history),
	)
	if err := loop.Run(cmd.Context()); err != nil {
		sink.Errorf("astrosched", "session aborted: %v", err)
		return err
	}
	sink.Infof("astrosched", "session ended with %d tasks", store.Len())
	return nil
}

// useColor resolves the display.color setting against the --no-color flag
// and whether stdout is a terminal.
func useColor(mode string, disabled, tty bool) bool {
	if disabled {
		return false
	}
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return tty && os.Getenv("NO_COLOR") == ""
	}
}
