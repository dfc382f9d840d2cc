package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/recorder"
	"github.com/sandeepkv93/daygrid/internal/storage"
	"github.com/sandeepkv93/daygrid/internal/update"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	dbPath     string
	logFile    string
	days       int
	offset     int
	min        int
	max        int
	selected   int
	month      string
	weekStart  string
	vim        bool
	desktop    bool
	noReflect  bool
}

// gridFlags are the flags that override a saved grid snapshot.
var gridFlags = []string{"days", "offset", "min", "max", "selected"}

func newRootCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "daygrid",
		Short: "A keyboard and mouse navigable day grid for the terminal.",
		Example: `
daygrid --days 28 --offset 4
daygrid --month 2026-02 --week-start monday
daygrid --db ~/.local/share/daygrid.db --vim
daygrid history --db ~/.local/share/daygrid.db
`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			return runUI(cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default ~/.config/daygrid/config.yaml)")
	pf.StringVar(&o.dbPath, "db", "", "sqlite database for snapshots and selection history")
	pf.StringVar(&o.logFile, "log-file", "", "write structured logs to this file")

	f := cmd.Flags()
	f.IntVar(&o.days, "days", 31, "number of day cells")
	f.IntVar(&o.offset, "offset", 1, "column (1-7) of the first day")
	f.IntVar(&o.min, "min", 0, "first enabled day index")
	f.IntVar(&o.max, "max", 32, "exclusive upper bound of enabled day indexes")
	f.IntVar(&o.selected, "selected", -1, "selected day index (-1 for none)")
	f.StringVar(&o.month, "month", "", "lay the grid out as a calendar month (YYYY-MM)")
	f.StringVar(&o.weekStart, "week-start", "sunday", "first column of the week: sunday or monday")
	f.BoolVar(&o.vim, "vim", false, "enable h/j/k/l g/G navigation")
	f.BoolVar(&o.desktop, "notify", false, "send a desktop notification for each selection")
	f.BoolVar(&o.noReflect, "no-reflect", false, "do not write a picked day back as the selection")

	cmd.AddCommand(newHistoryCommand(o), newConfigCommand(o))
	return cmd
}

// resolve layers defaults, the config file, the environment and finally the
// flags the user actually set.
func (o *options) resolve(cmd *cobra.Command) (update.RuntimeConfig, error) {
	path, err := o.configFile()
	if err != nil {
		return update.RuntimeConfig{}, err
	}
	cfg, err := update.LoadConfigFile(path, update.DefaultRuntimeConfig())
	if err != nil {
		return update.RuntimeConfig{}, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DatabasePath = o.dbPath
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Lookup("days") == nil {
		return cfg, nil
	}
	if flags.Changed("days") {
		cfg.DayCount = o.days
	}
	if flags.Changed("offset") {
		cfg.GridOffset = o.offset
	}
	if flags.Changed("min") {
		cfg.MinEnabledIndex = o.min
	}
	if flags.Changed("max") {
		cfg.MaxEnabledIndex = o.max
	}
	if flags.Changed("selected") {
		cfg.SelectedDayIndex = o.selected
	}
	if flags.Changed("month") {
		cfg.Month = o.month
	}
	if flags.Changed("week-start") {
		cfg.WeekStart = o.weekStart
	}
	if flags.Changed("vim") {
		cfg.VimKeys = o.vim
	}
	if flags.Changed("notify") {
		cfg.DesktopNotifications = o.desktop
	}
	if flags.Changed("no-reflect") {
		cfg.ReflectSelection = !o.noReflect
	}
	for _, name := range gridFlags {
		if flags.Changed(name) {
			cfg.RestoreSnapshot = false
			break
		}
	}
	return cfg, nil
}

func runUI(cfg update.RuntimeConfig) error {
	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	deps := update.Deps{Logger: logger}
	if cfg.DesktopNotifications {
		deps.Notifier = update.BeeepDesktopNotifier{}
	}
	if cfg.DatabasePath != "" {
		repo, err := storage.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()

		engine := recorder.NewEngine(cfg.RecorderBuffer, repo, logger)
		engine.Start()
		defer engine.Stop()

		deps.Store = repo
		deps.Recorder = engine
	}

	logger.Info("starting", "days", cfg.DayCount, "db", cfg.DatabasePath)
	program := tea.NewProgram(update.NewModelWithConfig(cfg, deps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}
