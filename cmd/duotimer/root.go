package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/sandeepkv93/duotimer/internal/alert"
	"github.com/sandeepkv93/duotimer/internal/storage"
	"github.com/sandeepkv93/duotimer/internal/ticker"
	"github.com/sandeepkv93/duotimer/internal/update"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var (
	configPath string
	dbPath     string
	soundFlag  string
	timersFlag string
	notifyFlag bool
)

// rootCmd runs the timer TUI when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "duotimer",
	Short: "Independent focus/break timers in the terminal.",
	Long: `duotimer runs several independent pomodoro-style timers side by side. ` +
		`Each timer keeps its own mode, durations and counters, and its state is ` +
		`saved to a local SQLite database after every change.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runTUI(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "duotimer.yaml", "YAML config file (ignored when missing)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.Flags().StringVar(&soundFlag, "sound", "", "sound backend: bell, synth or off")
	rootCmd.Flags().StringVar(&timersFlag, "timers", "", "comma separated timer keys")
	rootCmd.Flags().BoolVar(&notifyFlag, "notify", false, "send a desktop notification when a session completes")
}

// loadConfig layers defaults, the YAML file, .env, the environment and flags.
func loadConfig(cmd *cobra.Command) (update.RuntimeConfig, error) {
	_ = godotenv.Load()

	cfg, err := update.LoadRuntimeConfigFile(configPath, update.DefaultRuntimeConfig())
	if err != nil {
		return cfg, err
	}
	cfg = update.RuntimeConfigFromEnv(cfg)

	if flagChanged(cmd, "db") {
		cfg.DatabasePath = strings.TrimSpace(dbPath)
	}
	if flagChanged(cmd, "sound") {
		cfg.Sound = strings.ToLower(strings.TrimSpace(soundFlag))
	}
	if flagChanged(cmd, "timers") {
		keys := update.ParseInstances(timersFlag)
		if len(keys) == 0 {
			return cfg, fmt.Errorf("--timers needs at least one key")
		}
		cfg.Instances = keys
	}
	if flagChanged(cmd, "notify") {
		cfg.DesktopNotifications = notifyFlag
	}
	if cfg.DatabasePath == "" {
		return cfg, fmt.Errorf("database path is empty")
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func openRepository(path string) (*storage.SQLiteRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return storage.OpenSQLite(path)
}

// newLogger writes JSON logs to path. The TUI owns the terminal, so an empty
// path discards logs.
func newLogger(path string) (*slog.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func runTUI(cfg update.RuntimeConfig) error {
	logger, closeLog, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	atexit.Register(closeLog)

	repo, err := openRepository(cfg.DatabasePath)
	if err != nil {
		return err
	}
	atexit.Register(func() {
		if err := repo.Close(); err != nil {
			logger.Error("close database failed", "err", err)
		}
	})

	driver := ticker.NewDriver(time.Second, cfg.TickBuffer)
	atexit.Register(driver.Close)

	player, err := alert.NewPlayer(cfg.Sound, os.Stdout, logger)
	if err != nil {
		logger.Warn("sound backend unavailable", "backend", cfg.Sound, "err", err)
	}

	var notifier alert.Notifier = alert.NoopNotifier{}
	if cfg.DesktopNotifications {
		notifier = alert.NewDesktopNotifier("duotimer")
		if c, ok := notifier.(io.Closer); ok {
			atexit.Register(func() { _ = c.Close() })
		}
	}

	logger.Info("starting", "db", cfg.DatabasePath, "timers", cfg.Instances, "sound", cfg.Sound)
	model := update.NewModelWithConfig(update.Dependencies{
		Repository: repo,
		Ticker:     driver,
		Player:     player,
		Notifier:   notifier,
		Logger:     logger,
	}, cfg)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("duotimer failed: %w", err)
	}
	return nil
}
