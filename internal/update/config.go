package update

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sandeepkv93/duotimer/internal/model"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	DatabasePath         string   `yaml:"database"`
	Instances            []string `yaml:"timers"`
	FocusMinutes         int      `yaml:"focus_minutes"`
	ShortBreakMinutes    int      `yaml:"short_break_minutes"`
	LongBreakMinutes     int      `yaml:"long_break_minutes"`
	Sound                string   `yaml:"sound"`
	DesktopNotifications bool     `yaml:"desktop_notifications"`
	LogPath              string   `yaml:"log_file"`
	TickBuffer           int      `yaml:"tick_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:         ".duotimer.db",
		Instances:            []string{"study-timer-1", "study-timer-2"},
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		Sound:                "bell",
		DesktopNotifications: false,
		TickBuffer:           16,
	}
}

// DefaultDurations converts the configured minutes into per-mode seconds.
// Out-of-range values leave that mode at its built-in default.
func (c RuntimeConfig) DefaultDurations() model.ModeValues {
	out := model.DefaultDurations()
	for _, pair := range []struct {
		mode    model.Mode
		minutes int
	}{
		{model.ModeFocus, c.FocusMinutes},
		{model.ModeShortBreak, c.ShortBreakMinutes},
		{model.ModeLongBreak, c.LongBreakMinutes},
	} {
		if pair.minutes >= model.MinDurationMinutes && pair.minutes <= model.MaxDurationMinutes {
			out = out.With(pair.mode, pair.minutes*60)
		}
	}
	return out
}

// LoadRuntimeConfigFile overlays the YAML file at path onto base. A missing
// file is not an error.
func LoadRuntimeConfigFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return base, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("read config %s: %w", path, err)
	}

	var file RuntimeConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	var present map[string]any
	_ = yaml.Unmarshal(raw, &present)

	cfg := base
	if strings.TrimSpace(file.DatabasePath) != "" {
		cfg.DatabasePath = strings.TrimSpace(file.DatabasePath)
	}
	if keys := cleanKeys(file.Instances); len(keys) > 0 {
		cfg.Instances = keys
	}
	if file.FocusMinutes > 0 {
		cfg.FocusMinutes = file.FocusMinutes
	}
	if file.ShortBreakMinutes > 0 {
		cfg.ShortBreakMinutes = file.ShortBreakMinutes
	}
	if file.LongBreakMinutes > 0 {
		cfg.LongBreakMinutes = file.LongBreakMinutes
	}
	if strings.TrimSpace(file.Sound) != "" {
		cfg.Sound = strings.ToLower(strings.TrimSpace(file.Sound))
	}
	if _, ok := present["desktop_notifications"]; ok {
		cfg.DesktopNotifications = file.DesktopNotifications
	}
	if strings.TrimSpace(file.LogPath) != "" {
		cfg.LogPath = strings.TrimSpace(file.LogPath)
	}
	if file.TickBuffer > 0 {
		cfg.TickBuffer = file.TickBuffer
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("DUOTIMER_DB")); v != "" {
		cfg.DatabasePath = v
	}
	if keys := ParseInstances(os.Getenv("DUOTIMER_TIMERS")); len(keys) > 0 {
		cfg.Instances = keys
	}
	if v := strings.TrimSpace(os.Getenv("DUOTIMER_SOUND")); v != "" {
		cfg.Sound = strings.ToLower(v)
	}
	if v, ok := getEnvBool("DUOTIMER_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("DUOTIMER_FOCUS_MINUTES"); ok && v > 0 {
		cfg.FocusMinutes = v
	}
	if v, ok := getEnvInt("DUOTIMER_SHORT_BREAK_MINUTES"); ok && v > 0 {
		cfg.ShortBreakMinutes = v
	}
	if v, ok := getEnvInt("DUOTIMER_LONG_BREAK_MINUTES"); ok && v > 0 {
		cfg.LongBreakMinutes = v
	}
	if v := strings.TrimSpace(os.Getenv("DUOTIMER_LOG_FILE")); v != "" {
		cfg.LogPath = v
	}
	if v, ok := getEnvInt("DUOTIMER_TICK_BUFFER"); ok && v > 0 {
		cfg.TickBuffer = v
	}
	return cfg
}

// ParseInstances splits a comma separated key list, dropping blanks and duplicates.
func ParseInstances(raw string) []string {
	return cleanKeys(strings.Split(raw, ","))
}

func cleanKeys(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, k := range in {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
