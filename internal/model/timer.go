package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidMode     = errors.New("model: invalid timer mode")
	ErrInvalidDuration = errors.New("model: invalid duration")
)

const (
	// SessionsPerLongBreak is the number of completed focus sessions that earns a long break.
	SessionsPerLongBreak = 4

	MinDurationMinutes = 1
	MaxDurationMinutes = 24 * 60

	DefaultTitle = "Timer"
)

type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

func (m Mode) IsValid() bool {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

func (m Mode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

func (m Mode) Label() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return string(m)
	}
}

// ParseMode accepts the canonical names plus the short aliases used on the command line.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "focus", "f", "work":
		return ModeFocus, nil
	case "shortbreak", "short", "s", "short_break", "short-break":
		return ModeShortBreak, nil
	case "longbreak", "long", "l", "long_break", "long-break":
		return ModeLongBreak, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, raw)
	}
}

// ModeValues holds one integer per mode. It backs both durations and completion counts.
type ModeValues struct {
	Focus      int `json:"focus"`
	ShortBreak int `json:"shortBreak"`
	LongBreak  int `json:"longBreak"`
}

func (v ModeValues) Get(m Mode) int {
	switch m {
	case ModeShortBreak:
		return v.ShortBreak
	case ModeLongBreak:
		return v.LongBreak
	default:
		return v.Focus
	}
}

func (v ModeValues) With(m Mode, value int) ModeValues {
	switch m {
	case ModeFocus:
		v.Focus = value
	case ModeShortBreak:
		v.ShortBreak = value
	case ModeLongBreak:
		v.LongBreak = value
	}
	return v
}

func DefaultDurations() ModeValues {
	return ModeValues{
		Focus:      25 * 60,
		ShortBreak: 5 * 60,
		LongBreak:  15 * 60,
	}
}

type TransitionKind string

const (
	TransitionNone     TransitionKind = "none"
	TransitionComplete TransitionKind = "complete"
	TransitionManual   TransitionKind = "manual"
)

// Transition describes a mode change produced by a state update.
type Transition struct {
	Kind TransitionKind
	From Mode
	To   Mode
}

func (t Transition) Changed() bool {
	return t.Kind != TransitionNone
}

var noTransition = Transition{Kind: TransitionNone}

// Timer is the state of one countdown instance. All methods use value receivers
// and return the next state; the caller owns replacement.
type Timer struct {
	Title       string
	Mode        Mode
	SecondsLeft int
	Durations   ModeValues
	Completed   ModeValues
	Running     bool
	Sessions    int
}

func NewTimer() Timer {
	return NewTimerWithDurations(DefaultDurations())
}

func NewTimerWithDurations(d ModeValues) Timer {
	defaults := DefaultDurations()
	for _, m := range Modes {
		if d.Get(m) <= 0 {
			d = d.With(m, defaults.Get(m))
		}
	}
	return Timer{
		Title:       DefaultTitle,
		Mode:        ModeFocus,
		SecondsLeft: d.Focus,
		Durations:   d,
	}
}

func (t Timer) Start() Timer {
	t.Running = true
	return t
}

func (t Timer) Pause() Timer {
	t.Running = false
	return t
}

func (t Timer) Toggle() Timer {
	t.Running = !t.Running
	return t
}

// Reset stops the countdown and refills the current mode.
func (t Timer) Reset() Timer {
	t.Running = false
	t.SecondsLeft = t.Durations.Get(t.Mode)
	return t
}

// Tick advances a running timer by one second. Reaching zero completes the
// session in the same tick, so a full countdown takes exactly Durations[Mode] ticks.
func (t Timer) Tick() (Timer, Transition) {
	if !t.Running {
		return t, noTransition
	}
	if t.SecondsLeft > 0 {
		t.SecondsLeft--
	}
	if t.SecondsLeft > 0 {
		return t, noTransition
	}
	return t.Complete()
}

// Complete applies the end-of-session rule regardless of the remaining time.
func (t Timer) Complete() (Timer, Transition) {
	from := t.Mode
	next := ModeFocus
	if from == ModeFocus {
		t.Sessions++
		next = ModeShortBreak
		if t.Sessions%SessionsPerLongBreak == 0 {
			next = ModeLongBreak
		}
	}
	t.Completed = t.Completed.With(from, t.Completed.Get(from)+1)
	t.Mode = next
	t.SecondsLeft = t.Durations.Get(next)
	t.Running = false
	return t, Transition{Kind: TransitionComplete, From: from, To: next}
}

// SwitchMode is the manual mode selection: it bypasses the completion rule.
func (t Timer) SwitchMode(m Mode) (Timer, Transition, error) {
	if !m.IsValid() {
		return t, noTransition, fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	from := t.Mode
	t.Running = false
	t.Mode = m
	t.SecondsLeft = t.Durations.Get(m)
	return t, Transition{Kind: TransitionManual, From: from, To: m}, nil
}

// SetDurationMinutes updates one mode's duration. When m is the active mode the
// remaining time jumps to the new duration, even mid-countdown.
func (t Timer) SetDurationMinutes(m Mode, minutes int) (Timer, error) {
	if !m.IsValid() {
		return t, fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return t, fmt.Errorf("%w: %d minutes (allowed %d-%d)", ErrInvalidDuration, minutes, MinDurationMinutes, MaxDurationMinutes)
	}
	t.Durations = t.Durations.With(m, minutes*60)
	if t.Mode == m {
		t.SecondsLeft = minutes * 60
	}
	return t, nil
}

func (t Timer) Rename(title string) Timer {
	t.Title = strings.TrimSpace(title)
	return t
}

func (t Timer) DisplayTitle() string {
	if t.Title == "" {
		return "Untitled Timer"
	}
	return t.Title
}

// Progress is the elapsed fraction of the current mode in [0, 1].
func (t Timer) Progress() float64 {
	total := t.Durations.Get(t.Mode)
	if total <= 0 {
		return 0
	}
	p := 1 - float64(t.SecondsLeft)/float64(total)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Clock formats the remaining time as MM:SS.
func (t Timer) Clock() string {
	return FormatClock(t.SecondsLeft)
}

func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}
