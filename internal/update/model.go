package update

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/duotimer/internal/alert"
	"github.com/sandeepkv93/duotimer/internal/model"
	"github.com/sandeepkv93/duotimer/internal/storage"
	"github.com/sandeepkv93/duotimer/internal/ticker"
)

// Ticker is the subset of ticker.Driver the model drives.
type Ticker interface {
	Start(key string) (uint64, error)
	Stop(key string)
	C() <-chan ticker.Tick
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NextPane   string
	PrevPane   string
	Focus      string
	ShortBreak string
	LongBreak  string
	Toggle     string
	Reset      string
	EditTitle  string
	Palette    string
	History    string
	Help       string
	Quit       string
}

// TimerPane is one independent timer instance bound to its storage key.
type TimerPane struct {
	Key   string
	Timer model.Timer
	// seq identifies the live tick handle; zero when no handle is running.
	seq uint64
}

type EditorKind string

const (
	EditorNone     EditorKind = ""
	EditorTitle    EditorKind = "title"
	EditorDuration EditorKind = "duration"
)

type EditorState struct {
	Kind EditorKind
	Mode model.Mode
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Dependencies are the collaborators injected by the entry point. Nil values
// fall back to no-op implementations.
type Dependencies struct {
	Repository storage.Repository
	Ticker     Ticker
	Player     alert.Player
	Notifier   alert.Notifier
	Logger     *slog.Logger
	Now        func() time.Time
}

type Model struct {
	Panes          []TimerPane
	Focused        int
	Editor         EditorState
	Palette        CommandPaletteState
	HelpVisible    bool
	HistoryVisible bool
	Notifications  []alert.Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	repo          storage.Repository
	ticker        Ticker
	player        alert.Player
	notifier      alert.Notifier
	logger        *slog.Logger
	now           func() time.Time
	storeTimeout  time.Duration
	history       []storage.Completion
	historyTotals map[string]int

	titleInput    textinput.Model
	durationInput textinput.Model
	commandInput  textinput.Model
	timerProgress progress.Model
	historyTable  table.Model
	helpModel     help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TickMsg carries one beat from the tick driver into the update loop.
type TickMsg struct {
	Tick ticker.Tick
}

// DesktopSentMsg reports the outcome of an asynchronous desktop notification.
type DesktopSentMsg struct {
	Err error
}

func NewModel() Model {
	return NewModelWithConfig(Dependencies{}, DefaultRuntimeConfig())
}

func NewModelWithConfig(deps Dependencies, cfg RuntimeConfig) Model {
	m := Model{
		DesktopEnabled: cfg.DesktopNotifications,
		repo:           deps.Repository,
		ticker:         deps.Ticker,
		player:         deps.Player,
		notifier:       deps.Notifier,
		logger:         deps.Logger,
		now:            deps.Now,
		storeTimeout:   2 * time.Second,
		Keys: GlobalKeyMap{
			NextPane:   "tab",
			PrevPane:   "shift+tab",
			Focus:      "f",
			ShortBreak: "s",
			LongBreak:  "l",
			Toggle:     " ",
			Reset:      "r",
			EditTitle:  "e",
			Palette:    "/",
			History:    "h",
			Help:       "?",
			Quit:       "q",
		},
	}
	if m.player == nil {
		m.player = alert.NoopPlayer{}
	}
	if m.notifier == nil {
		m.notifier = alert.NoopNotifier{}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.now == nil {
		m.now = time.Now
	}

	defaults := model.NewTimerWithDurations(cfg.DefaultDurations())
	keys := cfg.Instances
	if len(keys) == 0 {
		keys = DefaultRuntimeConfig().Instances
	}
	for _, key := range keys {
		m.Panes = append(m.Panes, TimerPane{Key: key, Timer: m.loadTimer(key, defaults)})
	}
	for i := range m.Panes {
		if m.Panes[i].Timer.Running {
			m.startTicking(i)
		}
	}

	m.initBubbleComponents()
	m.syncBubbleData()
	m.Status = StatusBar{Text: "ready"}
	return m
}

func (m *Model) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.storeTimeout)
}

func (m Model) paneIndex(key string) int {
	for i := range m.Panes {
		if m.Panes[i].Key == key {
			return i
		}
	}
	return -1
}
