package alert

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

// Player plays a melody without blocking the caller. Failures are the
// player's problem and never reach the timer.
type Player interface {
	Play(Melody)
}

type NoopPlayer struct{}

func (NoopPlayer) Play(Melody) {}

// BellPlayer rings the terminal bell once per tone.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (p *BellPlayer) Play(m Melody) {
	if p == nil || p.w == nil || len(m.Tones) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	bells := make([]byte, len(m.Tones))
	for i := range bells {
		bells[i] = '\a'
	}
	_, _ = p.w.Write(bells)
}

// SynthPlayer renders each tone with sox's `play` command in a background
// goroutine. A new melody waits for the previous one to finish.
type SynthPlayer struct {
	binary string
	logger *slog.Logger
	run    func(ctx context.Context, name string, args ...string) error
	mu     sync.Mutex
}

func NewSynthPlayer(logger *slog.Logger) *SynthPlayer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SynthPlayer{
		binary: "play",
		logger: logger,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// Available reports whether the synth binary is on PATH.
func (p *SynthPlayer) Available() bool {
	_, err := exec.LookPath(p.binary)
	return err == nil
}

func (p *SynthPlayer) Play(m Melody) {
	if len(m.Tones) == 0 {
		return
	}
	go p.render(m)
}

func (p *SynthPlayer) render(m Melody) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, tone := range m.Tones {
		if i > 0 && m.Gap > 0 {
			time.Sleep(m.Gap)
		}
		ctx, cancel := context.WithTimeout(context.Background(), tone.Duration+2*time.Second)
		err := p.run(ctx, p.binary, synthArgs(tone)...)
		cancel()
		if err != nil {
			p.logger.Warn("tone playback failed", "melody", m.Name, "frequency", tone.Frequency, "err", err)
			return
		}
	}
}

func synthArgs(t Tone) []string {
	wave := t.Waveform
	if wave == "" {
		wave = WaveSine
	}
	return []string{
		"-q", "-n",
		"synth", strconv.FormatFloat(t.Duration.Seconds(), 'f', 3, 64), string(wave), strconv.FormatFloat(t.Frequency, 'f', 1, 64),
		"fade", "q", "0.01", strconv.FormatFloat(t.Duration.Seconds(), 'f', 3, 64), "0.05",
	}
}

// NewPlayer resolves a sound backend name: "synth", "bell" or "off".
func NewPlayer(backend string, w io.Writer, logger *slog.Logger) (Player, error) {
	switch backend {
	case "", "bell":
		return NewBellPlayer(w), nil
	case "synth":
		p := NewSynthPlayer(logger)
		if !p.Available() {
			return NewBellPlayer(w), fmt.Errorf("alert: %q not found on PATH, falling back to bell", p.binary)
		}
		return p, nil
	case "off", "none":
		return NoopPlayer{}, nil
	default:
		return NoopPlayer{}, fmt.Errorf("alert: unknown sound backend %q", backend)
	}
}
