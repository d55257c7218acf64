package alert

import (
	"time"

	"github.com/sandeepkv93/duotimer/internal/model"
)

type Waveform string

const (
	WaveSine     Waveform = "sine"
	WaveTriangle Waveform = "triangle"
	WaveSquare   Waveform = "square"
)

type Tone struct {
	Frequency float64
	Duration  time.Duration
	Waveform  Waveform
}

// Melody is a sequence of tones separated by Gap.
type Melody struct {
	Name  string
	Tones []Tone
	Gap   time.Duration
}

const defaultGap = 50 * time.Millisecond

var (
	FocusStartMelody = Melody{
		Name: "focus-start",
		Gap:  defaultGap,
		Tones: []Tone{
			{Frequency: 440, Duration: 250 * time.Millisecond, Waveform: WaveSine}, // A4
			{Frequency: 660, Duration: 250 * time.Millisecond, Waveform: WaveSine}, // E5
			{Frequency: 880, Duration: 350 * time.Millisecond, Waveform: WaveSine}, // A5
		},
	}
	BreakStartMelody = Melody{
		Name: "break-start",
		Gap:  defaultGap,
		Tones: []Tone{
			{Frequency: 660, Duration: 200 * time.Millisecond, Waveform: WaveTriangle},
			{Frequency: 520, Duration: 200 * time.Millisecond, Waveform: WaveTriangle},
			{Frequency: 390, Duration: 300 * time.Millisecond, Waveform: WaveTriangle},
		},
	}
	SessionEndMelody = Melody{
		Name: "session-end",
		Gap:  defaultGap,
		Tones: []Tone{
			{Frequency: 784, Duration: 200 * time.Millisecond, Waveform: WaveSine}, // G5
			{Frequency: 659, Duration: 200 * time.Millisecond, Waveform: WaveSine}, // E5
			{Frequency: 523, Duration: 300 * time.Millisecond, Waveform: WaveSine}, // C5
		},
	}
	FocusStartTone = Melody{
		Name:  "focus-tone",
		Tones: []Tone{{Frequency: 880, Duration: 400 * time.Millisecond, Waveform: WaveSine}},
	}
	BreakStartTone = Melody{
		Name:  "break-tone",
		Tones: []Tone{{Frequency: 660, Duration: 400 * time.Millisecond, Waveform: WaveTriangle}},
	}
)

// CueFor picks the sound for a transition. Ticks without a transition are silent.
func CueFor(tr model.Transition) (Melody, bool) {
	switch tr.Kind {
	case model.TransitionManual:
		if tr.To == model.ModeFocus {
			return FocusStartMelody, true
		}
		if tr.To == model.ModeShortBreak {
			return BreakStartTone, true
		}
		return BreakStartMelody, true
	case model.TransitionComplete:
		if tr.From == model.ModeFocus {
			return SessionEndMelody, true
		}
		return FocusStartTone, true
	default:
		return Melody{}, false
	}
}

func (m Melody) Length() time.Duration {
	var total time.Duration
	for i, t := range m.Tones {
		if i > 0 {
			total += m.Gap
		}
		total += t.Duration
	}
	return total
}
