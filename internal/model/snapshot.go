package model

import (
	"encoding/json"
	"math"
)

// Snapshot is the persisted form of a Timer. Field names match the stored JSON.
type Snapshot struct {
	Title           string     `json:"title"`
	CompletedCounts ModeValues `json:"completedCounts"`
	Durations       ModeValues `json:"durations"`
	Mode            Mode       `json:"mode"`
	SecondsLeft     int        `json:"secondsLeft"`
	IsRunning       bool       `json:"isRunning"`
	Sessions        int        `json:"sessions"`
}

func (t Timer) Snapshot() Snapshot {
	return Snapshot{
		Title:           t.Title,
		CompletedCounts: t.Completed,
		Durations:       t.Durations,
		Mode:            t.Mode,
		SecondsLeft:     t.SecondsLeft,
		IsRunning:       t.Running,
		Sessions:        t.Sessions,
	}
}

func EncodeSnapshot(t Timer) ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

// DecodeSnapshot restores a Timer from stored bytes. It never fails: every field is
// validated on its own and falls back to its default when missing or malformed.
func DecodeSnapshot(raw []byte) Timer {
	return DecodeSnapshotWithDefaults(raw, NewTimer())
}

// DecodeSnapshotWithDefaults is DecodeSnapshot with caller-supplied defaults.
func DecodeSnapshotWithDefaults(raw []byte, defaults Timer) Timer {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil || fields == nil {
		return defaults
	}

	out := defaults
	if v, ok := fields["title"]; ok {
		var title string
		if json.Unmarshal(v, &title) == nil && title != "" {
			out.Title = title
		}
	}

	out.Durations = decodeModeValues(fields["durations"], defaults.Durations, 1)
	out.Completed = decodeModeValues(fields["completedCounts"], defaults.Completed, 0)

	out.Mode = defaults.Mode
	if v, ok := fields["mode"]; ok {
		var mode Mode
		if json.Unmarshal(v, &mode) == nil && mode.IsValid() {
			out.Mode = mode
		}
	}

	out.SecondsLeft = out.Durations.Get(out.Mode)
	if n, ok := decodeInt(fields["secondsLeft"]); ok && n >= 0 {
		out.SecondsLeft = min(n, out.Durations.Get(out.Mode))
	}

	out.Running = defaults.Running
	if v, ok := fields["isRunning"]; ok {
		var running bool
		if json.Unmarshal(v, &running) == nil {
			out.Running = running
		}
	}

	out.Sessions = out.Completed.Focus
	if n, ok := decodeInt(fields["sessions"]); ok && n >= 0 {
		out.Sessions = n
	}
	return out
}

func decodeModeValues(raw json.RawMessage, defaults ModeValues, minValue int) ModeValues {
	if len(raw) == 0 {
		return defaults
	}
	var fields map[string]json.RawMessage
	if json.Unmarshal(raw, &fields) != nil || fields == nil {
		return defaults
	}
	out := defaults
	for _, m := range Modes {
		if n, ok := decodeInt(fields[string(m)]); ok && n >= minValue {
			out = out.With(m, n)
		}
	}
	return out
}

// decodeInt accepts any JSON number with an integral value.
func decodeInt(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
