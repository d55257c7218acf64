package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tm := NewTimer().Rename("Study")
	tm, err := tm.SetDurationMinutes(ModeShortBreak, 7)
	require.NoError(t, err)
	tm, _ = tm.Complete()
	tm, _ = tm.Complete()
	tm = tm.Start()
	tm.SecondsLeft = 321

	raw, err := EncodeSnapshot(tm)
	require.NoError(t, err)

	got := DecodeSnapshot(raw)
	require.Equal(t, tm, got)
}

func TestSnapshotUsesStoredFieldNames(t *testing.T) {
	raw, err := EncodeSnapshot(NewTimer())
	require.NoError(t, err)
	for _, name := range []string{`"title"`, `"completedCounts"`, `"durations"`, `"mode"`, `"secondsLeft"`, `"isRunning"`, `"shortBreak"`} {
		require.Contains(t, string(raw), name)
	}
}

func TestDecodeMalformedYieldsDefaults(t *testing.T) {
	inputs := []string{
		"",
		"not json",
		"{",
		"null",
		"[]",
		`"a string"`,
		"42",
	}
	for _, in := range inputs {
		require.Equal(t, NewTimer(), DecodeSnapshot([]byte(in)), "input %q", in)
	}
}

func TestDecodeFallsBackPerField(t *testing.T) {
	raw := `{
		"title": 12,
		"mode": "longBreak",
		"durations": {"focus": 600, "shortBreak": "five", "longBreak": -1},
		"completedCounts": {"focus": 3, "shortBreak": 2.5},
		"secondsLeft": "soon",
		"isRunning": "yes"
	}`
	got := DecodeSnapshot([]byte(raw))

	require.Equal(t, DefaultTitle, got.Title)
	require.Equal(t, ModeLongBreak, got.Mode)
	require.Equal(t, ModeValues{Focus: 600, ShortBreak: 300, LongBreak: 900}, got.Durations)
	require.Equal(t, ModeValues{Focus: 3}, got.Completed)
	require.Equal(t, 900, got.SecondsLeft)
	require.False(t, got.Running)
	require.Equal(t, 3, got.Sessions, "missing sessions falls back to completed focus count")
}

func TestDecodeUnknownModeFallsBackToFocus(t *testing.T) {
	got := DecodeSnapshot([]byte(`{"mode":"nap","secondsLeft":30}`))
	require.Equal(t, ModeFocus, got.Mode)
	require.Equal(t, 30, got.SecondsLeft)
}

func TestDecodeClampsSecondsLeftToDuration(t *testing.T) {
	got := DecodeSnapshot([]byte(`{"mode":"shortBreak","durations":{"shortBreak":120},"secondsLeft":9999}`))
	require.Equal(t, 120, got.SecondsLeft)
}

func TestDecodeAcceptsIntegralFloats(t *testing.T) {
	got := DecodeSnapshot([]byte(`{"secondsLeft":1200.0,"isRunning":true}`))
	require.Equal(t, 1200, got.SecondsLeft)
	require.True(t, got.Running)
}

func TestDecodeWithCustomDefaults(t *testing.T) {
	defaults := NewTimerWithDurations(ModeValues{Focus: 50 * 60, ShortBreak: 10 * 60, LongBreak: 30 * 60})
	got := DecodeSnapshotWithDefaults(nil, defaults)
	require.Equal(t, defaults, got)

	got = DecodeSnapshotWithDefaults([]byte(`{"title":"Writing"}`), defaults)
	require.Equal(t, "Writing", got.Title)
	require.Equal(t, 50*60, got.SecondsLeft)
}
