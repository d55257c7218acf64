package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/duotimer/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/title Deep  work", TypeTitle},
		{"set focus 30", TypeSet},
		{"/mode long", TypeMode},
		{"start", TypeStart},
		{"/pause", TypePause},
		{"RESET", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/title  Deep  work ")
	if err != nil {
		t.Fatalf("parse title: %v", err)
	}
	if cmd.Title.Title != "Deep  work" {
		t.Fatalf("unexpected title: %q", cmd.Title.Title)
	}

	cmd, err = Parse("set short 10")
	if err != nil {
		t.Fatalf("parse set: %v", err)
	}
	if cmd.Set.Mode != model.ModeShortBreak || cmd.Set.Minutes != 10 {
		t.Fatalf("unexpected set args: %+v", cmd.Set)
	}

	cmd, err = Parse("mode focus")
	if err != nil {
		t.Fatalf("parse mode: %v", err)
	}
	if cmd.Mode.Mode != model.ModeFocus {
		t.Fatalf("unexpected mode: %q", cmd.Mode.Mode)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{"title", "set focus", "set nap 5", "set focus 0", "set focus ten", "mode", "mode nap", "start now"}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/set long 20")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Set: func(a SetArgs) (Result, error) {
			called = true
			if a.Mode != model.ModeLongBreak || a.Minutes != 20 {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("reset")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
