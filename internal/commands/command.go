package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/duotimer/internal/model"
)

type Type string

const (
	TypeTitle Type = "title"
	TypeSet   Type = "set"
	TypeMode  Type = "mode"
	TypeStart Type = "start"
	TypePause Type = "pause"
	TypeReset Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type TitleArgs struct {
	Title string
}

type SetArgs struct {
	Mode    model.Mode
	Minutes int
}

type ModeArgs struct {
	Mode model.Mode
}

type Command struct {
	Type  Type
	Raw   string
	Title *TitleArgs
	Set   *SetArgs
	Mode  *ModeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeTitle:
		return parseTitle(input, raw, head)
	case TypeSet:
		return parseSet(input, args)
	case TypeMode:
		return parseMode(input, args)
	case TypeStart, TypePause, TypeReset:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseTitle keeps the original spacing of the title text.
func parseTitle(input, raw, head string) (Command, error) {
	title := strings.TrimSpace(raw[len(head):])
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "title requires text"}
	}
	return Command{Type: TypeTitle, Raw: input, Title: &TitleArgs{Title: title}}, nil
}

func parseSet(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires mode and minutes"}
	}
	mode, err := model.ParseMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown mode: %s", args[0])}
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil || minutes < model.MinDurationMinutes || minutes > model.MaxDurationMinutes {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("minutes must be %d-%d, got %s", model.MinDurationMinutes, model.MaxDurationMinutes, args[1])}
	}
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{Mode: mode, Minutes: minutes}}, nil
}

func parseMode(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "mode requires one of focus, short, long"}
	}
	mode, err := model.ParseMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown mode: %s", args[0])}
	}
	return Command{Type: TypeMode, Raw: raw, Mode: &ModeArgs{Mode: mode}}, nil
}
