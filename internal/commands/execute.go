package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Title func(TitleArgs) (Result, error)
	Set   func(SetArgs) (Result, error)
	Mode  func(ModeArgs) (Result, error)
	Start func() (Result, error)
	Pause func() (Result, error)
	Reset func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeTitle:
		if handlers.Title == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Title(*cmd.Title)
	case TypeSet:
		if handlers.Set == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Set(*cmd.Set)
	case TypeMode:
		if handlers.Mode == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Mode(*cmd.Mode)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Start()
	case TypePause:
		if handlers.Pause == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Pause()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
