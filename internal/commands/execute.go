package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Log      func(LogArgs) (Result, error)
	Points   func(PointsArgs) (Result, error)
	Task     func(TaskArgs) (Result, error)
	Event    func(EventArgs) (Result, error)
	Goto     func(GotoArgs) (Result, error)
	Exercise func(ExerciseArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeLog:
		if handlers.Log == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "log handler not configured"}
		}
		return handlers.Log(*cmd.Log)
	case TypePoints:
		if handlers.Points == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "points handler not configured"}
		}
		return handlers.Points(*cmd.Points)
	case TypeTask:
		if handlers.Task == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "task handler not configured"}
		}
		return handlers.Task(*cmd.Task)
	case TypeEvent:
		if handlers.Event == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "event handler not configured"}
		}
		return handlers.Event(*cmd.Event)
	case TypeGoto:
		if handlers.Goto == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "goto handler not configured"}
		}
		return handlers.Goto(*cmd.Goto)
	case TypeExercise:
		if handlers.Exercise == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "exercise handler not configured"}
		}
		return handlers.Exercise(*cmd.Exercise)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
