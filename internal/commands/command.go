// Package commands parses the command palette input into typed commands.
package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeLog      Type = "log"
	TypePoints   Type = "points"
	TypeTask     Type = "task"
	TypeEvent    Type = "event"
	TypeGoto     Type = "goto"
	TypeExercise Type = "exercise"
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

// LogArgs records exercise progress: `log <exercise name> <value>`.
type LogArgs struct {
	Exercise string
	Value    int
}

// PointsArgs sets the day's energy points: `points <physical> <mental>`.
type PointsArgs struct {
	Physical int
	Mental   int
}

// TaskArgs adds a task: `task <title>`.
type TaskArgs struct {
	Title string
}

// EventArgs adds an event: `event <yyyy-mm-dd> <title>`.
type EventArgs struct {
	Date  string
	Title string
}

// GotoArgs moves the focused date: `goto <yyyy-mm-dd>` or `goto today`.
type GotoArgs struct {
	Date string
}

// ExerciseAction selects the exercise sub-command.
type ExerciseAction string

const (
	ExerciseAdd    ExerciseAction = "add"
	ExerciseRemove ExerciseAction = "rm"
)

// ExerciseArgs manages exercise definitions:
// `exercise add <name> <category> <target> <unit>` or `exercise rm <name>`.
type ExerciseArgs struct {
	Action      ExerciseAction
	Name        string
	Category    string
	TargetValue int
	Unit        string
}

type Command struct {
	Type     Type
	Raw      string
	Log      *LogArgs
	Points   *PointsArgs
	Task     *TaskArgs
	Event    *EventArgs
	Goto     *GotoArgs
	Exercise *ExerciseArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeLog:
		return parseLog(input, args)
	case TypePoints:
		return parsePoints(input, args)
	case TypeTask:
		return parseTask(input, args)
	case TypeEvent:
		return parseEvent(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeExercise:
		return parseExercise(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseLog(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "log requires an exercise and a value"}
	}
	value, err := strconv.Atoi(args[len(args)-1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("log value must be a number: %s", args[len(args)-1])}
	}
	name := strings.TrimSpace(strings.Join(args[:len(args)-1], " "))
	return Command{Type: TypeLog, Raw: raw, Log: &LogArgs{Exercise: name, Value: value}}, nil
}

func parsePoints(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "points requires physical and mental values"}
	}
	physical, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("physical must be a number: %s", args[0])}
	}
	mental, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("mental must be a number: %s", args[1])}
	}
	return Command{Type: TypePoints, Raw: raw, Points: &PointsArgs{Physical: physical, Mental: mental}}, nil
}

func parseTask(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires a title"}
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Title: title}}, nil
}

func parseEvent(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "event requires a date and a title"}
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "event requires a title"}
	}
	return Command{Type: TypeEvent, Raw: raw, Event: &EventArgs{Date: args[0], Title: title}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires a date or 'today'"}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: strings.ToLower(args[0])}}, nil
}

func parseExercise(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "exercise requires 'add' or 'rm'"}
	}
	action := ExerciseAction(strings.ToLower(args[0]))
	rest := args[1:]
	switch action {
	case ExerciseAdd:
		if len(rest) < 4 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "exercise add requires a name, category, target and unit"}
		}
		target, err := strconv.Atoi(rest[len(rest)-2])
		if err != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("exercise target must be a number: %s", rest[len(rest)-2])}
		}
		name := strings.TrimSpace(strings.Join(rest[:len(rest)-3], " "))
		return Command{Type: TypeExercise, Raw: raw, Exercise: &ExerciseArgs{
			Action:      ExerciseAdd,
			Name:        name,
			Category:    rest[len(rest)-3],
			TargetValue: target,
			Unit:        rest[len(rest)-1],
		}}, nil
	case ExerciseRemove:
		name := strings.TrimSpace(strings.Join(rest, " "))
		if name == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "exercise rm requires a name"}
		}
		return Command{Type: TypeExercise, Raw: raw, Exercise: &ExerciseArgs{Action: ExerciseRemove, Name: name}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown exercise action: %s", args[0])}
	}
}
