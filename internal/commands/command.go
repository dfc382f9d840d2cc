package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/daygrid/internal/model"
)

type Type string

const (
	TypeDays    Type = "days"
	TypeOffset  Type = "offset"
	TypeMin     Type = "min"
	TypeMax     Type = "max"
	TypeSelect  Type = "select"
	TypeClear   Type = "clear"
	TypeHistory Type = "history"
	TypeMonth   Type = "month"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

const DefaultHistoryLimit = 10

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// PropertyArgs carries a raw integer written to one of the grid properties.
type PropertyArgs struct {
	Value int
}

type HistoryArgs struct {
	Limit int
}

// MonthArgs holds either an absolute month or a step relative to the month
// currently shown.
type MonthArgs struct {
	Month model.Month
	Step  int
}

type Command struct {
	Type     Type
	Raw      string
	Property *PropertyArgs
	History  *HistoryArgs
	Month    *MonthArgs
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
	case TypeDays:
		return parseCount(input, TypeDays, args)
	case TypeOffset, TypeMin, TypeMax:
		return parseProperty(input, Type(head), args)
	case TypeSelect:
		return parseSelect(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input, Property: &PropertyArgs{Value: -1}}, nil
	case TypeHistory:
		return parseHistory(input, args)
	case TypeMonth:
		return parseMonth(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseProperty(raw string, t Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one integer", t)}
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s: not an integer: %s", t, args[0])}
	}
	return Command{Type: t, Raw: raw, Property: &PropertyArgs{Value: v}}, nil
}

func parseCount(raw string, t Type, args []string) (Command, error) {
	cmd, err := parseProperty(raw, t, args)
	if err != nil {
		return Command{}, err
	}
	if cmd.Property.Value < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s must not be negative", t)}
	}
	return cmd, nil
}

func parseSelect(raw string, args []string) (Command, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "none") {
		return Command{Type: TypeSelect, Raw: raw, Property: &PropertyArgs{Value: -1}}, nil
	}
	return parseProperty(raw, TypeSelect, args)
}

func parseHistory(raw string, args []string) (Command, error) {
	limit := DefaultHistoryLimit
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "history takes at most one limit"}
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("history: invalid limit: %s", args[0])}
		}
		limit = n
	}
	return Command{Type: TypeHistory, Raw: raw, History: &HistoryArgs{Limit: limit}}, nil
}

func parseMonth(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "month requires YYYY-MM, next or prev"}
	}
	switch strings.ToLower(args[0]) {
	case "next":
		return Command{Type: TypeMonth, Raw: raw, Month: &MonthArgs{Step: 1}}, nil
	case "prev":
		return Command{Type: TypeMonth, Raw: raw, Month: &MonthArgs{Step: -1}}, nil
	}
	m, err := model.ParseMonth(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeMonth, Raw: raw, Month: &MonthArgs{Month: m}}, nil
}
