package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Days    func(PropertyArgs) (Result, error)
	Offset  func(PropertyArgs) (Result, error)
	Min     func(PropertyArgs) (Result, error)
	Max     func(PropertyArgs) (Result, error)
	Select  func(PropertyArgs) (Result, error)
	History func(HistoryArgs) (Result, error)
	Month   func(MonthArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeDays:
		return runProperty("days", handlers.Days, cmd.Property)
	case TypeOffset:
		return runProperty("offset", handlers.Offset, cmd.Property)
	case TypeMin:
		return runProperty("min", handlers.Min, cmd.Property)
	case TypeMax:
		return runProperty("max", handlers.Max, cmd.Property)
	case TypeSelect, TypeClear:
		return runProperty("select", handlers.Select, cmd.Property)
	case TypeHistory:
		if handlers.History == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "history handler not configured"}
		}
		if cmd.History == nil {
			return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "history arguments missing"}
		}
		return handlers.History(*cmd.History)
	case TypeMonth:
		if handlers.Month == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "month handler not configured"}
		}
		if cmd.Month == nil {
			return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "month arguments missing"}
		}
		return handlers.Month(*cmd.Month)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func runProperty(name string, h func(PropertyArgs) (Result, error), args *PropertyArgs) (Result, error) {
	if h == nil {
		return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", name)}
	}
	if args == nil {
		return Result{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s arguments missing", name)}
	}
	return h(*args)
}
