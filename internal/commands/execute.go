package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Filter   func(FilterArgs) (Result, error)
	Search   func(SearchArgs) (Result, error)
	Priority func(PriorityArgs) (Result, error)
	Due      func(DueArgs) (Result, error)
	Clear    func() (Result, error)
	Theme    func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeSearch:
		if handlers.Search == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Search(*cmd.Search)
	case TypePriority:
		if handlers.Priority == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Priority(*cmd.Priority)
	case TypeDue:
		if handlers.Due == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Due(*cmd.Due)
	case TypeClear:
		if handlers.Clear == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Clear()
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Theme()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
