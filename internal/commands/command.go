package commands

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeFilter   Type = "filter"
	TypeSearch   Type = "search"
	TypePriority Type = "priority"
	TypeDue      Type = "due"
	TypeClear    Type = "clear"
	TypeTheme    Type = "theme"
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

type AddArgs struct {
	Text     string
	Priority model.Priority
	Due      *time.Time
}

type FilterArgs struct {
	Filter model.Filter
}

type SearchArgs struct {
	Query string
}

type PriorityArgs struct {
	Priority model.Priority
}

// DueArgs with a nil Due clears the date.
type DueArgs struct {
	Due *time.Time
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Filter   *FilterArgs
	Search   *SearchArgs
	Priority *PriorityArgs
	Due      *DueArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	// rest keeps the argument text as typed, inner spacing included
	rest := strings.TrimSpace(raw[len(parts[0]):])

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: rest}}, nil
	case TypePriority:
		return parsePriority(input, args)
	case TypeDue:
		return parseDue(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeTheme:
		return Command{Type: TypeTheme, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// ParseAddLine splits free text into task text and the optional !priority
// and due:YYYY-MM-DD tokens. It is shared by the palette and the add line.
//
// Only !low, !medium, !high and a valid due:YYYY-MM-DD count as tokens. Any
// other word, "!!!" or "due:later" included, is text. Tokens are cut out of
// the line together with the whitespace before them, the rest of the line is
// kept as typed.
func ParseAddLine(line string) (AddArgs, error) {
	out := AddArgs{Priority: model.PriorityMedium}
	var text strings.Builder
	rest := line
	for {
		start := strings.IndexFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
		if start < 0 {
			break
		}
		end := strings.IndexFunc(rest[start:], unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		} else {
			end += start
		}
		gap, word := rest[:start], rest[start:end]
		rest = rest[end:]
		if out.applyToken(word) {
			continue
		}
		text.WriteString(gap)
		text.WriteString(word)
	}
	out.Text = strings.TrimSpace(text.String())
	if out.Text == "" {
		return AddArgs{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return out, nil
}

// applyToken reports whether word was a priority or due token; a repeated
// token overrides the earlier one.
func (a *AddArgs) applyToken(word string) bool {
	lower := strings.ToLower(word)
	if name, ok := strings.CutPrefix(lower, "!"); ok {
		p, err := model.ParsePriority(name)
		if err != nil {
			return false
		}
		a.Priority = p
		return true
	}
	if value, ok := strings.CutPrefix(lower, "due:"); ok {
		d, err := model.ParseDate(value)
		if err != nil {
			return false
		}
		a.Due = &d
		return true
	}
	return false
}

func parseAdd(raw, line string) (Command, error) {
	add, err := ParseAddLine(line)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parsePriority(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "priority requires one of low, medium, high"}
	}
	p, err := model.ParsePriority(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", args[0])}
	}
	return Command{Type: TypePriority, Raw: raw, Priority: &PriorityArgs{Priority: p}}, nil
}

func parseDue(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due requires YYYY-MM-DD or none"}
	}
	if strings.EqualFold(args[0], "none") {
		return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{}}, nil
	}
	d, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "due date must be YYYY-MM-DD"}
	}
	return Command{Type: TypeDue, Raw: raw, Due: &DueArgs{Due: &d}}, nil
}
