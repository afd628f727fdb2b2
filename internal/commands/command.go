package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeDone     Type = "done"
	TypeUndo     Type = "undo"
	TypeProgress Type = "progress"
	TypeDelete   Type = "delete"
	TypeSearch   Type = "search"
	TypeView     Type = "view"
	TypeGoto     Type = "goto"
	TypeToday    Type = "today"
	TypeExport   Type = "export"
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

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs leaves optional fields zero or nil when the input omits them so the
// store applies its own defaults.
type AddArgs struct {
	Title     string
	Category  model.Category
	Priority  model.Priority
	DueDate   *model.Date
	StartTime *model.Clock
	EndTime   *model.Clock
}

type TargetArgs struct {
	ID int64
}

type ProgressArgs struct {
	ID    int64
	Value int
}

type SearchArgs struct {
	Term string
}

type ViewArgs struct {
	Mode calendar.Mode
}

type GotoArgs struct {
	Date model.Date
}

type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

type ExportArgs struct {
	Format ExportFormat
	Path   string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Target   *TargetArgs
	Progress *ProgressArgs
	Search   *SearchArgs
	View     *ViewArgs
	Goto     *GotoArgs
	Export   *ExportArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, ":") || strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone, TypeUndo, TypeDelete:
		return parseTarget(input, Type(head), args)
	case TypeProgress:
		return parseProgress(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Term: strings.Join(args, " ")}}, nil
	case TypeView:
		return parseView(input, args)
	case TypeGoto:
		return parseGoto(input, args)
	case TypeToday:
		return Command{Type: TypeToday, Raw: input}, nil
	case TypeExport:
		return parseExport(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd treats cat:, pri:, due: and at: tokens as options anywhere in the
// line; every other word belongs to the title.
func parseAdd(raw string, args []string) (Command, error) {
	out := AddArgs{}
	title := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			title = append(title, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "cat", "category":
			c, err := model.ParseCategory(value)
			if err != nil {
				return Command{}, invalid("unknown category %q", value)
			}
			out.Category = c
		case "pri", "priority":
			p, err := model.ParsePriority(value)
			if err != nil {
				return Command{}, invalid("unknown priority %q", value)
			}
			out.Priority = p
		case "due":
			d, err := model.ParseDate(value)
			if err != nil {
				return Command{}, invalid("due date must be YYYY-MM-DD, got %q", value)
			}
			out.DueDate = &d
		case "at":
			start, end, err := parseRange(value)
			if err != nil {
				return Command{}, err
			}
			out.StartTime, out.EndTime = &start, &end
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

// parseRange reads "HH:MM-HH:MM".
func parseRange(value string) (model.Clock, model.Clock, error) {
	from, to, ok := strings.Cut(value, "-")
	if !ok {
		return model.Clock{}, model.Clock{}, invalid("time range must be HH:MM-HH:MM, got %q", value)
	}
	start, err := model.ParseClock(from)
	if err != nil {
		return model.Clock{}, model.Clock{}, invalid("invalid start time %q", from)
	}
	end, err := model.ParseClock(to)
	if err != nil {
		return model.Clock{}, model.Clock{}, invalid("invalid end time %q", to)
	}
	return start, end, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("task id must be a positive number, got %q", raw)
	}
	return id, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("%s requires a task id", typ)
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{ID: id}}, nil
}

func parseProgress(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("progress requires a task id and a value")
	}
	id, err := parseID(args[0])
	if err != nil {
		return Command{}, err
	}
	value, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
	if err != nil {
		return Command{}, invalid("progress must be a number, got %q", args[1])
	}
	return Command{Type: TypeProgress, Raw: raw, Progress: &ProgressArgs{ID: id, Value: value}}, nil
}

func parseView(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("view requires one of month, week, day, list")
	}
	mode, err := calendar.ParseMode(args[0])
	if err != nil {
		return Command{}, invalid("unknown view %q", args[0])
	}
	return Command{Type: TypeView, Raw: raw, View: &ViewArgs{Mode: mode}}, nil
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("goto requires a date")
	}
	d, err := model.ParseDate(args[0])
	if err != nil {
		return Command{}, invalid("date must be YYYY-MM-DD, got %q", args[0])
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Date: d}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("export requires a format and a path")
	}
	format := ExportFormat(strings.ToLower(args[0]))
	if format != ExportJSON && format != ExportCSV {
		return Command{}, invalid("export format must be json or csv, got %q", args[0])
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Format: format, Path: strings.Join(args[1:], " ")}}, nil
}
