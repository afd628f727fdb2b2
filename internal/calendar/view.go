package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
)

var ErrUnknownMode = errors.New("calendar: unknown view mode")

type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
	ModeDay   Mode = "day"
	ModeList  Mode = "list"
)

var Modes = []Mode{ModeMonth, ModeWeek, ModeDay, ModeList}

func (m Mode) IsValid() bool {
	switch m {
	case ModeMonth, ModeWeek, ModeDay, ModeList:
		return true
	default:
		return false
	}
}

func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
	return m, nil
}

// ViewState is everything the presentation needs to pick a grid. It carries
// no task data.
type ViewState struct {
	Mode          Mode       `json:"mode"`
	ReferenceDate model.Date `json:"referenceDate"`
}

func NewViewState(mode Mode, now time.Time) ViewState {
	if !mode.IsValid() {
		mode = ModeMonth
	}
	return ViewState{Mode: mode, ReferenceDate: model.DateOf(now)}
}

// Navigate moves the reference date one step in the direction's sign. List
// mode and a zero direction leave the state unchanged.
func (v ViewState) Navigate(direction int) ViewState {
	step := 0
	switch {
	case direction > 0:
		step = 1
	case direction < 0:
		step = -1
	}
	if step == 0 {
		return v
	}
	switch v.Mode {
	case ModeMonth:
		v.ReferenceDate = v.ReferenceDate.AddMonths(step)
	case ModeWeek:
		v.ReferenceDate = v.ReferenceDate.AddDays(DaysPerWeek * step)
	case ModeDay:
		v.ReferenceDate = v.ReferenceDate.AddDays(step)
	}
	return v
}

func (v ViewState) SetMode(mode Mode) (ViewState, error) {
	if !mode.IsValid() {
		return v, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	v.Mode = mode
	return v, nil
}

func (v ViewState) Today(now time.Time) ViewState {
	v.ReferenceDate = model.DateOf(now)
	return v
}

func (v ViewState) Goto(date model.Date) ViewState {
	if !date.IsZero() {
		v.ReferenceDate = date
	}
	return v
}

// Title is the header shown above the active grid.
func (v ViewState) Title() string {
	ref := v.ReferenceDate
	switch v.Mode {
	case ModeWeek:
		return fmt.Sprintf("%s · week %d", MonthTitle(ref), WeekOfMonth(ref))
	case ModeDay:
		return ref.Time().Format("Monday, January 2 2006")
	case ModeList:
		return "All tasks"
	default:
		return MonthTitle(ref)
	}
}
