package calendar

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
)

func TestNavigateSteps(t *testing.T) {
	ref := model.NewDate(2024, time.March, 15)
	cases := []struct {
		mode      Mode
		direction int
		want      string
	}{
		{ModeMonth, 1, "2024-04-15"},
		{ModeMonth, -1, "2024-02-15"},
		{ModeWeek, 1, "2024-03-22"},
		{ModeWeek, -3, "2024-03-08"},
		{ModeDay, 5, "2024-03-16"},
		{ModeDay, -1, "2024-03-14"},
		{ModeList, 1, "2024-03-15"},
		{ModeMonth, 0, "2024-03-15"},
	}
	for _, tc := range cases {
		got := ViewState{Mode: tc.mode, ReferenceDate: ref}.Navigate(tc.direction)
		if got.ReferenceDate.String() != tc.want || got.Mode != tc.mode {
			t.Fatalf("%s %+d: expected %s, got %+v", tc.mode, tc.direction, tc.want, got)
		}
	}
}

func TestNavigateMonthFromJanuary31st(t *testing.T) {
	v := ViewState{Mode: ModeMonth, ReferenceDate: model.NewDate(2024, time.January, 31)}
	next := v.Navigate(1)
	// Feb 31st normalises forward, so the grid lands on March.
	if next.ReferenceDate.String() != "2024-03-02" {
		t.Fatalf("expected 2024-03-02, got %s", next.ReferenceDate)
	}
	if !next.ReferenceDate.Before(model.NewDate(2024, time.April, 1)) ||
		next.ReferenceDate.Before(model.NewDate(2024, time.February, 1)) {
		t.Fatalf("navigation left the expected range: %s", next.ReferenceDate)
	}
}

func TestSetModeAnyToAny(t *testing.T) {
	v := ViewState{Mode: ModeMonth, ReferenceDate: model.NewDate(2024, time.March, 15)}
	for _, from := range Modes {
		for _, to := range Modes {
			start := v
			start.Mode = from
			got, err := start.SetMode(to)
			if err != nil {
				t.Fatalf("%s -> %s: %v", from, to, err)
			}
			if got.Mode != to || got.ReferenceDate != v.ReferenceDate {
				t.Fatalf("%s -> %s: unexpected state %+v", from, to, got)
			}
		}
	}

	got, err := v.SetMode(Mode("year"))
	if !errors.Is(err, ErrUnknownMode) || got != v {
		t.Fatalf("expected ErrUnknownMode and unchanged state, got %+v, %v", got, err)
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Week "); err != nil || m != ModeWeek {
		t.Fatalf("ParseMode(Week) = %q, %v", m, err)
	}
	if _, err := ParseMode("agenda"); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestTodayAndGoto(t *testing.T) {
	v := ViewState{Mode: ModeDay, ReferenceDate: model.NewDate(2020, time.May, 5)}
	now := time.Date(2024, time.March, 15, 22, 10, 0, 0, time.UTC)
	if got := v.Today(now); got.ReferenceDate.String() != "2024-03-15" || got.Mode != ModeDay {
		t.Fatalf("unexpected today state %+v", got)
	}
	if got := v.Goto(model.Date{}); got != v {
		t.Fatalf("goto zero date must be a no-op, got %+v", got)
	}
	if got := v.Goto(model.NewDate(2024, time.July, 4)); got.ReferenceDate.String() != "2024-07-04" {
		t.Fatalf("unexpected goto state %+v", got)
	}
}

func TestViewStateJSON(t *testing.T) {
	raw, err := json.Marshal(ViewState{Mode: ModeWeek, ReferenceDate: model.NewDate(2024, time.March, 15)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"mode":"week","referenceDate":"2024-03-15"}` {
		t.Fatalf("unexpected json %s", raw)
	}
}

func TestTitle(t *testing.T) {
	ref := model.NewDate(2024, time.March, 15)
	cases := map[Mode]string{
		ModeMonth: "March 2024",
		ModeWeek:  "March 2024 · week 3",
		ModeDay:   "Friday, March 15 2024",
		ModeList:  "All tasks",
	}
	for mode, want := range cases {
		if got := (ViewState{Mode: mode, ReferenceDate: ref}).Title(); got != want {
			t.Fatalf("%s: expected %q, got %q", mode, want, got)
		}
	}
}
