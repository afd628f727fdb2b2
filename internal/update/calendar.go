package update

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
	"github.com/sandeepkv93/taskcal/internal/views"
)

const progressStep = 10

func (m Model) Frame() Frame {
	filtered := slices.Collect(m.Store.Search(m.SearchTerm))
	ref := m.ViewState.ReferenceDate
	f := Frame{CompletionRate: m.Store.CompletionRate()}

	switch m.ViewState.Mode {
	case calendar.ModeMonth:
		f.Cells = calendar.Annotate(calendar.MonthGrid(ref), filtered)
		for _, c := range f.Cells {
			if c.InReferenceMonth {
				f.Tasks = append(f.Tasks, c.Tasks...)
			}
		}
	case calendar.ModeWeek:
		f.Week = calendar.WeekGrid(ref)
		for _, d := range f.Week {
			f.Tasks = append(f.Tasks, calendar.TasksOn(d, filtered)...)
		}
	case calendar.ModeDay:
		f.Slots = calendar.DayHourSlots(ref, filtered)
		for _, slot := range f.Slots {
			f.Tasks = append(f.Tasks, slot.Tasks...)
		}
		for _, t := range calendar.TasksOn(ref, filtered) {
			if t.StartTime.Hour < calendar.FirstHour || t.StartTime.Hour > calendar.LastHour {
				f.Unslotted = append(f.Unslotted, t)
			}
		}
		f.Tasks = append(f.Tasks, f.Unslotted...)
	default:
		groups := views.GroupByCategory(filtered)
		for _, c := range model.Categories {
			f.Tasks = append(f.Tasks, groups[c]...)
		}
	}
	return f
}

func (m *Model) setMode(mode calendar.Mode) {
	next, err := m.ViewState.SetMode(mode)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.ViewState = next
	m.Status = StatusBar{Text: fmt.Sprintf("view: %s", mode)}
	m.ensureSelection()
}

func (m *Model) navigate(direction int) {
	if m.ViewState.Mode == calendar.ModeList {
		m.Status = StatusBar{Text: "list view has no periods"}
		return
	}
	m.ViewState = m.ViewState.Navigate(direction)
	m.Status = StatusBar{Text: fmt.Sprintf("showing %s", m.ViewState.Title())}
	m.ensureSelection()
}

func (m *Model) goToday() {
	m.ViewState = m.ViewState.Today(m.now())
	m.Status = StatusBar{Text: fmt.Sprintf("today: %s", m.ViewState.ReferenceDate)}
	m.ensureSelection()
}

// moveSelection steps through the frame's tasks in display order.
func (m *Model) moveSelection(delta int) {
	tasks := m.Frame().Tasks
	if len(tasks) == 0 {
		m.SelectedID = 0
		return
	}
	idx := slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == m.SelectedID })
	switch {
	case idx < 0:
		idx = 0
	default:
		idx = min(max(idx+delta, 0), len(tasks)-1)
	}
	m.SelectedID = tasks[idx].ID
}

// ensureSelection keeps the selection on a visible task, falling back to the
// first one.
func (m *Model) ensureSelection() {
	tasks := m.Frame().Tasks
	if slices.ContainsFunc(tasks, func(t model.Task) bool { return t.ID == m.SelectedID }) {
		return
	}
	m.SelectedID = 0
	if len(tasks) > 0 {
		m.SelectedID = tasks[0].ID
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.SelectedID == 0 {
		return model.Task{}, false
	}
	return m.Store.Get(m.SelectedID)
}

func (m *Model) toggleSelected() {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	err := m.Store.ToggleStatus(context.Background(), t.ID)
	m.report(err, fmt.Sprintf("%s: %s", t.Status.Toggle(), t.Title))
}

func (m *Model) stepSelectedProgress(delta int) {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	next := model.ClampProgress(t.Progress + delta)
	err := m.Store.SetProgress(context.Background(), t.ID, next)
	m.report(err, fmt.Sprintf("progress %d%%: %s", next, t.Title))
}

func (m *Model) deleteSelected() {
	t, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	tasks := m.Frame().Tasks
	idx := slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == t.ID })
	err := m.Store.Delete(context.Background(), t.ID)
	m.report(err, fmt.Sprintf("deleted: %s", t.Title))

	// Select the neighbour that slides into the deleted row.
	m.SelectedID = 0
	if rest := m.Frame().Tasks; len(rest) > 0 && idx >= 0 {
		m.SelectedID = rest[min(idx, len(rest)-1)].ID
	}
	m.ensureSelection()
}

// report turns a store result into the status line. Persistence failures keep
// the in-memory change, so they are shown as warnings.
func (m *Model) report(err error, okText string) {
	if err == nil {
		m.Status = StatusBar{Text: okText}
		return
	}
	m.LastError = err
	var perr *store.PersistenceError
	if errors.As(err, &perr) {
		m.Status = StatusBar{Text: "warning: " + perr.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}
