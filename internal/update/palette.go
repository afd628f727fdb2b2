package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/commands"
	"github.com/sandeepkv93/taskcal/internal/export"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
)

func (m *Model) openPalette() {
	m.input = inputPalette
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
}

func (m *Model) closePalette() {
	m.input = inputNone
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		raw := m.commandInput.Value()
		m.closePalette()
		m = m.executePaletteCommand(raw)
	default:
		m.commandInput = updateInput(m.commandInput, msg)
	}
	return m
}

func (m Model) executePaletteCommand(raw string) Model {
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	ctx := context.Background()

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			t, err := m.Store.Create(ctx, store.CreateInput{
				Title:     a.Title,
				Category:  a.Category,
				Priority:  a.Priority,
				DueDate:   a.DueDate,
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
			})
			if t.ID != 0 {
				m.SelectedID = t.ID
				m.ViewState = m.ViewState.Goto(t.DueDate)
			}
			return commands.Result{Message: fmt.Sprintf("added #%d: %s", t.ID, t.Title)}, err
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			return m.setStatus(ctx, a.ID, model.StatusDone)
		},
		Undo: func(a commands.TargetArgs) (commands.Result, error) {
			return m.setStatus(ctx, a.ID, model.StatusPending)
		},
		Progress: func(a commands.ProgressArgs) (commands.Result, error) {
			if _, ok := m.Store.Get(a.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", a.ID)}, nil
			}
			err := m.Store.SetProgress(ctx, a.ID, a.Value)
			return commands.Result{Message: fmt.Sprintf("progress #%d: %d%%", a.ID, model.ClampProgress(a.Value))}, err
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			if _, ok := m.Store.Get(a.ID); !ok {
				return commands.Result{Message: fmt.Sprintf("no task #%d", a.ID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("deleted #%d", a.ID)}, m.Store.Delete(ctx, a.ID)
		},
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			m.applySearch(a.Term)
			if a.Term == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %q", a.Term)}, nil
		},
		View: func(a commands.ViewArgs) (commands.Result, error) {
			next, err := m.ViewState.SetMode(a.Mode)
			if err != nil {
				return commands.Result{}, err
			}
			m.ViewState = next
			return commands.Result{Message: fmt.Sprintf("view: %s", a.Mode)}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			m.ViewState = m.ViewState.Goto(a.Date)
			return commands.Result{Message: fmt.Sprintf("showing %s", m.ViewState.Title())}, nil
		},
		Today: func() (commands.Result, error) {
			m.ViewState = m.ViewState.Today(m.now())
			return commands.Result{Message: fmt.Sprintf("today: %s", m.ViewState.ReferenceDate)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			tasks := m.Store.All()
			var err error
			switch a.Format {
			case commands.ExportCSV:
				err = export.ToCSV(tasks, a.Path)
			default:
				err = export.ToJSON(tasks, a.Path, m.now())
			}
			if err != nil {
				return commands.Result{}, fmt.Errorf("export %s: %w", a.Format, err)
			}
			m.logger.Info().Str("format", string(a.Format)).Str("path", a.Path).Int("tasks", len(tasks)).Msg("exported tasks")
			return commands.Result{Message: fmt.Sprintf("exported %d task(s) to %s", len(tasks), a.Path)}, nil
		},
	})
	m.report(err, res.Message)
	m.ensureSelection()
	return m
}

func (m *Model) setStatus(ctx context.Context, id int64, status model.Status) (commands.Result, error) {
	if _, ok := m.Store.Get(id); !ok {
		return commands.Result{Message: fmt.Sprintf("no task #%d", id)}, nil
	}
	return commands.Result{Message: fmt.Sprintf("#%d %s", id, status)}, m.Store.SetStatus(ctx, id, status)
}
