package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
)

// taskDraft backs the new-task form. huh writes through these pointers, so the
// draft lives behind a pointer that survives Model copies.
type taskDraft struct {
	Title     string
	Category  string
	Priority  string
	DueDate   string
	StartTime string
	EndTime   string
}

func (m *Model) newDraft() *taskDraft {
	return &taskDraft{
		Category:  string(model.CategoryDaily),
		Priority:  string(model.PriorityMedium),
		DueDate:   m.ViewState.ReferenceDate.String(),
		StartTime: model.DefaultStartTime.String(),
		EndTime:   model.DefaultEndTime.String(),
	}
}

func (m *Model) openForm() tea.Cmd {
	m.draft = m.newDraft()
	d := m.draft

	categories := make([]huh.Option[string], 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, huh.NewOption(string(c), string(c)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(&d.Title).Validate(validateTitle),
			huh.NewSelect[string]().Title("Category").Options(categories...).Value(&d.Category),
			huh.NewSelect[string]().Title("Priority").Options(
				huh.NewOption("low", string(model.PriorityLow)),
				huh.NewOption("medium", string(model.PriorityMedium)),
				huh.NewOption("high", string(model.PriorityHigh)),
			).Value(&d.Priority),
		),
		huh.NewGroup(
			huh.NewInput().Title("Due date (YYYY-MM-DD)").Value(&d.DueDate).Validate(validateDate),
			huh.NewInput().Title("Start (HH:MM)").Value(&d.StartTime).Validate(validateClock),
			huh.NewInput().Title("End (HH:MM)").Value(&d.EndTime).Validate(validateClock),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.input = inputForm
	m.Status = StatusBar{Text: "new task"}
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.closeForm()
		m.Status = StatusBar{Text: "new task cancelled"}
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		draft := m.draft
		m.closeForm()
		m.submitDraft(draft)
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		m.Status = StatusBar{Text: "new task cancelled"}
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.input = inputNone
	m.form = nil
	m.draft = nil
}

// submitDraft parses the draft and creates the task. Blank optional fields
// fall back to the store defaults.
func (m *Model) submitDraft(d *taskDraft) {
	in, err := d.createInput()
	if err != nil {
		m.report(err, "")
		return
	}
	t, err := m.Store.Create(context.Background(), in)
	if t.ID != 0 {
		m.SelectedID = t.ID
		m.ViewState = m.ViewState.Goto(t.DueDate)
	}
	m.report(err, fmt.Sprintf("added #%d: %s", t.ID, t.Title))
	m.ensureSelection()
}

func (d *taskDraft) createInput() (store.CreateInput, error) {
	in := store.CreateInput{Title: d.Title}
	var err error
	if strings.TrimSpace(d.Category) != "" {
		if in.Category, err = model.ParseCategory(d.Category); err != nil {
			return store.CreateInput{}, err
		}
	}
	if strings.TrimSpace(d.Priority) != "" {
		if in.Priority, err = model.ParsePriority(d.Priority); err != nil {
			return store.CreateInput{}, err
		}
	}
	if strings.TrimSpace(d.DueDate) != "" {
		due, err := model.ParseDate(strings.TrimSpace(d.DueDate))
		if err != nil {
			return store.CreateInput{}, err
		}
		in.DueDate = &due
	}
	if strings.TrimSpace(d.StartTime) != "" {
		start, err := model.ParseClock(d.StartTime)
		if err != nil {
			return store.CreateInput{}, err
		}
		in.StartTime = &start
	}
	if strings.TrimSpace(d.EndTime) != "" {
		end, err := model.ParseClock(d.EndTime)
		if err != nil {
			return store.CreateInput{}, err
		}
		in.EndTime = &end
	}
	return in, nil
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.ParseDate(strings.TrimSpace(s))
	return err
}

func validateClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := model.ParseClock(s)
	return err
}
