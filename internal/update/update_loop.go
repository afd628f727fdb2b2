package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.input == inputForm && m.form != nil {
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			return m.updateForm(msg)
		}
	}

	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.helpModel.Width = typed.Width
		return m, nil
	case tea.KeyMsg:
		switch m.input {
		case inputSearch:
			return m.handleSearchKey(typed), nil
		case inputPalette:
			return m.handlePaletteKey(typed), nil
		}
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case SetModeMsg:
		m.setMode(typed.Mode)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Month):
		m.setMode(calendar.ModeMonth)
	case key.Matches(msg, m.Keys.Week):
		m.setMode(calendar.ModeWeek)
	case key.Matches(msg, m.Keys.Day):
		m.setMode(calendar.ModeDay)
	case key.Matches(msg, m.Keys.List):
		m.setMode(calendar.ModeList)
	case key.Matches(msg, m.Keys.Prev):
		m.navigate(-1)
	case key.Matches(msg, m.Keys.Next):
		m.navigate(1)
	case key.Matches(msg, m.Keys.Today):
		m.goToday()
	case key.Matches(msg, m.Keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.Keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.Keys.ProgressUp):
		m.stepSelectedProgress(progressStep)
	case key.Matches(msg, m.Keys.ProgressDown):
		m.stepSelectedProgress(-progressStep)
	case key.Matches(msg, m.Keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.Keys.New):
		cmd := m.openForm()
		return m, cmd
	case key.Matches(msg, m.Keys.Search):
		m.openSearch()
	case key.Matches(msg, m.Keys.Palette):
		m.openPalette()
	case key.Matches(msg, m.Keys.Clear):
		if m.SearchTerm != "" {
			m.applySearch("")
			m.Status = StatusBar{Text: "search cleared"}
		}
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	frame := m.Frame()

	tabs := make([]string, 0, len(calendar.Modes))
	for _, mode := range calendar.Modes {
		tabs = append(tabs, string(mode))
	}

	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskcal | %s | completion: %d%%", m.ViewState.Title(), frame.CompletionRate),
		Tabs:       views.RenderTabs(tabs, string(m.ViewState.Mode)),
		LeftPane:   m.renderLeftPane(frame),
		RightPane:  m.renderRightPane(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Footer:     m.helpModel.View(m.Keys),
	})
}

func (m Model) renderLeftPane(frame Frame) string {
	today := model.DateOf(m.now())
	title := m.ViewState.Title()

	var body string
	switch m.ViewState.Mode {
	case calendar.ModeMonth:
		body = views.RenderMonth(views.MonthData{Title: title, Cells: frame.Cells, Today: today, SelectedID: m.SelectedID})
	case calendar.ModeWeek:
		body = views.RenderWeek(views.WeekData{Title: title, Days: frame.Week, Tasks: frame.Tasks, Today: today, SelectedID: m.SelectedID})
	case calendar.ModeDay:
		body = views.RenderDay(views.DayData{Title: title, Slots: frame.Slots, Unslotted: frame.Unslotted, SelectedID: m.SelectedID})
	default:
		body = views.RenderList(views.ListData{Title: title, Tasks: frame.Tasks, SelectedID: m.SelectedID, Bar: m.bar})
	}

	all := m.Store.All()
	done := 0
	for _, t := range all {
		if t.Done() {
			done++
		}
	}
	parts := []string{body, views.RenderStats(views.StatsData{
		Total:          len(all),
		Done:           done,
		CompletionRate: frame.CompletionRate,
		Bar:            m.bar,
	})}
	if m.ViewState.Mode == calendar.ModeList && len(all) > 0 {
		parts = append(parts, views.RenderCategoryChart(all, 40, 8))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderRightPane() string {
	if m.input == inputForm && m.form != nil {
		return views.RenderForm("new task", m.form.View())
	}

	var detail string
	if t, ok := m.selectedTask(); ok {
		detail = views.RenderTaskDetail(&t)
	} else {
		detail = views.RenderTaskDetail(nil)
	}
	parts := []string{detail}
	if search := views.RenderSearch(m.input == inputSearch, m.searchInput.View(), m.SearchTerm); search != "" {
		parts = append(parts, search)
	}
	if palette := views.RenderCommandPalette(m.input == inputPalette, m.commandInput.View()); palette != "" {
		parts = append(parts, palette)
	}
	if help := m.renderHelpIfVisible(); help != "" {
		parts = append(parts, help)
	}
	return strings.Join(parts, "\n\n")
}
