package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/views"
)

type KeyMap struct {
	Month        key.Binding
	Week         key.Binding
	Day          key.Binding
	List         key.Binding
	Prev         key.Binding
	Next         key.Binding
	Today        key.Binding
	Up           key.Binding
	Down         key.Binding
	Toggle       key.Binding
	ProgressUp   key.Binding
	ProgressDown key.Binding
	Delete       key.Binding
	New          key.Binding
	Search       key.Binding
	Palette      key.Binding
	Clear        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Month:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "month")),
		Week:         key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "week")),
		Day:          key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "day")),
		List:         key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "list")),
		Prev:         key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("←/h", "previous period")),
		Next:         key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("→/l", "next period")),
		Today:        key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "previous task")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "next task")),
		Toggle:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		ProgressUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "progress +10")),
		ProgressDown: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "progress -10")),
		Delete:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		New:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Palette:      key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Clear:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Toggle, k.Search, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Month, k.Week, k.Day, k.List},
		{k.Prev, k.Next, k.Today, k.Up, k.Down},
		{k.Toggle, k.ProgressUp, k.ProgressDown, k.Delete, k.New},
		{k.Search, k.Palette, k.Clear, k.Help, k.Quit},
	}
}

type KeyBinding struct {
	Key    string
	Action string
}

func (m Model) modeBindings() []KeyBinding {
	switch m.ViewState.Mode {
	case calendar.ModeMonth:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
			{Key: "j/k", Action: "walk this month's tasks by due date"},
		}
	case calendar.ModeWeek:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next week"},
			{Key: "j/k", Action: "walk this week's tasks"},
		}
	case calendar.ModeDay:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next day"},
			{Key: "j/k", Action: "walk the timeline"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "walk tasks grouped by category"},
		}
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.ViewState.Mode),
		Bindings: plain,
		HelpView: hm.View(m.Keys),
	})
}
