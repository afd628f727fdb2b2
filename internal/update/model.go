package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/taskcal/internal/calendar"
	"github.com/sandeepkv93/taskcal/internal/model"
	"github.com/sandeepkv93/taskcal/internal/store"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputPalette
	inputForm
)

type Model struct {
	Store       *store.Store
	ViewState   calendar.ViewState
	SelectedID  int64
	SearchTerm  string
	Status      StatusBar
	HelpVisible bool
	Quitting    bool
	Keys        KeyMap
	LastError   error

	input        inputMode
	searchInput  textinput.Model
	commandInput textinput.Model
	form         *huh.Form
	draft        *taskDraft
	helpModel    help.Model
	bar          progress.Model
	now          func() time.Time
	logger       zerolog.Logger
	width        int
}

// Options configures NewModel. Zero values fall back to month view, the
// wall clock and a no-op logger.
type Options struct {
	Mode   calendar.Mode
	Now    func() time.Time
	Logger zerolog.Logger
}

// Frame is what one render cycle shows: the tasks visible in the active
// window after search, the grid for the active mode, and the completion rate.
type Frame struct {
	Tasks          []model.Task
	Cells          []calendar.Cell
	Week           []model.Date
	Slots          []calendar.HourSlot
	Unslotted      []model.Task
	CompletionRate int
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SetModeMsg struct {
	Mode calendar.Mode
}

func NewModel(s *store.Store, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	mode := opts.Mode
	if !mode.IsValid() {
		mode = calendar.ModeMonth
	}
	m := Model{
		Store:     s,
		ViewState: calendar.NewViewState(mode, now()),
		Keys:      DefaultKeyMap(),
		now:       now,
		logger:    opts.Logger,
		width:     120,
	}
	m.initBubbleComponents()
	m.ensureSelection()
	return m
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "/ "
	m.searchInput.Placeholder = "title contains..."
	m.searchInput.CharLimit = 120

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ": "
	m.commandInput.Placeholder = "add Buy milk due:2024-03-15 at:09:00-09:30"
	m.commandInput.CharLimit = 256

	m.helpModel = help.New()
	m.bar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
}
