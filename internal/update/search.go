package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
)

func (m *Model) openSearch() {
	m.input = inputSearch
	m.searchInput.SetValue(m.SearchTerm)
	m.searchInput.CursorEnd()
	m.searchInput.Focus()
}

func (m *Model) applySearch(term string) {
	m.SearchTerm = term
	m.searchInput.SetValue(term)
	m.ensureSelection()
}

// handleSearchKey filters live while typing. Enter keeps the term, esc drops
// it.
func (m Model) handleSearchKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.input = inputNone
		m.searchInput.Blur()
		if m.SearchTerm == "" {
			m.Status = StatusBar{Text: "search cleared"}
		} else {
			m.Status = StatusBar{Text: "search: " + m.SearchTerm}
		}
	case "esc":
		m.input = inputNone
		m.searchInput.Blur()
		m.applySearch("")
		m.Status = StatusBar{Text: "search cleared"}
	default:
		m.searchInput = updateInput(m.searchInput, msg)
		m.applySearch(m.searchInput.Value())
	}
	return m
}

// updateInput appends typed runes directly so input works without a running
// program; other keys go through the component.
func updateInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		in.CursorEnd()
		return in
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		in.CursorEnd()
		return in
	}
	in, _ = in.Update(msg)
	return in
}
