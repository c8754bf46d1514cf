// Package tui renders the two pages in a terminal. It shares the same
// state.Store as the web shell, so a submission from either side shows up
// on the other's page two.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pageform/internal/domain"
	"pageform/internal/state"
	"pageform/internal/view"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	buttonStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	helpStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// profileChangedMsg carries a store update into the bubbletea loop.
type profileChangedMsg struct {
	profile domain.Profile
}

// Model is the terminal shell: one route, the page one inputs, and the
// last profile seen from the store.
type Model struct {
	store  *state.Store
	format view.Format

	route   string
	fields  []view.Field
	inputs  []textinput.Model
	focus   int
	profile domain.Profile

	changes     <-chan domain.Profile
	unsubscribe func()

	width  int
	height int
}

// NewModel subscribes to store and starts on page one. Call Close when the
// program exits.
func NewModel(store *state.Store, format view.Format) Model {
	changes, unsubscribe := store.Watch()
	m := Model{
		store:       store,
		format:      format,
		changes:     changes,
		unsubscribe: unsubscribe,
	}
	return m.Navigate(view.PathPageOne)
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Route returns the current path.
func (m Model) Route() string {
	return m.route
}

// Navigate switches to path. Unknown paths fall back to page one.
func (m Model) Navigate(path string) Model {
	m.profile = m.store.Read()
	if path == view.PathPageTwo {
		m.route = view.PathPageTwo
		return m
	}

	m.route = view.PathPageOne
	m.fields = view.PageOne(m.profile)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		in := textinput.New()
		in.Prompt = f.Label + ": "
		in.SetValue(f.Value)
		m.inputs[i] = in
	}
	m.focus = 0
	m.inputs[0].Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForChanges(m.changes))
}

func listenForChanges(ch <-chan domain.Profile) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return profileChangedMsg{profile: p}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileChangedMsg:
		m.profile = msg.profile
		return m, listenForChanges(m.changes)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.route == view.PathPageTwo {
			return m.updatePageTwo(msg)
		}
		return m.updatePageOne(msg)
	}

	if m.route == view.PathPageOne {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePageOne(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "tab", "down", "shift+tab", "up":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + dir + len(m.inputs)) % len(m.inputs)
		return m, m.inputs[m.focus].Focus()
	case "enter":
		return m.submit(), nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit merges every field as typed, empty ones included, then moves to
// page two.
func (m Model) submit() Model {
	values := make(map[string]string, len(m.fields))
	for i, f := range m.fields {
		values[f.Name] = m.inputs[i].Value()
	}
	m.store.Merge(domain.Profile{
		FirstName: domain.Text(values["firstname"]),
		LastName:  domain.Text(values["lastname"]),
		Age:       domain.Text(values["age"]),
	})
	return m.Navigate(view.PathPageTwo)
}

func (m Model) updatePageTwo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "b", "esc", "left":
		return m.Navigate(view.PathPageOne), nil
	}
	return m, nil
}

func (m Model) View() string {
	var content string
	if m.route == view.PathPageTwo {
		content = m.viewPageTwo()
	} else {
		content = m.viewPageOne()
	}
	return m.pageContainer(content)
}

// pageContainer centers a page in the terminal once its size is known.
func (m Model) pageContainer(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewPageOne() string {
	lines := []string{titleStyle.Render("PAGE ONE"), ""}
	for _, in := range m.inputs {
		lines = append(lines, in.View())
	}
	lines = append(lines,
		"",
		buttonStyle.Render("Next Page"),
		helpStyle.Render("enter: next page  tab: next field  esc: quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewPageTwo() string {
	summary, err := view.NewSummary(m.profile, m.format)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	lines := []string{
		titleStyle.Render("State from PageOne"),
		"",
		"Name: " + summary.Name,
		"Age: " + summary.Age,
		"",
		strings.TrimRight(summary.Debug, "\n"),
		"",
		helpStyle.Render("b: back  q: quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
