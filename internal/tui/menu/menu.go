// ABOUTME: Navigation menu for the private screens
// ABOUTME: A huh select over the route table plus logout and quit

package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// Actions that are not routes
const (
	ActionLogout = "logout"
	ActionQuit   = "quit"
)

// SelectedMsg is sent with the chosen route path
type SelectedMsg struct {
	Path string
}

// LogoutMsg is sent when the user chooses to log out
type LogoutMsg struct{}

// QuitMsg is sent when the user chooses to quit
type QuitMsg struct{}

// CancelledMsg is sent when the menu is closed without a choice
type CancelledMsg struct{}

type option struct {
	label string
	value string
}

// Menu lets the user pick a screen
type Menu struct {
	options  []option
	selected string
	form     *huh.Form
}

// New creates a menu listing every private route, with current preselected
func New(current string) *Menu {
	m := &Menu{selected: current}
	for _, r := range router.Routes {
		if r.Access == router.AccessPrivate {
			m.options = append(m.options, option{label: r.Title, value: r.Path})
		}
	}
	m.options = append(m.options,
		option{label: "Log out", value: ActionLogout},
		option{label: "Quit", value: ActionQuit},
	)
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(m.options))
	for _, o := range m.options {
		opts = append(opts, huh.NewOption(o.label, o.value))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Go to").
				Options(opts...).
				Value(&m.selected),
		),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Options returns the menu values in display order
func (m *Menu) Options() []string {
	values := make([]string, len(m.options))
	for i, o := range m.options {
		values[i] = o.value
	}
	return values
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "esc" || key.String() == "m") {
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, m.choice()
	}
	return m, cmd
}

func (m *Menu) choice() tea.Cmd {
	selected := m.selected
	return func() tea.Msg {
		switch selected {
		case ActionLogout:
			return LogoutMsg{}
		case ActionQuit:
			return QuitMsg{}
		default:
			return SelectedMsg{Path: selected}
		}
	}
}

// View implements tea.Model
func (m *Menu) View() string {
	return m.form.View()
}
