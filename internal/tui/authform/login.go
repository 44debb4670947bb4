// ABOUTME: Login form as a bubbletea model
// ABOUTME: Collects whatsapp and password and hands them to the app for submission

package authform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// LoginSubmittedMsg carries a filled login form
type LoginSubmittedMsg struct {
	Request client.LoginRequest
}

// SwitchToRegisterMsg asks the app to show the register form
type SwitchToRegisterMsg struct{}

// Login is the login screen
type Login struct {
	form     *huh.Form
	whatsapp string
	password string
	err      string
	busy     bool
	notice   string
}

// NewLogin creates the login form. notice is shown above the form, for
// example after an expired session.
func NewLogin(notice string) *Login {
	l := &Login{notice: notice}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("WhatsApp").
				Description("Number with area code; any formatting is accepted").
				Placeholder("(11) 99999-9999").
				CharLimit(20).
				Value(&l.whatsapp).
				Validate(requiredDigits),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(required("password")),
		).Title("Log in").
			Description("ctrl+n creates a new account"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if l.busy {
			return l, nil
		}
		if key.String() == "ctrl+n" {
			return l, func() tea.Msg { return SwitchToRegisterMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.busy {
		l.busy = true
		l.err = ""
		req := client.LoginRequest{WhatsApp: l.whatsapp, Password: l.password}
		return l, func() tea.Msg { return LoginSubmittedMsg{Request: req} }
	}
	return l, cmd
}

// Fail shows err and reopens the form with the number kept and the
// password cleared
func (l *Login) Fail(err error) tea.Cmd {
	l.busy = false
	l.err = err.Error()
	l.password = ""
	l.form = l.createForm()
	return l.form.Init()
}

// SetNotice replaces the message shown above the form
func (l *Login) SetNotice(notice string) {
	l.notice = notice
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder
	if l.notice != "" {
		sb.WriteString(styles.StatusWarning.Render(l.notice))
		sb.WriteString("\n\n")
	}
	sb.WriteString(l.form.View())
	if l.busy {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Logging in..."))
	}
	if l.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render("Error: " + l.err))
	}
	return sb.String()
}
