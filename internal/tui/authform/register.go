// ABOUTME: Two-step registration form as a bubbletea model
// ABOUTME: Uses huh forms with a progress indicator for account and billing steps

package authform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/tui/icons"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
)

// RegisterSubmittedMsg carries a completed registration
type RegisterSubmittedMsg struct {
	Request client.RegisterRequest
}

// CancelledMsg is sent when the user leaves the register form
type CancelledMsg struct{}

// Default card billing days
const (
	DefaultDiaVencimento = 10
	DefaultDiaFechamento = 3
)

var stepNames = []string{"Account", "Credit card"}

// Register is the registration screen
type Register struct {
	form  *huh.Form
	step  int
	width int
	busy  bool
	err   string

	nome          string
	whatsapp      string
	password      string
	diaVencimento string
	diaFechamento string
}

// NewRegister creates the register form
func NewRegister() *Register {
	r := &Register{
		step:          1,
		diaVencimento: strconv.Itoa(DefaultDiaVencimento),
		diaFechamento: strconv.Itoa(DefaultDiaFechamento),
	}
	r.form = r.createStep1Form()
	return r
}

func (r *Register) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				CharLimit(80).
				Value(&r.nome).
				Validate(required("name")),
			huh.NewInput().
				Title("WhatsApp").
				Description("10 to 13 digits with country and area code").
				Placeholder("55 11 99999-9999").
				CharLimit(20).
				Value(&r.whatsapp).
				Validate(validWhatsApp),
			huh.NewInput().
				Title("Password").
				Description("At least 6 characters").
				EchoMode(huh.EchoModePassword).
				Value(&r.password).
				Validate(validPassword),
		).Title("Step 1: Account").
			Description("Who you are and how the assistant reaches you"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

func (r *Register) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Card due day").
				Description("Day of the month the credit card bill is due").
				CharLimit(2).
				Value(&r.diaVencimento).
				Validate(validDay),
			huh.NewInput().
				Title("Card closing day").
				Description("Day of the month the bill closes").
				CharLimit(2).
				Value(&r.diaFechamento).
				Validate(validDay),
		).Title("Step 2: Credit card").
			Description("Used to place card expenses in the right bill"),
	).WithTheme(styles.FormTheme()).WithShowHelp(false)
}

// Init implements tea.Model
func (r *Register) Init() tea.Cmd {
	return r.form.Init()
}

// Update implements tea.Model
func (r *Register) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
	case tea.KeyMsg:
		if r.busy {
			return r, nil
		}
		if msg.String() == "esc" {
			return r, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted && !r.busy {
		return r.advanceStep()
	}
	return r, cmd
}

func (r *Register) advanceStep() (tea.Model, tea.Cmd) {
	if r.step == 1 {
		r.step = 2
		r.form = r.createStep2Form()
		return r, r.form.Init()
	}

	req := r.Request()
	if err := req.Validate(); err != nil {
		return r, r.Fail(err)
	}
	r.busy = true
	r.err = ""
	return r, func() tea.Msg { return RegisterSubmittedMsg{Request: req} }
}

// Request builds the registration request from the form values
func (r *Register) Request() client.RegisterRequest {
	venc, _ := strconv.Atoi(r.diaVencimento)
	fech, _ := strconv.Atoi(r.diaFechamento)
	return client.RegisterRequest{
		Nome:          strings.TrimSpace(r.nome),
		WhatsApp:      r.whatsapp,
		Password:      r.password,
		DiaVencimento: venc,
		DiaFechamento: fech,
	}
}

// Fail shows err and restarts at the first step with values kept
func (r *Register) Fail(err error) tea.Cmd {
	r.busy = false
	r.err = err.Error()
	r.step = 1
	r.form = r.createStep1Form()
	return r.form.Init()
}

// SetWidth sets the width used for the progress panel
func (r *Register) SetWidth(width int) {
	r.width = width
}

// View implements tea.Model
func (r *Register) View() string {
	var sb strings.Builder
	sb.WriteString(r.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(r.form.View())
	if r.busy {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Creating account..."))
	}
	if r.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render("Error: " + r.err))
	}
	return sb.String()
}

func (r *Register) renderProgress() string {
	width := max(60, r.width-1)

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var steps []string
	for i, name := range stepNames {
		n := i + 1
		switch {
		case n < r.step:
			steps = append(steps, lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())+" "+
				lipgloss.NewStyle().Foreground(styles.Muted).Render(name))
		case n == r.step:
			current := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
			steps = append(steps, current.Render("●")+" "+current.Render(name))
		default:
			muted := lipgloss.NewStyle().Foreground(styles.Muted)
			steps = append(steps, muted.Render("○")+" "+muted.Render(name))
		}
	}
	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │"
	barWidth := width - 5
	filled := r.step * barWidth / len(stepNames)
	bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", barWidth-filled))

	title := "Create account"
	top := "┌─ " + lipgloss.NewStyle().Foreground(styles.Primary).Render(title) + " " +
		strings.Repeat("─", max(0, width-5-lipgloss.Width(title))) + "┐"
	middle := "│ " + stepsLine + strings.Repeat(" ", max(0, width-4-lipgloss.Width(stepsLine))) + " │"

	return borderStyle.Render(strings.Join([]string{
		top,
		middle,
		"│  " + bar + " │",
		"└" + strings.Repeat("─", width-2) + "┘",
	}, "\n"))
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func requiredDigits(s string) error {
	if client.CleanWhatsApp(s) == "" {
		return fmt.Errorf("whatsapp is required")
	}
	return nil
}

func validWhatsApp(s string) error {
	if n := len(client.CleanWhatsApp(s)); n < 10 || n > 13 {
		return fmt.Errorf("must have 10 to 13 digits")
	}
	return nil
}

func validPassword(s string) error {
	if len(s) < 6 {
		return fmt.Errorf("must have at least 6 characters")
	}
	return nil
}

func validDay(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 31 {
		return fmt.Errorf("must be a day between 1 and 31")
	}
	return nil
}
