// ABOUTME: Settings screen listing API keys, notifications, and addresses
// ABOUTME: Number keys toggle notifications; other edits go through the CLI

package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/tui/icons"
	"github.com/Depaula010/meusecretariofront/internal/tui/styles"
	"github.com/Depaula010/meusecretariofront/internal/tui/widgets"
)

// NotificationsChangedMsg asks the app to save a new notification config
type NotificationsChangedMsg struct {
	Config client.NotificationConfig
}

// View renders user settings
type View struct {
	settings *client.UserSettings
	saving   bool
	prev     client.NotificationConfig
	err      string
	width    int
}

// New creates the settings screen
func New(s *client.UserSettings, width int) *View {
	return &View{settings: s, width: width}
}

// SetWidth updates the render width
func (v *View) SetWidth(width int) {
	v.width = width
}

// Saved clears the saving state. A failed save shows err and puts the
// previous notification config back.
func (v *View) Saved(s *client.UserSettings, err error) {
	v.saving = false
	if err != nil {
		v.err = err.Error()
		if v.settings != nil {
			v.settings.Notifications = v.prev
		}
		return
	}
	v.err = ""
	if s != nil {
		v.settings = s
	}
}

// Init implements tea.Model
func (v *View) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *View) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || v.settings == nil || v.saving {
		return v, nil
	}

	cfg := v.settings.Notifications
	switch key.String() {
	case "1":
		cfg.MorningBriefing.Enabled = !cfg.MorningBriefing.Enabled
	case "2":
		cfg.EveningCheckIn.Enabled = !cfg.EveningCheckIn.Enabled
	case "3":
		cfg.FinancialAlerts.Enabled = !cfg.FinancialAlerts.Enabled
	default:
		return v, nil
	}

	v.saving = true
	v.prev = v.settings.Notifications
	v.settings.Notifications = cfg
	return v, func() tea.Msg { return NotificationsChangedMsg{Config: cfg} }
}

// View implements tea.Model
func (v *View) View() string {
	if v.settings == nil {
		return "Loading settings..."
	}
	s := v.settings

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Key.String() + " API keys"))
	sb.WriteString("\n")
	if len(s.APIKeys) == 0 {
		sb.WriteString(styles.Subtitle.Render("Using the shared keys for every provider"))
		sb.WriteString("\n")
	}
	for _, k := range s.APIKeys {
		mode := styles.Subtitle.Render("shared key")
		if k.UseOwnKey {
			mode = "own key"
		}
		status := ""
		if k.IsValid != nil {
			if *k.IsValid {
				status = " " + widgets.Badge("valid", widgets.StatusOK)
			} else {
				status = " " + widgets.Badge("invalid", widgets.StatusCritical)
			}
		}
		fmt.Fprintf(&sb, "  %-10s %s%s\n", k.Type, mode, status)
	}

	n := s.Notifications
	sb.WriteString("\n")
	sb.WriteString(styles.Title.Render(icons.Bell.String() + " Notifications"))
	sb.WriteString("\n")
	sb.WriteString(toggleLine("1", "Morning briefing", n.MorningBriefing.Enabled, n.MorningBriefing.Time))
	sb.WriteString(toggleLine("2", "Evening check-in", n.EveningCheckIn.Enabled, n.EveningCheckIn.Time))
	sb.WriteString(toggleLine("3", "Financial alerts", n.FinancialAlerts.Enabled,
		fmt.Sprintf("%d days before due", n.FinancialAlerts.DaysBeforeDue)))

	sb.WriteString("\n")
	sb.WriteString(styles.Title.Render(icons.Pin.String() + " Favorite addresses"))
	sb.WriteString("\n")
	if len(s.Addresses) == 0 {
		sb.WriteString(styles.Subtitle.Render("None saved"))
		sb.WriteString("\n")
	}
	for _, a := range s.Addresses {
		def := ""
		if a.IsDefault {
			def = " " + widgets.Badge("default", widgets.StatusInfo)
		}
		fmt.Fprintf(&sb, "  %s: %s%s\n", a.Label, a.Address, def)
	}

	if v.saving {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Saving..."))
	}
	if v.err != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusCritical.Render("Error: " + v.err))
	}

	return lipgloss.NewStyle().Width(v.width).Render(strings.TrimRight(sb.String(), "\n"))
}

func toggleLine(key, label string, enabled bool, detail string) string {
	state := widgets.StatusText("off", widgets.StatusNeutral)
	if enabled {
		state = widgets.StatusText("on", widgets.StatusOK) + styles.Subtitle.Render("  "+detail)
	}
	return fmt.Sprintf("  %s %-18s %s\n", styles.KeyStyle.Render(key), label, state)
}
