// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

// EnvNerdFonts forces Nerd Font icons on ("1"/"true") or off
const EnvNerdFonts = "SECRETARY_NERD_FONTS"

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// nerdFontTerminals typically ship with a Nerd Font configured
var nerdFontTerminals = []string{"iTerm.app", "alacritty", "WezTerm", "kitty", "ghostty"}

func detectNerdFonts() bool {
	if env := os.Getenv(EnvNerdFonts); env != "" {
		return env == "1" || strings.EqualFold(env, "true")
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")
	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}
	return os.Getenv("NERD_FONTS") == "1"
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

var (
	// Money
	Wallet   = Icon{"󰖄", "◆"} // nf-md-wallet
	Income   = Icon{"󰁝", "↑"} // nf-md-arrow_up
	Expense  = Icon{"󰁅", "↓"} // nf-md-arrow_down
	Card     = Icon{"󰆛", "▭"} // nf-md-credit_card
	Bank     = Icon{"󰁰", "▣"} // nf-md-bank
	Category = Icon{"󰓹", "●"} // nf-md-tag
	Calendar = Icon{"󰃭", "▦"} // nf-md-calendar

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Trends
	TrendUp   = Icon{"󰔵", "↗"} // nf-md-trending_up
	TrendDown = Icon{"󰔳", "↘"} // nf-md-trending_down
	Chart     = Icon{"󰄨", "▁"} // nf-md-chart_line

	// Actions
	Refresh = Icon{"󰑓", "↻"} // nf-md-refresh
	Back    = Icon{"󰁍", "←"} // nf-md-arrow_left
	Quit    = Icon{"󰗼", "×"} // nf-md-exit_to_app
	Logout  = Icon{"󰍃", "⇥"} // nf-md-logout

	// Application
	App      = Icon{"󰠆", "◈"} // nf-md-finance
	User     = Icon{"󰀄", "☺"} // nf-md-account
	Settings = Icon{"󰒓", "⚙"} // nf-md-cog
	Key      = Icon{"󰌆", "⚷"} // nf-md-key
	Bell     = Icon{"󰂚", "♪"} // nf-md-bell
	Pin      = Icon{"󰍎", "⌖"} // nf-md-map_marker
)
