// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/session"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}
	paths := []string{router.PathLogin, router.PathSubscription, "/nope"}

	for _, targetWidth := range widths {
		for _, path := range paths {
			t.Run(fmt.Sprintf("%d%s", targetWidth, path), func(t *testing.T) {
				var profile *session.Profile
				if path != router.PathLogin {
					profile = &session.Profile{ID: 7, Nome: "Ana"}
				}
				f := newFixture(t, profile)
				f.app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
				f.goTo(t, path)

				lines := strings.Split(f.app.View(), "\n")
				header := lines[0]
				footer := lines[len(lines)-1]

				// Frame uses width-1 to prevent wrapping on some terminals,
				// but clamps to minimum of 80 for usability
				expectedWidth := max(80, targetWidth-1)

				if !strings.Contains(header, "╭") {
					t.Fatalf("expected header on first line, got %q", header)
				}
				if w := lipgloss.Width(header); w != expectedWidth {
					t.Errorf("Header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
				}
				if !strings.Contains(footer, "╰") {
					t.Fatalf("expected footer on last line, got %q", footer)
				}
				if w := lipgloss.Width(footer); w != expectedWidth {
					t.Errorf("Footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
				}
			})
		}
	}
}
