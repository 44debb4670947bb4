// ABOUTME: Tests for the navigation menu
// ABOUTME: Validates route listing and the messages each choice produces

package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Depaula010/meusecretariofront/internal/router"
)

func TestNewListsPrivateRoutesThenActions(t *testing.T) {
	m := New(router.PathDashboard)
	opts := m.Options()

	expected := []string{
		router.PathDashboard,
		router.PathTransactions,
		router.PathAccounts,
		router.PathSettings,
		router.PathSubscription,
		ActionLogout,
		ActionQuit,
	}
	if len(opts) != len(expected) {
		t.Fatalf("expected %d options, got %v", len(expected), opts)
	}
	for i := range expected {
		if opts[i] != expected[i] {
			t.Errorf("option %d: expected %s, got %s", i, expected[i], opts[i])
		}
	}
}

func TestMenuExcludesPublicRoutes(t *testing.T) {
	for _, o := range New("").Options() {
		if router.InAuthArea(o) || o == router.PathNotFound {
			t.Errorf("unexpected option %s", o)
		}
	}
}

func TestChoiceMessages(t *testing.T) {
	tests := []struct {
		selected string
		check    func(tea.Msg) bool
	}{
		{router.PathAccounts, func(msg tea.Msg) bool {
			s, ok := msg.(SelectedMsg)
			return ok && s.Path == router.PathAccounts
		}},
		{ActionLogout, func(msg tea.Msg) bool { _, ok := msg.(LogoutMsg); return ok }},
		{ActionQuit, func(msg tea.Msg) bool { _, ok := msg.(QuitMsg); return ok }},
	}

	for _, tc := range tests {
		t.Run(tc.selected, func(t *testing.T) {
			m := New(tc.selected)
			if msg := m.choice()(); !tc.check(msg) {
				t.Errorf("unexpected message %#v", msg)
			}
		})
	}
}

func TestEscCancels(t *testing.T) {
	m := New(router.PathDashboard)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg")
	}
}
