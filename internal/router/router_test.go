// ABOUTME: Tests for route resolution, entry guards, and navigation
// ABOUTME: Validates returnUrl recording and redirect behavior per session state

package router

import (
	"testing"
	"time"

	"github.com/Depaula010/meusecretariofront/internal/session"
)

type fixedState session.State

func (f fixedState) State() session.State { return session.State(f) }

func TestGuardsWithoutToken(t *testing.T) {
	target := Location{Path: PathTransactions}

	private := RequireAuth(session.Unauthenticated, target)
	if private.Allowed {
		t.Error("expected private guard to deny unauthenticated access")
	}
	if private.Location.Path != PathLogin {
		t.Errorf("expected redirect to %s, got %s", PathLogin, private.Location.Path)
	}
	if got := private.Location.ReturnURL(); got != PathTransactions {
		t.Errorf("expected returnUrl %s, got %q", PathTransactions, got)
	}

	public := RequirePublic(session.Unauthenticated, Location{Path: PathLogin})
	if !public.Allowed {
		t.Error("expected public guard to permit unauthenticated access")
	}
}

func TestGuardsWithToken(t *testing.T) {
	private := RequireAuth(session.Authenticated, Location{Path: PathSettings})
	if !private.Allowed || private.Location.Path != PathSettings {
		t.Errorf("expected private guard to allow, got %+v", private)
	}

	public := RequirePublic(session.Authenticated, Location{Path: PathRegister})
	if public.Allowed {
		t.Error("expected public guard to deny authenticated access")
	}
	if public.Location.Path != PathDashboard {
		t.Errorf("expected redirect to dashboard, got %s", public.Location.Path)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		access   Access
	}{
		{"", PathDashboard, AccessPrivate},
		{"/", PathDashboard, AccessPrivate},
		{"/auth", PathLogin, AccessPublic},
		{"/auth/", PathLogin, AccessPublic},
		{"/auth/register", PathRegister, AccessPublic},
		{"/finances", PathTransactions, AccessPrivate},
		{"/finances/accounts", PathAccounts, AccessPrivate},
		{"/settings/", PathSettings, AccessPrivate},
		{"/subscription", PathSubscription, AccessPrivate},
		{"/nope", PathNotFound, AccessOpen},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r := Resolve(tc.path)
			if r.Path != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, r.Path)
			}
			if r.Access != tc.access {
				t.Errorf("expected access %d, got %d", tc.access, r.Access)
			}
		})
	}
}

func TestSafeReturnURL(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"/finances/transactions", true},
		{"/finances/transactions?tipo=receita", true},
		{"", false},
		{"finances", false},
		{"//evil.example.com", false},
		{"/\\evil.example.com", false},
		{"https://evil.example.com/x", false},
		{"/auth/login", false},
		{"/auth", false},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			_, ok := SafeReturnURL(tc.raw)
			if ok != tc.ok {
				t.Errorf("SafeReturnURL(%q) = %t, expected %t", tc.raw, ok, tc.ok)
			}
		})
	}
}

func TestInAuthArea(t *testing.T) {
	if !InAuthArea("/auth/login") || !InAuthArea("/auth") {
		t.Error("expected auth paths to be in auth area")
	}
	if InAuthArea("/authors") || InAuthArea("/dashboard") {
		t.Error("expected non-auth paths outside auth area")
	}
}

func TestLocationString(t *testing.T) {
	loc := LoginLocation("/finances/transactions")
	parsed := ParseLocation(loc.String())

	if parsed.Path != PathLogin {
		t.Errorf("expected path %s, got %s", PathLogin, parsed.Path)
	}
	if parsed.ReturnURL() != "/finances/transactions" {
		t.Errorf("expected returnUrl to survive encoding, got %q", parsed.ReturnURL())
	}

	if LoginLocation("").String() != PathLogin {
		t.Error("expected no query without returnUrl")
	}
}

func TestRouterGoPrivateUnauthenticated(t *testing.T) {
	r := New(fixedState(session.Unauthenticated))

	d := r.Go(PathAccounts)
	if d.Allowed {
		t.Error("expected navigation to be redirected")
	}

	cur := r.Current()
	if cur.Path != PathLogin || cur.ReturnURL() != PathAccounts {
		t.Errorf("expected login with returnUrl, got %s", cur.String())
	}
}

func TestRouterGoResolvesRedirects(t *testing.T) {
	r := New(fixedState(session.Authenticated))

	d := r.Go("/finances")
	if !d.Allowed {
		t.Fatal("expected navigation to be allowed")
	}
	if r.Current().Path != PathTransactions {
		t.Errorf("expected %s, got %s", PathTransactions, r.Current().Path)
	}

	r.Go("/auth/login")
	if r.Current().Path != PathDashboard {
		t.Errorf("expected authenticated user bounced to dashboard, got %s", r.Current().Path)
	}
}

func TestRouterSubscribe(t *testing.T) {
	r := New(fixedState(session.Authenticated))
	ch, cancel := r.Subscribe()
	defer cancel()

	r.Go(PathSettings)

	select {
	case loc := <-ch:
		if loc.Path != PathSettings {
			t.Errorf("expected %s, got %s", PathSettings, loc.Path)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for navigation event")
	}
}
