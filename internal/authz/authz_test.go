// ABOUTME: Tests for the request authorizer pipeline
// ABOUTME: Validates bearer attachment, 401 handling, redirects, and stage ordering

package authz

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/session"
	"github.com/Depaula010/meusecretariofront/internal/storage"
)

func newFixture(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *session.Store, *router.Router, *http.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.New(storage.NewMemory(), "", "")
	nav := router.New(store)
	httpClient := &http.Client{Transport: NewTransport(http.DefaultTransport, store, nav, nil)}
	return server, store, nav, httpClient
}

func TestBearerAttachedWhenTokenStored(t *testing.T) {
	var gotAuth string
	server, store, _, httpClient := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})
	store.SetSession("T", session.Profile{Nome: "Ana"})

	resp, err := httpClient.Get(server.URL + "/api/dashboard/summary")
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer T" {
		t.Errorf("expected Authorization 'Bearer T', got %q", gotAuth)
	}
}

func TestNoHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	var present bool
	server, _, _, httpClient := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	})

	resp, err := httpClient.Get(server.URL + "/api/auth/login")
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()

	if present || gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestBearerDoesNotMutateCallerRequest(t *testing.T) {
	store := session.New(storage.NewMemory(), "", "")
	store.SetSession("T", session.Profile{})

	var seen string
	rt := Bearer(store)(RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("Authorization")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
	}))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/x", nil)
	req.RequestURI = ""
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip error: %v", err)
	}

	if seen != "Bearer T" {
		t.Errorf("expected downstream to see token, got %q", seen)
	}
	if req.Header.Get("Authorization") != "" {
		t.Error("expected caller request to stay unchanged")
	}
}

func TestUnauthorizedClearsSessionAndRedirects(t *testing.T) {
	server, store, nav, httpClient := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	store.SetSession("abc", session.Profile{Nome: "Ana"})
	nav.Go(router.PathTransactions)

	resp, err := httpClient.Get(server.URL + "/api/finances/transactions")
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 to reach the caller, got %d", resp.StatusCode)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected token to be cleared")
	}
	if _, ok := store.Profile(); ok {
		t.Error("expected profile to be cleared")
	}

	cur := nav.Current()
	if cur.Path != router.PathLogin {
		t.Errorf("expected redirect to %s, got %s", router.PathLogin, cur.Path)
	}
	if cur.ReturnURL() != "/finances/transactions" {
		t.Errorf("expected returnUrl /finances/transactions, got %q", cur.ReturnURL())
	}
}

func TestUnauthorizedInAuthAreaDoesNotRedirect(t *testing.T) {
	server, store, nav, httpClient := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	nav.Navigate(router.Location{Path: router.PathLogin})
	events, cancel := nav.Subscribe()
	defer cancel()

	resp, err := httpClient.Post(server.URL+"/api/auth/login", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()

	select {
	case loc := <-events:
		t.Errorf("expected no navigation, got %s", loc.String())
	default:
	}
	if store.State() != session.Unauthenticated {
		t.Error("expected session to stay unauthenticated")
	}
}

func TestOtherStatusesPassThrough(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusForbidden, http.StatusBadRequest, http.StatusInternalServerError} {
		server, store, nav, httpClient := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		store.SetSession("abc", session.Profile{})
		nav.Go(router.PathDashboard)

		resp, err := httpClient.Get(server.URL + "/api/dashboard/summary")
		if err != nil {
			t.Fatalf("request error: %v", err)
		}
		resp.Body.Close()

		if store.State() != session.Authenticated {
			t.Errorf("status %d: expected session to survive", status)
		}
		if nav.Current().Path != router.PathDashboard {
			t.Errorf("status %d: expected no navigation, got %s", status, nav.Current().Path)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	var id string
	server, _, _, httpClient := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		id = r.Header.Get(RequestIDHeader)
	})

	resp, err := httpClient.Get(server.URL)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()

	if len(id) != 36 {
		t.Errorf("expected uuid request id, got %q", id)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(req)
			})
		}
	}
	base := RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
		order = append(order, "base")
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	})

	rt := Chain(base, stage("first"), stage("second"))
	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	rt.RoundTrip(req)

	expected := []string{"first", "second", "base"}
	if strings.Join(order, ",") != strings.Join(expected, ",") {
		t.Errorf("expected order %v, got %v", expected, order)
	}
}
