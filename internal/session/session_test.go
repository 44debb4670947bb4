// ABOUTME: Tests for the session store
// ABOUTME: Validates round trips, idempotent clear, rollback, degradation, and notifications

package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Depaula010/meusecretariofront/internal/storage"
)

// failingStorage wraps a memory storage and fails on selected operations
type failingStorage struct {
	*storage.MemoryStorage
	failGet       bool
	failSetKey    string
	failRemoveKey string
}

func (f *failingStorage) Get(key string) (string, bool, error) {
	if f.failGet {
		return "", false, storage.ErrUnavailable
	}
	return f.MemoryStorage.Get(key)
}

func (f *failingStorage) Set(key, value string) error {
	if key == f.failSetKey {
		return storage.ErrUnavailable
	}
	return f.MemoryStorage.Set(key, value)
}

func (f *failingStorage) Remove(key string) error {
	if key == f.failRemoveKey {
		return storage.ErrUnavailable
	}
	return f.MemoryStorage.Remove(key)
}

func TestSetSessionRoundTrip(t *testing.T) {
	s := New(storage.NewMemory(), "", "")

	sessions := []struct {
		token   string
		profile Profile
	}{
		{"abc", Profile{Nome: "Ana", WhatsApp: "5511999999999"}},
		{"def", Profile{Nome: "Bruno", WhatsApp: "5521988887777", DiaVencimento: 10, DiaFechamento: 3}},
	}

	for _, tc := range sessions {
		if err := s.SetSession(tc.token, tc.profile); err != nil {
			t.Fatalf("SetSession() error: %v", err)
		}

		token, ok := s.Token()
		if !ok || token != tc.token {
			t.Errorf("expected token %q, got %q", tc.token, token)
		}
		p, ok := s.Profile()
		if !ok {
			t.Fatal("expected profile to be present")
		}
		if *p != tc.profile {
			t.Errorf("expected profile %+v, got %+v", tc.profile, *p)
		}
	}
}

func TestSetSessionPersistsAcrossStores(t *testing.T) {
	dir := t.TempDir()
	New(storage.NewFile(dir), "", "").SetSession("abc", Profile{Nome: "Ana"})

	reloaded := New(storage.NewFile(dir), "", "")
	if reloaded.State() != Authenticated {
		t.Error("expected reloaded store to be authenticated")
	}
	if p, ok := reloaded.Profile(); !ok || p.Nome != "Ana" {
		t.Errorf("expected profile Ana after reload, got %+v", p)
	}
}

func TestSetSessionRejectsEmptyToken(t *testing.T) {
	s := New(storage.NewMemory(), "", "")

	if err := s.SetSession("", Profile{Nome: "Ana"}); !errors.Is(err, ErrEmptyToken) {
		t.Errorf("expected ErrEmptyToken, got %v", err)
	}
	if s.State() != Unauthenticated {
		t.Error("expected store to stay unauthenticated")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := New(storage.NewMemory(), "", "")

	// Clear with no session
	s.Clear()
	if _, ok := s.Token(); ok {
		t.Error("expected no token after clearing empty store")
	}

	s.SetSession("abc", Profile{Nome: "Ana"})
	s.Clear()
	s.Clear()

	if _, ok := s.Token(); ok {
		t.Error("expected no token after clear")
	}
	if _, ok := s.Profile(); ok {
		t.Error("expected no profile after clear")
	}
}

func TestClearKeepsStateWhenTokenSurvives(t *testing.T) {
	st := &failingStorage{MemoryStorage: storage.NewMemory(), failRemoveKey: DefaultTokenKey}
	s := New(st, "", "")
	s.SetSession("abc", Profile{Nome: "Ana"})

	ch, cancel := s.Subscribe()
	defer cancel()

	s.Clear()

	if s.State() != Authenticated {
		t.Fatal("expected token to remain after failed removal")
	}
	select {
	case got := <-ch:
		t.Errorf("expected no transition, got %s", got)
	default:
	}

	st.failRemoveKey = ""
	s.Clear()
	expectState(t, ch, Unauthenticated)
}

func TestProfileAbsentWithoutToken(t *testing.T) {
	mem := storage.NewMemory()
	mem.Set(DefaultUserKey, `{"nome":"Ana"}`)

	s := New(mem, "", "")
	if _, ok := s.Profile(); ok {
		t.Error("expected profile to be absent when no token is stored")
	}
}

func TestCorruptProfileIsAbsent(t *testing.T) {
	mem := storage.NewMemory()
	mem.Set(DefaultTokenKey, "abc")
	mem.Set(DefaultUserKey, "{broken")

	s := New(mem, "", "")
	if s.State() != Authenticated {
		t.Error("expected token presence to mean authenticated")
	}
	if _, ok := s.Profile(); ok {
		t.Error("expected corrupt profile to be absent")
	}
}

func TestSetSessionRollsBackProfile(t *testing.T) {
	fs := &failingStorage{MemoryStorage: storage.NewMemory(), failSetKey: DefaultTokenKey}
	s := New(fs, "", "")

	if err := s.SetSession("abc", Profile{Nome: "Ana"}); err == nil {
		t.Fatal("expected error when token cannot be written")
	}
	if _, ok, _ := fs.MemoryStorage.Get(DefaultUserKey); ok {
		t.Error("expected profile write to be rolled back")
	}
}

func TestStorageFailureDegradesToUnauthenticated(t *testing.T) {
	fs := &failingStorage{MemoryStorage: storage.NewMemory(), failGet: true}
	fs.MemoryStorage.Set(DefaultTokenKey, "abc")

	s := New(fs, "", "")
	if s.State() != Unauthenticated {
		t.Error("expected unavailable storage to read as unauthenticated")
	}
	if _, ok := s.Token(); ok {
		t.Error("expected no token from unavailable storage")
	}
}

func TestCustomKeys(t *testing.T) {
	mem := storage.NewMemory()
	s := New(mem, "tk", "uk")
	s.SetSession("abc", Profile{Nome: "Ana"})

	if v, ok, _ := mem.Get("tk"); !ok || v != "abc" {
		t.Errorf("expected token under custom key, got %q", v)
	}
	if _, ok, _ := mem.Get("uk"); !ok {
		t.Error("expected profile under custom key")
	}
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	s := New(storage.NewMemory(), "", "")
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetSession("abc", Profile{Nome: "Ana"})
	expectState(t, ch, Authenticated)

	// Re-login while authenticated is not a transition
	s.SetSession("def", Profile{Nome: "Ana"})
	select {
	case st := <-ch:
		t.Fatalf("unexpected notification %s", st)
	default:
	}

	s.Clear()
	expectState(t, ch, Unauthenticated)
}

func TestSubscribeSlowReaderSeesLatest(t *testing.T) {
	s := New(storage.NewMemory(), "", "")
	ch, cancel := s.Subscribe()
	defer cancel()

	s.SetSession("abc", Profile{Nome: "Ana"})
	s.Clear()

	expectState(t, ch, Unauthenticated)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := New(storage.NewMemory(), "", "")
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("expected channel to be closed")
	}

	// Publishing after unsubscribe must not panic
	s.SetSession("abc", Profile{Nome: "Ana"})
}

func TestConcurrentClear(t *testing.T) {
	s := New(storage.NewMemory(), "", "")
	s.SetSession("abc", Profile{Nome: "Ana"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Clear()
		}()
	}
	wg.Wait()

	if s.State() != Unauthenticated {
		t.Error("expected unauthenticated after concurrent clears")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{Authenticated, "authenticated"},
		{Unauthenticated, "unauthenticated"},
		{State(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.expected {
			t.Errorf("expected %q, got %q", tc.expected, got)
		}
	}
}

func expectState(t *testing.T, ch <-chan State, want State) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
}
