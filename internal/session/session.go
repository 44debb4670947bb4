// ABOUTME: Session store holding the bearer token and the profile it authorizes
// ABOUTME: Persists both through storage and notifies subscribers on auth transitions

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Depaula010/meusecretariofront/internal/storage"
)

// Default storage keys, matching the web client
const (
	DefaultTokenKey = "meusecretario_token"
	DefaultUserKey  = "meusecretario_user"
)

// ErrEmptyToken is returned when SetSession is called without a token
var ErrEmptyToken = errors.New("session token is empty")

// State is the session-level authentication state
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Profile is the user identity returned by login and registration
type Profile struct {
	ID            int    `json:"id,omitempty"`
	Nome          string `json:"nome"`
	WhatsApp      string `json:"whatsapp"`
	DiaVencimento int    `json:"dia_vencimento,omitempty"`
	DiaFechamento int    `json:"dia_fechamento,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// Store is the single owner of the persisted session entries
type Store struct {
	storage  storage.Storage
	tokenKey string
	userKey  string

	mu     sync.Mutex
	last   State
	subs   map[int]chan State
	nextID int
}

// New creates a session store over st using the given entry names.
// Empty key names fall back to the defaults.
func New(st storage.Storage, tokenKey, userKey string) *Store {
	if tokenKey == "" {
		tokenKey = DefaultTokenKey
	}
	if userKey == "" {
		userKey = DefaultUserKey
	}
	s := &Store{
		storage:  st,
		tokenKey: tokenKey,
		userKey:  userKey,
		subs:     make(map[int]chan State),
	}
	s.last = s.State()
	return s
}

// SetSession persists token and profile together. If the second write fails
// the first is rolled back so neither is left without the other.
func (s *Store) SetSession(token string, profile Profile) error {
	if token == "" {
		return ErrEmptyToken
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(s.userKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	if err := s.storage.Set(s.tokenKey, token); err != nil {
		if rmErr := s.storage.Remove(s.userKey); rmErr != nil {
			slog.Warn("Failed to roll back profile after token write failure", "error", rmErr)
		}
		return fmt.Errorf("failed to persist token: %w", err)
	}

	s.publish(Authenticated)
	return nil
}

// Token returns the stored bearer token, if any
func (s *Store) Token() (string, bool) {
	token, ok, err := s.storage.Get(s.tokenKey)
	if err != nil {
		slog.Warn("Session storage unavailable, treating as unauthenticated", "error", err)
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Profile returns the stored profile. It is absent whenever the token is.
func (s *Store) Profile() (*Profile, bool) {
	if _, ok := s.Token(); !ok {
		return nil, false
	}

	raw, ok, err := s.storage.Get(s.userKey)
	if err != nil {
		slog.Warn("Session storage unavailable while reading profile", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		slog.Warn("Stored profile is not valid JSON", "error", err)
		return nil, false
	}
	return &p, true
}

// State reports Authenticated when a token is present.
// The token is not validated against the server.
func (s *Store) State() State {
	if _, ok := s.Token(); ok {
		return Authenticated
	}
	return Unauthenticated
}

// Clear removes both entries. Safe to call without a session.
// Subscribers are told the state that storage actually holds afterwards.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Remove(s.tokenKey); err != nil {
		slog.Warn("Failed to remove session token", "error", err)
	}
	if err := s.storage.Remove(s.userKey); err != nil {
		slog.Warn("Failed to remove session profile", "error", err)
	}

	s.publish(s.State())
}

// Subscribe returns a channel receiving every authentication transition.
// A slow reader only sees the most recent state. Call the returned func to
// unsubscribe; it closes the channel.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish notifies subscribers when state differs from the last published one.
// Caller must hold s.mu.
func (s *Store) publish(state State) {
	if state == s.last {
		return
	}
	s.last = state
	slog.Debug("Session state changed", "state", state.String())

	for _, ch := range s.subs {
		select {
		case ch <- state:
		default:
			// Replace the stale pending value with the latest one
			select {
			case <-ch:
			default:
			}
			ch <- state
		}
	}
}
