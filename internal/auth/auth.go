// ABOUTME: Authentication flows tying the API client to the session and router
// ABOUTME: Login/register store the session and navigate; logout clears and returns to login

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/session"
)

// Fallback messages when a failed envelope carries none
const (
	MsgLoginFailed    = "login failed"
	MsgRegisterFailed = "could not create the account"
)

// API is the part of the client the service needs
type API interface {
	Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
}

// Navigator commits locations without guards
type Navigator interface {
	Navigate(loc router.Location)
}

// ErrRejected is returned when the server answers but refuses the credentials
var ErrRejected = errors.New("authentication rejected")

// Error carries a user-facing message for a failed login or registration
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Service runs the authentication flows
type Service struct {
	api      API
	sessions *session.Store
	nav      Navigator
}

// New creates a Service
func New(api API, sessions *session.Store, nav Navigator) *Service {
	return &Service{api: api, sessions: sessions, nav: nav}
}

// Login authenticates, stores the session, and navigates to returnURL when it
// is a safe in-app path, otherwise to the dashboard.
func (s *Service) Login(ctx context.Context, req client.LoginRequest, returnURL string) (*session.Profile, error) {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.complete(resp, returnURL, MsgLoginFailed)
}

// Register creates an account and logs in with it. Input is validated
// before any request is made.
func (s *Service) Register(ctx context.Context, req client.RegisterRequest) (*session.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.complete(resp, "", MsgRegisterFailed)
}

func (s *Service) complete(resp *client.AuthResponse, returnURL, fallback string) (*session.Profile, error) {
	if !resp.OK() {
		msg := resp.Message
		if msg == "" {
			msg = fallback
		}
		return nil, &Error{Message: msg, Err: ErrRejected}
	}

	if err := s.sessions.SetSession(resp.Token, *resp.User); err != nil {
		slog.Error("Failed to persist session", "error", err)
		return nil, &Error{Message: "could not save the session", Err: err}
	}

	dest := router.Location{Path: router.PathDashboard}
	if target, ok := router.SafeReturnURL(returnURL); ok {
		dest = router.ParseLocation(target)
	}
	slog.Info("Logged in", "user", resp.User.Nome, "redirect", dest.String())
	s.nav.Navigate(dest)

	return resp.User, nil
}

// Logout clears the session and returns to the login screen
func (s *Service) Logout() {
	s.sessions.Clear()
	s.nav.Navigate(router.Location{Path: router.PathLogin})
}

// Current reports the session state and the stored profile, if any
func (s *Service) Current() (session.State, *session.Profile) {
	p, _ := s.sessions.Profile()
	return s.sessions.State(), p
}
