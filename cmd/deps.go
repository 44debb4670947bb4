// ABOUTME: Wiring shared by every command: config, logging, session, router, client
// ABOUTME: Also maps errors to exit codes and renders output

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/Depaula010/meusecretariofront/internal/auth"
	"github.com/Depaula010/meusecretariofront/internal/authz"
	"github.com/Depaula010/meusecretariofront/internal/client"
	"github.com/Depaula010/meusecretariofront/internal/config"
	"github.com/Depaula010/meusecretariofront/internal/logger"
	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/Depaula010/meusecretariofront/internal/session"
	"github.com/Depaula010/meusecretariofront/internal/storage"
)

// Exit codes
const (
	exitOK       = 0
	exitRejected = 1
	exitError    = 2
)

// logOutput is where command logs go; the TUI swaps it for a file
var logOutput io.Writer = os.Stderr

// deps holds the components a command works with
type deps struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions *session.Store
	nav      *router.Router
	api      *client.Client
	auth     *auth.Service
}

// newDeps loads configuration and wires the session, router, and client
func newDeps() (*deps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	l := logger.Init(cfg.LogLevel, cfg.LogFormat, logOutput)

	var medium storage.Storage = storage.NewFile(cfg.ConfigDir)
	if ephemeral {
		medium = storage.NewMemory()
	}
	sessions := session.New(medium, cfg.TokenKey, cfg.UserKey)
	nav := router.New(sessions)
	api := client.New(cfg.BaseURL(),
		client.WithTimeout(cfg.Timeout),
		client.WithTransport(authz.NewTransport(nil, sessions, nav, l)),
	)

	return &deps{
		cfg:      cfg,
		logger:   l,
		sessions: sessions,
		nav:      nav,
		api:      api,
		auth:     auth.New(api, sessions, nav),
	}, nil
}

// enter navigates to path through the route guards. A refused navigation
// prints why and returns false.
func (d *deps) enter(w io.Writer, path string) bool {
	decision := d.nav.Go(path)
	if decision.Allowed {
		return true
	}

	if decision.Location.Path == router.PathLogin {
		fmt.Fprintln(w, "Error: not logged in. Run 'secretary login' first.")
	} else {
		name := "another user"
		if p, ok := d.sessions.Profile(); ok {
			name = p.Nome
		}
		fmt.Fprintf(w, "Error: already logged in as %s. Run 'secretary logout' first.\n", name)
	}
	return false
}

// userID returns the stored profile's id as used by the settings routes
func (d *deps) userID() (string, error) {
	p, ok := d.sessions.Profile()
	if !ok || p.ID == 0 {
		return "", errors.New("stored profile has no user id, log in again")
	}
	return strconv.Itoa(p.ID), nil
}

// exitCode maps an error to the process exit code
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, auth.ErrRejected) {
		return exitRejected
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return exitError
	}
	switch apiErr.Kind {
	case client.KindRejected, client.KindConflict, client.KindNotFound, client.KindForbidden:
		return exitRejected
	case client.KindValidation:
		// Status 0 means the input was refused before sending
		if apiErr.Status == 0 {
			return exitError
		}
		return exitRejected
	default:
		return exitError
	}
}

// fail prints err and returns its exit code
func fail(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		for field, msgs := range apiErr.Fields {
			for _, m := range msgs {
				fmt.Fprintf(w, "  %s: %s\n", field, m)
			}
		}
	}
	return exitCode(err)
}

// setupError reports a configuration failure
func setupError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitError
}

// formatJSON renders v as indented JSON
func formatJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data)
}

// money formats an amount with two decimals
func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
