// ABOUTME: Authentication endpoints: login and register
// ABOUTME: Cleans WhatsApp numbers and validates input before sending

package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/Depaula010/meusecretariofront/internal/session"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	WhatsApp string `json:"whatsapp"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Nome          string `json:"nome"`
	WhatsApp      string `json:"whatsapp"`
	Password      string `json:"password"`
	DiaVencimento int    `json:"dia_vencimento"`
	DiaFechamento int    `json:"dia_fechamento"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Status  string           `json:"status"`
	Token   string           `json:"token,omitempty"`
	User    *session.Profile `json:"user,omitempty"`
	Message string           `json:"message,omitempty"`
}

// OK reports whether the response carries a usable session
func (r *AuthResponse) OK() bool {
	return r.Status == "success" && r.Token != "" && r.User != nil
}

// CleanWhatsApp strips every non-digit from a phone number
func CleanWhatsApp(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks login input
func (r LoginRequest) Validate() error {
	if CleanWhatsApp(r.WhatsApp) == "" {
		return invalid("whatsapp is required")
	}
	if r.Password == "" {
		return invalid("password is required")
	}
	return nil
}

// Validate checks registration input
func (r RegisterRequest) Validate() error {
	if strings.TrimFunc(r.Nome, unicode.IsSpace) == "" {
		return invalid("nome is required")
	}
	if n := len(CleanWhatsApp(r.WhatsApp)); n < 10 || n > 13 {
		return invalid("whatsapp must have 10 to 13 digits")
	}
	if len(r.Password) < 6 {
		return invalid("password must have at least 6 characters")
	}
	if !validDay(r.DiaVencimento) {
		return invalid("dia_vencimento must be between 1 and 31")
	}
	if !validDay(r.DiaFechamento) {
		return invalid("dia_fechamento must be between 1 and 31")
	}
	return nil
}

// Login authenticates with whatsapp and password.
// The returned response may still report failure in its envelope.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.WhatsApp = CleanWhatsApp(req.WhatsApp)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, authError(err, MsgBadLogin)
	}
	return &resp, nil
}

// Register creates an account. Invalid input never reaches the network.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	req.WhatsApp = CleanWhatsApp(req.WhatsApp)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp); err != nil {
		return nil, authError(err, MsgUnauthorized)
	}
	return &resp, nil
}

// authError lets the server's own message win on auth endpoints, except for
// conflicts and server faults, and gives a 401 the credential message
// instead of "session expired".
func authError(err error, unauthorizedMsg string) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status == 0 {
		return err
	}
	switch {
	case apiErr.Detail != "" && apiErr.Kind != KindServer && apiErr.Kind != KindConflict:
		apiErr.Message = apiErr.Detail
	case apiErr.Kind == KindUnauthorized:
		apiErr.Message = unauthorizedMsg
	}
	return apiErr
}

func validDay(d int) bool {
	return d >= 1 && d <= 31
}
