// ABOUTME: Request authorizer as a composable http.RoundTripper pipeline
// ABOUTME: Attaches bearer tokens and reacts to 401 responses by clearing the session

package authz

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Depaula010/meusecretariofront/internal/router"
	"github.com/google/uuid"
)

// RequestIDHeader is set on every outgoing request for log correlation
const RequestIDHeader = "X-Request-ID"

// Stage wraps a transport with one step of request/response handling
type Stage func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper
func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// Chain applies stages to base in order.
// The first stage in the list is the outermost (sees the request first).
// Example: Chain(base, logging, bearer) applies as: logging(bearer(base))
func Chain(base http.RoundTripper, stages ...Stage) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(stages) - 1; i >= 0; i-- {
		base = stages[i](base)
	}
	return base
}

// TokenSource supplies the current bearer token
type TokenSource interface {
	Token() (string, bool)
}

// Session is the part of the session store the authorizer mutates
type Session interface {
	TokenSource
	Clear()
}

// Navigator is the part of the router the authorizer drives
type Navigator interface {
	Current() router.Location
	Navigate(loc router.Location)
}

// Bearer attaches "Authorization: Bearer <token>" when a token is stored.
// The caller's request is never modified; a clone carries the header.
func Bearer(tokens TokenSource) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			token, ok := tokens.Token()
			if !ok {
				return next.RoundTrip(req)
			}
			authReq := req.Clone(req.Context())
			authReq.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(authReq)
		})
	}
}

// Unauthorized clears the session on a 401 and, outside the auth area,
// sends the user to login with the current location as returnUrl.
// The response is handed back unchanged so callers still see the failure.
// The failed request is not retried.
func Unauthorized(sess Session, nav Navigator) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.RoundTrip(req)
			if err != nil || resp.StatusCode != http.StatusUnauthorized {
				return resp, err
			}

			sess.Clear()

			current := nav.Current()
			if !router.InAuthArea(current.Path) {
				slog.Warn("Token expired or invalid, redirecting to login",
					"path", req.URL.Path,
					"return_url", current.String(),
				)
				nav.Navigate(router.LoginLocation(current.String()))
			}
			return resp, nil
		})
	}
}

// LogRequests tags each request with a correlation ID and logs its outcome
func LogRequests(logger *slog.Logger) Stage {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			requestID := uuid.NewString()

			tagged := req.Clone(req.Context())
			tagged.Header.Set(RequestIDHeader, requestID)

			logger.Debug("Request started",
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
			)

			resp, err := next.RoundTrip(tagged)
			if err != nil {
				logger.Debug("Request failed",
					"request_id", requestID,
					"method", req.Method,
					"path", req.URL.Path,
					"error", err,
					"latency_ms", time.Since(start).Milliseconds(),
				)
				return nil, err
			}

			logger.Debug("Request completed",
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return resp, nil
		})
	}
}

// NewTransport composes the standard pipeline: logging, bearer, unauthorized
func NewTransport(base http.RoundTripper, sess Session, nav Navigator, logger *slog.Logger) http.RoundTripper {
	return Chain(base,
		LogRequests(logger),
		Bearer(sess),
		Unauthorized(sess, nav),
	)
}
