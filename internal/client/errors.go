// ABOUTME: Error taxonomy for API calls
// ABOUTME: Maps transport failures and HTTP statuses to user-facing messages

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Kind classifies an API failure
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindCanceled
	KindTimeout
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindConflict
	KindServer
	KindRejected
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCanceled:
		return "canceled"
	case KindTimeout:
		return "timeout"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindServer:
		return "server"
	case KindRejected:
		return "rejected"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// User-facing messages
const (
	MsgNetwork      = "cannot reach the server, check your connection"
	MsgCanceled     = "request canceled"
	MsgTimeout      = "request timed out"
	MsgUnauthorized = "session expired, please log in again"
	MsgForbidden    = "you do not have permission to perform this action"
	MsgNotFound     = "resource not found"
	MsgValidation   = "invalid data, check the fields"
	MsgConflict     = "this WhatsApp number is already registered"
	MsgServer       = "server error, try again later"
	MsgDecode       = "invalid response from server"
	MsgBadLogin     = "invalid WhatsApp number or password"
)

// APIError is returned by every client operation.
// Message is safe to show to the user; Detail is the server's own message, if any.
type APIError struct {
	Kind    Kind
	Status  int
	Message string
	Detail  string
	Fields  map[string][]string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches any *APIError of the same kind, so errors.Is(err, ErrConflict) works
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrNetwork      = &APIError{Kind: KindNetwork, Message: MsgNetwork}
	ErrCanceled     = &APIError{Kind: KindCanceled, Message: MsgCanceled}
	ErrTimeout      = &APIError{Kind: KindTimeout, Message: MsgTimeout}
	ErrUnauthorized = &APIError{Kind: KindUnauthorized, Message: MsgUnauthorized}
	ErrForbidden    = &APIError{Kind: KindForbidden, Message: MsgForbidden}
	ErrNotFound     = &APIError{Kind: KindNotFound, Message: MsgNotFound}
	ErrValidation   = &APIError{Kind: KindValidation, Message: MsgValidation}
	ErrConflict     = &APIError{Kind: KindConflict, Message: MsgConflict}
	ErrServer       = &APIError{Kind: KindServer, Message: MsgServer}
	ErrRejected     = &APIError{Kind: KindRejected, Message: "request rejected by server"}
	ErrDecode       = &APIError{Kind: KindDecode, Message: MsgDecode}
)

// errorBody is the error shape the API uses on non-2xx responses
type errorBody struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// handleRequestError converts a transport failure into an APIError
func handleRequestError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return &APIError{Kind: KindCanceled, Message: MsgCanceled, Err: err}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &APIError{Kind: KindTimeout, Message: MsgTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &APIError{Kind: KindTimeout, Message: MsgTimeout, Err: err}
	}
	return &APIError{Kind: KindNetwork, Message: MsgNetwork, Err: err}
}

// handleErrorResponse converts a non-2xx response into an APIError
func handleErrorResponse(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)
	detail := strings.TrimSpace(eb.Message)
	if detail == "" {
		detail = strings.TrimSpace(eb.Error)
	}

	apiErr := &APIError{
		Status: status,
		Detail: detail,
		Fields: eb.Errors,
		Err:    fmt.Errorf("server returned status %d", status),
	}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind, apiErr.Message = KindUnauthorized, MsgUnauthorized
	case status == http.StatusForbidden:
		apiErr.Kind, apiErr.Message = KindForbidden, MsgForbidden
	case status == http.StatusNotFound:
		apiErr.Kind, apiErr.Message = KindNotFound, MsgNotFound
	case status == http.StatusConflict:
		apiErr.Kind, apiErr.Message = KindConflict, MsgConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		apiErr.Kind, apiErr.Message = KindValidation, orDefault(detail, MsgValidation)
	case status >= 500:
		apiErr.Kind, apiErr.Message = KindServer, MsgServer
	default:
		apiErr.Kind = KindRejected
		apiErr.Message = orDefault(detail, fmt.Sprintf("request failed with status %d", status))
	}
	return apiErr
}

// rejected builds the error for a 2xx response whose envelope reports failure
func rejected(message, fallback string) error {
	return &APIError{Kind: KindRejected, Status: http.StatusOK, Message: orDefault(strings.TrimSpace(message), fallback), Detail: message}
}

// invalid builds a client-side validation error; no request was sent
func invalid(format string, args ...any) error {
	return &APIError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
