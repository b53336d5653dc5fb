package ecode

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Kind classifies a failure so callers can decide whether to surface it,
// render an empty view or ignore it.
type Kind int

const (
	KindUnknown Kind = iota
	// KindAuth is a credential or challenge failure.
	KindAuth
	// KindValidation is a client-side check that blocked a request.
	KindValidation
	// KindAPI is a non-success response from the API.
	KindAPI
	// KindNotFound is an API response for a missing resource.
	KindNotFound
	// KindUpload is a failed PUT to a pre-signed URL.
	KindUpload
	// KindNetwork is a transport failure before any response.
	KindNetwork
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown",
	KindAuth:       "auth",
	KindValidation: "validation",
	KindAPI:        "api",
	KindNotFound:   "not_found",
	KindUpload:     "upload",
	KindNetwork:    "network",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Error is the error type returned by every remote-facing package.
type Error struct {
	Kind    Kind
	Status  int               // HTTP status, 0 when no response was received
	Code    int               // envelope business code
	Message string            // human readable message
	Fields  map[string]string // per-field validation messages
	Err     error             // underlying cause
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, e.Fields[k])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Status == 0
}

// Sentinels for errors.Is checks.
var (
	ErrAuth       = &Error{Kind: KindAuth}
	ErrValidation = &Error{Kind: KindValidation}
	ErrAPI        = &Error{Kind: KindAPI}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrUpload     = &Error{Kind: KindUpload}
	ErrNetwork    = &Error{Kind: KindNetwork}
)

// Auth returns an authentication failure.
func Auth(message string, err error) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Code: Unauthorized, Message: message, Err: err}
}

// Validation returns a validation failure with optional field messages.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Code: RequestErr, Message: message, Fields: fields}
}

// API returns an API failure for the given status, code and server message.
// A 404 status or code is reported as KindNotFound.
func API(status, code int, message string) *Error {
	kind := KindAPI
	if status == http.StatusNotFound || code == NothingFound {
		kind = KindNotFound
	}
	if message == "" {
		if code != 0 && !IsSuccess(code) {
			message = Text(code)
		} else {
			message = Text(status)
		}
	}
	return &Error{Kind: kind, Status: status, Code: code, Message: message}
}

// Upload returns an upload failure with the storage status embedded.
func Upload(status int, err error) *Error {
	msg := fmt.Sprintf("%s: %d", Failed("upload"), status)
	if status == 0 {
		msg = Failed("upload")
	}
	return &Error{Kind: KindUpload, Status: status, Message: msg, Err: err}
}

// Network returns a transport failure.
func Network(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// Message returns the user facing message of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindValidation && len(e.Fields) > 0 {
			keys := make([]string, 0, len(e.Fields))
			for k := range e.Fields {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return e.Fields[keys[0]]
		}
		return e.Message
	}
	return err.Error()
}
