package ecode

import "net/http"

// Business codes carried in the {code, message, data} envelope.
// The blog API reuses HTTP status numbers as business codes.
const (
	OK           = 200
	Created      = 201
	RequestErr   = 400
	Unauthorized = 401
	AccessDenied = 403
	NothingFound = 404
	Conflict     = 409
	ServerErr    = 500
)

var texts = map[int]string{
	OK:           "ok",
	Created:      "created",
	RequestErr:   "invalid request",
	Unauthorized: "not logged in",
	AccessDenied: "access denied",
	NothingFound: "resource not found",
	Conflict:     "resource conflict",
	ServerErr:    "internal server error",
}

// Text returns the message for a business code, falling back to the
// HTTP status text.
func Text(code int) string {
	if t, ok := texts[code]; ok {
		return t
	}
	if t := http.StatusText(code); t != "" {
		return t
	}
	return "API error"
}

// IsSuccess reports whether code is a success business code.
// Zero is treated as success since some handlers omit it.
func IsSuccess(code int) bool {
	return code == 0 || (code >= 200 && code < 400)
}
