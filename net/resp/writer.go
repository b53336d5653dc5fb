package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/blogclient/ecode"
)

// Success writes data in a success envelope.
func Success(w http.ResponseWriter, data any) {
	WithStatusCode(w, http.StatusOK, data)
}

// WithStatusCode writes data in a success envelope with a custom status.
// The business code mirrors the status.
func WithStatusCode(w http.ResponseWriter, status int, data any) {
	writeResponse(w, status, &Envelope[any]{Code: status, Message: "ok", Data: data})
}

// Fail writes a failure envelope. A zero code mirrors the status and an
// empty message falls back to the code text.
func Fail(w http.ResponseWriter, status, code int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if code == 0 {
		code = status
	}
	if message == "" {
		message = ecode.Text(code)
	}
	writeResponse(w, status, &Envelope[any]{Code: code, Message: message})
}

// writeResponse writes res as JSON.
func writeResponse(w http.ResponseWriter, status int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
