package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/blogclient/ecode"
)

// Envelope represents the response structure.
type Envelope[T any] struct {
	Code    int    `json:"code"`              // Business code
	Message string `json:"message,omitempty"` // Message
	Data    T      `json:"data"`              // Response data
}

// exception is the loose shape used to read error bodies, which may come
// from the API handlers or from the gateway in front of them.
type exception struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Decode parses body into out according to status.
// A nil out discards the payload.
func Decode(status int, body []byte, out any) error {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return decodeFailure(status, body)
	}

	if len(body) == 0 {
		return nil
	}

	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return &ecode.Error{Kind: ecode.KindAPI, Status: status, Message: "malformed response", Err: err}
	}

	if !ecode.IsSuccess(env.Code) {
		return ecode.API(status, env.Code, env.Message)
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &ecode.Error{Kind: ecode.KindAPI, Status: status, Code: env.Code, Message: "malformed response data", Err: err}
	}
	return nil
}

// decodeFailure builds the error for a non-success status, keeping the
// server supplied message when the body carries one.
func decodeFailure(status int, body []byte) error {
	var ex exception
	if len(body) > 0 && json.Unmarshal(body, &ex) == nil {
		message := ex.Message
		if message == "" {
			message = ex.Error
		}
		return ecode.API(status, ex.Code, message)
	}
	return ecode.API(status, 0, "")
}
