package ecode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAPIKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		code    int
		message string
		kind    Kind
		text    string
	}{
		{"server message kept", http.StatusBadRequest, 400, "title too long", KindAPI, "title too long"},
		{"status 404", http.StatusNotFound, 0, "", KindNotFound, "resource not found"},
		{"envelope 404", http.StatusOK, 404, "User not found", KindNotFound, "User not found"},
		{"fallback to code text", http.StatusForbidden, 403, "", KindAPI, "access denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := API(tt.status, tt.code, tt.message)
			if err.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, err.Kind)
			}
			if err.Message != tt.text {
				t.Errorf("expected message %q, got %q", tt.text, err.Message)
			}
		})
	}
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("load post: %w", API(http.StatusNotFound, 404, "Post not found"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped error to match ErrNotFound")
	}
	if errors.Is(err, ErrAPI) {
		t.Errorf("not found should not match ErrAPI")
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("expected KindNotFound, got %v", KindOf(err))
	}
}

func TestUploadMessage(t *testing.T) {
	err := Upload(http.StatusForbidden, nil)
	if err.Message != "upload failed: 403" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if !IsKind(err, KindUpload) {
		t.Errorf("expected upload kind")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(nil); got != "" {
		t.Errorf("expected empty message, got %q", got)
	}
	v := Validation("invalid post", map[string]string{"title": "The field 'title' is required."})
	if got := Message(v); got != "The field 'title' is required." {
		t.Errorf("unexpected validation message %q", got)
	}
	if got := Message(errors.New("boom")); got != "boom" {
		t.Errorf("unexpected plain message %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Network("request failed", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be reachable")
	}
}

func TestMessageHelpers(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FieldIsBlank("title"), "title empty"},
		{FieldIsRequired(), "required"},
		{FieldIsInvalid("image type"), "image type invalid"},
		{FieldIsTooLarge("image"), "image too large"},
		{Failed("upload"), "upload failed"},
		{NotExist("post"), "post does not exist"},
		{NotExist(), "does not exist"},
		{NotSupported("registration"), "registration not supported"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
