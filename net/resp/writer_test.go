package resp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/blogclient/ecode"
)

func TestWriterRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	WithStatusCode(w, http.StatusCreated, map[string]string{"title": "t"})

	var out struct {
		Title string `json:"title"`
	}
	if err := Decode(w.Code, w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w.Code != http.StatusCreated || out.Title != "t" {
		t.Fatalf("status=%d out=%+v", w.Code, out)
	}
}

func TestFailRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, http.StatusNotFound, 0, "Post not found")

	err := Decode(w.Code, w.Body.Bytes(), nil)
	if !ecode.IsKind(err, ecode.KindNotFound) || ecode.Message(err) != "Post not found" {
		t.Fatalf("err = %v", err)
	}

	w = httptest.NewRecorder()
	Fail(w, 0, 0, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}
