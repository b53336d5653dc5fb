package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/tracing"
)

type item struct {
	Title string `json:"title"`
}

func TestRequestAttachesBearerWhenPresent(t *testing.T) {
	var gotAuth, gotTrace string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTrace = r.Header.Get(tracing.HeaderKey)
		_, _ = io.WriteString(w, `{"code":200,"message":"ok","data":{"title":"hi"}}`)
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithTokenSource(TokenFunc(func(context.Context) (string, error) {
		return "tok", nil
	})))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out item
	ctx := tracing.SetTraceID(context.Background(), "trace-1")
	if err := c.Get(ctx, "/posts/1", nil, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Title != "hi" {
		t.Errorf("title = %q", out.Title)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotTrace != "trace-1" {
		t.Errorf("trace header = %q", gotTrace)
	}
}

func TestRequestAnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth, sawAuth = r.Header.Get("Authorization"), len(r.Header.Values("Authorization")) > 0
		_, _ = io.WriteString(w, `{"code":200,"data":null}`)
	}))
	defer srv.Close()

	for name, ts := range map[string]TokenSource{
		"nil source": nil,
		"empty":      TokenFunc(func(context.Context) (string, error) { return "", nil }),
		"error":      TokenFunc(func(context.Context) (string, error) { return "x", errors.New("no session") }),
	} {
		c, _ := New(srv.URL, WithTokenSource(ts))
		if err := c.Get(context.Background(), "/posts", nil, nil); err != nil {
			t.Fatalf("%s: Get: %v", name, err)
		}
		if sawAuth {
			t.Errorf("%s: unexpected Authorization %q", name, gotAuth)
		}
	}
}

func TestRequestQueryAndBody(t *testing.T) {
	var gotQuery url.Values
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = io.WriteString(w, `{"code":201,"data":{"title":"created"}}`)
	}))
	defer srv.Close()

	c, _ := New(srv.URL + "/")
	if err := c.Get(context.Background(), "posts", url.Values{"size": {"5"}}, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotQuery.Get("size") != "5" {
		t.Errorf("query = %v", gotQuery)
	}

	var out item
	if err := c.Post(context.Background(), "/posts", item{Title: "t"}, &out); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if gotBody != `{"title":"t"}` {
		t.Errorf("body = %s", gotBody)
	}
	if out.Title != "created" {
		t.Errorf("out = %+v", out)
	}
}

func TestRequestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"code":404,"message":"Post not found"}`)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"code":403,"message":"not yours"}`)
		case "/soft-missing":
			_, _ = io.WriteString(w, `{"code":404,"message":"User not found"}`)
		}
	}))
	defer srv.Close()
	c, _ := New(srv.URL)

	cases := []struct {
		path string
		kind ecode.Kind
		msg  string
	}{
		{"/missing", ecode.KindNotFound, "Post not found"},
		{"/forbidden", ecode.KindAPI, "not yours"},
		{"/soft-missing", ecode.KindNotFound, "User not found"},
	}
	for _, tc := range cases {
		err := c.Get(context.Background(), tc.path, nil, nil)
		if ecode.KindOf(err) != tc.kind {
			t.Errorf("%s: kind = %v, want %v", tc.path, ecode.KindOf(err), tc.kind)
		}
		if ecode.Message(err) != tc.msg {
			t.Errorf("%s: message = %q, want %q", tc.path, ecode.Message(err), tc.msg)
		}
	}
}

func TestRequestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, _ := New(base)
	err := c.Get(context.Background(), "/posts", nil, nil)
	if !errors.Is(err, ecode.ErrNetwork) {
		t.Fatalf("err = %v, want network", err)
	}
}

func TestNewRejectsBadBaseURL(t *testing.T) {
	if _, err := New("not a url"); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpload(t *testing.T) {
	var gotType, gotAuth string
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s", r.Method)
		}
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotLen = len(b)
		if r.URL.Query().Get("sig") == "bad" {
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithTokenSource(TokenFunc(func(context.Context) (string, error) { return "tok", nil })))
	if err := c.Upload(context.Background(), srv.URL+"/obj?sig=ok", "image/png", []byte("abcd")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if gotType != "image/png" || gotLen != 4 {
		t.Errorf("type=%q len=%d", gotType, gotLen)
	}
	if gotAuth != "" {
		t.Errorf("upload must not carry bearer, got %q", gotAuth)
	}

	err := c.Upload(context.Background(), srv.URL+"/obj?sig=bad", "image/png", []byte("abcd"))
	var e *ecode.Error
	if !errors.As(err, &e) || e.Kind != ecode.KindUpload || e.Status != http.StatusForbidden {
		t.Fatalf("err = %#v", err)
	}
	if e.Message != "upload failed: 403" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithBreaker(NewBreaker(BreakerConfig{MinRequests: 2, FailureRatio: 0.5, Timeout: time.Minute})))
	for i := 0; i < 2; i++ {
		if err := c.Get(context.Background(), "/posts", nil, nil); !errors.Is(err, ecode.ErrAPI) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
	err := c.Get(context.Background(), "/posts", nil, nil)
	if !errors.Is(err, ecode.ErrNetwork) {
		t.Fatalf("expected open breaker, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Errorf("server hits = %d, want 2", n)
	}
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithBreaker(NewBreaker(BreakerConfig{MinRequests: 1, FailureRatio: 0.1})))
	for i := 0; i < 5; i++ {
		if err := c.Get(context.Background(), "/x", nil, nil); !errors.Is(err, ecode.ErrNotFound) {
			t.Fatalf("call %d: err = %v", i, err)
		}
	}
}

func TestWithTokensCopiesClient(t *testing.T) {
	var auths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"code":200,"data":null}`)
	}))
	defer srv.Close()

	base, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	authed := base.WithTokens(TokenFunc(func(context.Context) (string, error) { return "tok", nil }))
	ctx := context.Background()
	if err := base.Get(ctx, "/a", nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := authed.Get(ctx, "/b", nil, nil); err != nil {
		t.Fatal(err)
	}
	if len(auths) != 2 || auths[0] != "" || auths[1] != "Bearer tok" {
		t.Fatalf("auths = %q", auths)
	}
	if authed.BaseURL() != base.BaseURL() {
		t.Fatal("copy changed the base url")
	}
}
