package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ncobase/blogclient/apitest"
	"github.com/ncobase/blogclient/cmd/blog/app"
	"github.com/ncobase/blogclient/ecode"
	"github.com/ncobase/blogclient/identity"
	"github.com/ncobase/blogclient/identity/store"
	"github.com/ncobase/blogclient/logging/logger"
	"github.com/ncobase/blogclient/net/client"
	"github.com/ncobase/blogclient/service"
	"github.com/ncobase/blogclient/session"
	"github.com/ncobase/blogclient/structs"
	"github.com/ncobase/blogclient/validator"
)

// cli runs commands against a fake API. The token store outlives each
// invocation, like the session file between processes.
type cli struct {
	t     *testing.T
	api   *apitest.Server
	store store.TokenStore
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	api := apitest.New(t)
	api.AddUser(apitest.Account{Username: "alice", Password: "password1", Name: "Alice", Email: "alice@example.com"})
	api.AddUser(apitest.Account{Username: "bob", Password: "temporary", Email: "bob@example.com", Temporary: true})
	return &cli{t: t, api: api, store: store.NewMemory()}
}

func (c *cli) factory(context.Context, string, string) (*app.App, func(), error) {
	base, err := client.New(c.api.URL)
	if err != nil {
		return nil, nil, err
	}
	rules := validator.ImageRules{}
	auth := identity.New(c.api.Provider, c.store, identity.WithRegistrar(service.New(base, rules).Users))
	api := service.New(base.WithTokens(auth), rules)
	return app.NewApp(nil, logger.StdLogger(), auth, api, session.NewManager(auth)), func() {}, nil
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCmd(c.factory)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	if err != nil {
		c.t.Fatalf("blog %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestWhoamiAnonymous(t *testing.T) {
	c := newCLI(t)
	if out := c.mustRun("whoami"); !strings.Contains(out, "Not signed in") {
		t.Fatalf("out = %q", out)
	}
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("login", "-u", "alice", "-p", "password1")
	if !strings.Contains(out, "Signed in as Alice") {
		t.Fatalf("login out = %q", out)
	}
	out = c.mustRun("whoami")
	if !strings.Contains(out, "Alice (alice)") || !strings.Contains(out, "alice@example.com") {
		t.Fatalf("whoami out = %q", out)
	}
	c.mustRun("logout")
	if out := c.mustRun("whoami"); !strings.Contains(out, "Not signed in") {
		t.Fatalf("after logout = %q", out)
	}
}

func TestLoginBadPassword(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "login", "-u", "alice", "-p", "wrong")
	if !ecode.IsKind(err, ecode.KindAuth) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoginChallengePrompts(t *testing.T) {
	c := newCLI(t)
	out, err := c.run("bob\ntemporary\nnew-password-1\nBob Builder\n", "login")
	if err != nil {
		t.Fatalf("login: %v\n%s", err, out)
	}
	if !strings.Contains(out, "A new password is required.") || !strings.Contains(out, "Signed in as Bob Builder") {
		t.Fatalf("out = %q", out)
	}
	if _, err := c.run("", "login", "-u", "bob", "-p", "new-password-1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestLoginMissingInput(t *testing.T) {
	c := newCLI(t)
	_, err := c.run("", "login", "-u", "alice")
	if !ecode.IsKind(err, ecode.KindValidation) {
		t.Fatalf("err = %v", err)
	}
}

func TestGatedCommandsNeedSession(t *testing.T) {
	c := newCLI(t)
	for _, args := range [][]string{
		{"posts", "mine"},
		{"posts", "create", "-t", "x", "--content", "y"},
		{"profile", "show"},
		{"comments", "add", "abc", "--content", "hi"},
	} {
		if _, err := c.run("", args...); !errors.Is(err, errSignInRequired) {
			t.Errorf("blog %s: err = %v", strings.Join(args, " "), err)
		}
	}
	if c.api.TotalHits() != 0 {
		t.Fatalf("gated commands reached the API %d times", c.api.TotalHits())
	}
}

func TestPostsLifecycle(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "-u", "alice", "-p", "password1")

	dir := t.TempDir()
	md := filepath.Join(dir, "post.md")
	if err := os.WriteFile(md, []byte("Some *markdown* words"), 0o600); err != nil {
		t.Fatal(err)
	}
	thumb := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(thumb, apitest.PNGFile("cover.png").Data, 0o600); err != nil {
		t.Fatal(err)
	}

	out := c.mustRun("posts", "create", "-t", "Hello World", "-f", md, "--thumbnail", thumb)
	id := strings.TrimSpace(strings.TrimPrefix(out, "Created post "))
	if id == "" || strings.Contains(id, " ") {
		t.Fatalf("create out = %q", out)
	}

	if out := c.mustRun("posts", "list"); !strings.Contains(out, "Hello World") || !strings.Contains(out, id) {
		t.Fatalf("list out = %q", out)
	}
	out = c.mustRun("posts", "get", id)
	if !strings.Contains(out, "by Alice") || !strings.Contains(out, "thumbnail: ") || !strings.Contains(out, "No comments yet.") {
		t.Fatalf("get out = %q", out)
	}

	saveDir := filepath.Join(dir, "saved")
	c.mustRun("posts", "get", id, "--save", saveDir)
	data, err := os.ReadFile(filepath.Join(saveDir, "hello-world.md"))
	if err != nil || !strings.HasPrefix(string(data), "# Hello World") {
		t.Fatalf("saved = %q (%v)", data, err)
	}

	c.mustRun("posts", "edit", id, "--status", structs.PostStatusDraft)
	if out := c.mustRun("posts", "mine"); !strings.Contains(out, "0 published, 1 drafts") {
		t.Fatalf("mine out = %q", out)
	}
	if out := c.mustRun("posts", "list"); !strings.Contains(out, "No posts yet.") {
		t.Fatalf("drafts should not be listed: %q", out)
	}

	c.mustRun("posts", "delete", id)
	if _, err := c.run("", "posts", "get", id); !ecode.IsKind(err, ecode.KindNotFound) {
		t.Fatalf("get deleted: %v", err)
	}
}

func TestPostsCreateValidation(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "-u", "alice", "-p", "password1")
	before := c.api.TotalHits()
	out, err := c.run("", "posts", "create", "-t", " ", "--content", "")
	if !ecode.IsKind(err, ecode.KindValidation) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out, "title:") || !strings.Contains(out, "content:") {
		t.Fatalf("field messages missing: %q", out)
	}
	if c.api.TotalHits() != before {
		t.Fatal("invalid post reached the API")
	}
}

func TestPostsListPaging(t *testing.T) {
	c := newCLI(t)
	for i := 0; i < 3; i++ {
		c.api.SeedPost("alice", "post", "body")
	}
	out := c.mustRun("posts", "list", "-n", "2")
	if !strings.Contains(out, "--token 2") {
		t.Fatalf("out = %q", out)
	}
	out = c.mustRun("posts", "list", "-n", "2", "--token", "2")
	if strings.Contains(out, "More:") || strings.Count(out, "post") < 1 {
		t.Fatalf("second page = %q", out)
	}
}

func TestComments(t *testing.T) {
	c := newCLI(t)
	post := c.api.SeedPost("alice", "Topic", "body")
	c.mustRun("login", "-u", "alice", "-p", "password1")

	out := c.mustRun("comments", "add", post.ID(), "--content", "first!")
	cid := strings.TrimSpace(strings.TrimPrefix(out, "Added comment "))
	if out := c.mustRun("comments", "list", post.PK); !strings.Contains(out, "first!") || !strings.Contains(out, cid) {
		t.Fatalf("list out = %q", out)
	}
	c.mustRun("comments", "edit", post.ID(), cid, "--content", "edited")
	if out := c.mustRun("comments", "list", post.ID()); !strings.Contains(out, "edited") {
		t.Fatalf("after edit = %q", out)
	}
	c.mustRun("comments", "delete", post.ID(), cid)
	if out := c.mustRun("comments", "list", post.ID()); !strings.Contains(out, "No comments yet.") {
		t.Fatalf("after delete = %q", out)
	}
}

func TestProfile(t *testing.T) {
	c := newCLI(t)
	c.mustRun("login", "-u", "alice", "-p", "password1")
	if out := c.mustRun("profile", "show"); !strings.Contains(out, "alice@example.com") || !strings.Contains(out, "role:    USER") {
		t.Fatalf("show out = %q", out)
	}
	img := filepath.Join(t.TempDir(), "me.png")
	if err := os.WriteFile(img, apitest.PNGFile("me.png").Data, 0o600); err != nil {
		t.Fatal(err)
	}
	if out := c.mustRun("profile", "avatar", img); !strings.Contains(out, "Avatar updated") {
		t.Fatalf("avatar out = %q", out)
	}
	if out := c.mustRun("profile", "show"); !strings.Contains(out, "avatar:") {
		t.Fatalf("show after avatar = %q", out)
	}

	txt := filepath.Join(t.TempDir(), "me.txt")
	if err := os.WriteFile(txt, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := c.run("", "profile", "avatar", txt); !ecode.IsKind(err, ecode.KindValidation) {
		t.Fatalf("text avatar: %v", err)
	}
}

func TestRegisterBackend(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("register", "--email", "new@example.com", "-p", "password9", "--name", "Newbie")
	if !strings.Contains(out, "Account created") {
		t.Fatalf("out = %q", out)
	}
	if out := c.mustRun("login", "-u", "new@example.com", "-p", "password9"); !strings.Contains(out, "Newbie") {
		t.Fatalf("login out = %q", out)
	}
	if _, err := c.run("", "confirm", "--email", "new@example.com", "--code", "123456"); !ecode.IsKind(err, ecode.KindValidation) {
		t.Fatalf("confirm under backend: %v", err)
	}
}

func TestVersionSkipsApp(t *testing.T) {
	cmd := newRootCmd(func(context.Context, string, string) (*app.App, func(), error) {
		return nil, nil, errors.New("no config")
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--json"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), `"version"`) {
		t.Fatalf("out = %q", out.String())
	}
}
