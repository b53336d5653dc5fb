package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ncobase/blogclient/structs"
)

type fakeChecker struct {
	mu        sync.Mutex
	user      *structs.Session
	checks    int
	logoutErr error
	logouts   int
	block     chan struct{}
}

func (f *fakeChecker) CheckSession(context.Context) *structs.Session {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checks++
	return f.user.Clone()
}

func (f *fakeChecker) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logouts++
	f.user = nil
	return f.logoutErr
}

func TestInitialStateIsLoading(t *testing.T) {
	m := NewManager(&fakeChecker{})
	s := m.State()
	if !s.Loading || s.User != nil {
		t.Fatalf("state = %+v", s)
	}
	if m.Gate() != Pending {
		t.Fatalf("gate = %v", m.Gate())
	}
}

func TestInitWithoutSession(t *testing.T) {
	m := NewManager(&fakeChecker{})
	s := m.Init(context.Background())
	if s.Loading || s.User != nil {
		t.Fatalf("state = %+v", s)
	}
	if m.Gate() != Redirect {
		t.Fatalf("gate = %v", m.Gate())
	}
}

func TestInitRunsOnce(t *testing.T) {
	f := &fakeChecker{user: &structs.Session{Username: "alice"}}
	m := NewManager(f)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Init(context.Background())
		}()
	}
	wg.Wait()
	if f.checks != 1 {
		t.Fatalf("checks = %d", f.checks)
	}
	if m.Gate() != Allow || m.User().Username != "alice" {
		t.Fatalf("state = %+v", m.State())
	}
}

func TestLoadingWhileCheckInFlight(t *testing.T) {
	f := &fakeChecker{user: &structs.Session{Username: "alice"}, block: make(chan struct{})}
	m := NewManager(f)
	done := make(chan struct{})
	go func() {
		m.Init(context.Background())
		close(done)
	}()
	if s := m.State(); !s.Loading || s.User != nil {
		t.Fatalf("state during check = %+v", s)
	}
	close(f.block)
	<-done
	if s := m.State(); s.Loading || s.User == nil {
		t.Fatalf("state after check = %+v", s)
	}
}

func TestRefreshPicksUpLogin(t *testing.T) {
	f := &fakeChecker{}
	m := NewManager(f)
	m.Init(context.Background())

	f.mu.Lock()
	f.user = &structs.Session{Username: "bob"}
	f.mu.Unlock()

	s := m.Refresh(context.Background())
	if s.User == nil || s.User.Username != "bob" {
		t.Fatalf("state = %+v", s)
	}
}

func TestLogoutClearsUserRegardless(t *testing.T) {
	for _, providerErr := range []error{nil, errors.New("offline")} {
		f := &fakeChecker{user: &structs.Session{Username: "alice"}, logoutErr: providerErr}
		m := NewManager(f)
		m.Init(context.Background())

		err := m.Logout(context.Background())
		if !errors.Is(err, providerErr) {
			t.Fatalf("err = %v, want %v", err, providerErr)
		}
		if s := m.State(); s.User != nil || s.Loading {
			t.Fatalf("state = %+v", s)
		}
	}

	// logout before init settles loading too
	m := NewManager(&fakeChecker{})
	_ = m.Logout(context.Background())
	if s := m.State(); s.User != nil || s.Loading {
		t.Fatalf("state = %+v", s)
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	m := NewManager(&fakeChecker{user: &structs.Session{Username: "alice", Groups: []string{"ADMIN"}}})
	m.Init(context.Background())

	s := m.State()
	s.User.Username = "mallory"
	s.User.Groups[0] = "NONE"

	again := m.State()
	if again.User.Username != "alice" || !again.User.IsAdmin() {
		t.Fatalf("snapshot leaked: %+v", again.User)
	}
}

func TestSubscribe(t *testing.T) {
	f := &fakeChecker{user: &structs.Session{Username: "alice"}}
	m := NewManager(f)

	var got []State
	unsubscribe := m.Subscribe(func(s State) { got = append(got, s) })

	m.Init(context.Background())
	_ = m.Logout(context.Background())
	unsubscribe()
	unsubscribe()
	m.Refresh(context.Background())

	if len(got) != 2 {
		t.Fatalf("notifications = %d", len(got))
	}
	if got[0].User == nil || got[0].Loading {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].User != nil {
		t.Errorf("second = %+v", got[1])
	}
}
