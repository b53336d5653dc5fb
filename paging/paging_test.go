package paging

import (
	"context"
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNormalizeParams(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultSize},
		{-5, DefaultSize},
		{10, 10},
		{MaxSize + 1, MaxSize},
	}
	for _, tt := range tests {
		if got := NormalizeParams(Params{Size: tt.in}).Size; got != tt.want {
			t.Errorf("NormalizeParams(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParamsValues(t *testing.T) {
	v, err := Params{Size: 5}.Values()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.Encode(); got != "size=5" {
		t.Errorf("expected size only, got %q", got)
	}

	v, err = Params{Size: 5, NextToken: "abc=="}.Values()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.Encode(); got != "nextToken=abc%3D%3D&size=5" {
		t.Errorf("unexpected encoding %q", got)
	}
}

func TestNormalizeInvariants(t *testing.T) {
	tests := []struct {
		name      string
		page      *Page[int]
		requested int
		wantLen   int
		wantMore  bool
		wantToken bool
	}{
		{"nil page", nil, 10, 0, false, false},
		{"truncates oversize result", &Page[int]{Result: []int{1, 2, 3, 4}, HasMore: true, NextToken: strPtr("t")}, 3, 3, true, true},
		{"no more drops token", &Page[int]{Result: []int{1}, HasMore: false, NextToken: strPtr("t")}, 10, 1, false, false},
		{"empty token means end", &Page[int]{Result: []int{1}, HasMore: true, NextToken: strPtr("")}, 10, 1, false, false},
		{"more without token means end", &Page[int]{Result: []int{1}, HasMore: true}, 10, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Normalize(tt.page, tt.requested)
			if len(p.Result) != tt.wantLen {
				t.Errorf("expected %d items, got %d", tt.wantLen, len(p.Result))
			}
			if len(p.Result) > tt.requested {
				t.Errorf("result longer than requested size")
			}
			if p.HasMore != tt.wantMore {
				t.Errorf("expected hasMore %v, got %v", tt.wantMore, p.HasMore)
			}
			if (p.NextToken != nil) != tt.wantToken {
				t.Errorf("expected token presence %v, got %v", tt.wantToken, p.NextToken)
			}
			if !p.HasMore && p.NextToken != nil {
				t.Errorf("hasMore=false must imply nil token")
			}
		})
	}
}

func TestCollect(t *testing.T) {
	pages := map[string]*Page[int]{
		"":   {Result: []int{1, 2}, HasMore: true, NextToken: strPtr("p2")},
		"p2": {Result: []int{3, 4}, HasMore: true, NextToken: strPtr("p3")},
		"p3": {Result: []int{5}, HasMore: false},
	}
	fetch := func(_ context.Context, p Params) (*Page[int], error) {
		return pages[p.NextToken], nil
	}

	items, err := Collect(context.Background(), Params{Size: 2}, 0, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("expected 5 items, got %v", items)
	}

	items, err = Collect(context.Background(), Params{Size: 2}, 3, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected limit to cap items, got %v", items)
	}
}

func TestCollectStopsOnRepeatedToken(t *testing.T) {
	calls := 0
	fetch := func(_ context.Context, p Params) (*Page[int], error) {
		calls++
		return &Page[int]{Result: []int{calls}, HasMore: true, NextToken: strPtr("same")}, nil
	}
	items, err := Collect(context.Background(), Params{}, 0, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 || len(items) != 2 {
		t.Errorf("expected two fetches before loop detection, got %d calls", calls)
	}
}

func TestCollectPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Collect(context.Background(), Params{}, 0, func(context.Context, Params) (*Page[int], error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}
