package breaker

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := New(2, time.Minute)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		if err := b.Do(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: got %v", i, err)
		}
	}
	if b.State() != Open {
		t.Fatalf("state = %s, want open", b.State())
	}
	called := false
	if err := b.Do(func() error { called = true; return nil }); !errors.Is(err, ErrOpen) {
		t.Fatalf("got %v, want ErrOpen", err)
	}
	if called {
		t.Fatal("fn ran while open")
	}
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	now := time.Unix(1000, 0)
	b := New(1, time.Second)
	b.now = func() time.Time { return now }

	b.Failure()
	if b.Allow() {
		t.Fatal("allowed before cool-down")
	}

	now = now.Add(2 * time.Second)
	if !b.Allow() {
		t.Fatal("probe not admitted after cool-down")
	}
	if b.Allow() {
		t.Fatal("second probe admitted")
	}
	b.Success()
	if b.State() != Closed {
		t.Fatalf("state = %s, want closed", b.State())
	}
}

func TestBreakerFailedProbeReopens(t *testing.T) {
	now := time.Unix(1000, 0)
	b := New(3, time.Second)
	b.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		b.Failure()
	}
	now = now.Add(2 * time.Second)
	if !b.Allow() {
		t.Fatal("probe not admitted")
	}
	b.Failure()
	if b.State() != Open {
		t.Fatalf("state = %s, want open", b.State())
	}
	if b.Allow() {
		t.Fatal("allowed right after failed probe")
	}
}
