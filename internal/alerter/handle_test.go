package alerter

import (
	"io"
	"log"
	"testing"
	"time"
)

func quietLog() *log.Logger { return log.New(io.Discard, "", 0) }

func TestLaunchObservesCompletion(t *testing.T) {
	h := NewHandle("true", quietLog())
	exited := make(chan error, 1)
	h.OnExit(func(err error) { exited <- err })

	if err := h.Launch("ignored-report.json"); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	select {
	case err := <-exited:
		if err != nil {
			t.Fatalf("viewer exit error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("completion callback never arrived")
	}
	if h.Active() {
		t.Fatal("handle still active after the viewer exited")
	}
}

func TestLaunchReportsFailureStatus(t *testing.T) {
	h := NewHandle("false", quietLog())
	exited := make(chan error, 1)
	h.OnExit(func(err error) { exited <- err })

	if err := h.Launch("report.json"); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	select {
	case err := <-exited:
		if err == nil {
			t.Fatal("nonzero exit delivered a nil error")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("completion callback never arrived")
	}
}

func TestSecondLaunchIsSuppressed(t *testing.T) {
	h := NewHandle("sleep", quietLog())
	exits := make(chan error, 2)
	h.OnExit(func(err error) { exits <- err })

	if err := h.Launch("5"); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if !h.Active() {
		t.Fatal("viewer not active after launch")
	}
	if err := h.Launch("5"); err != nil {
		t.Fatalf("suppressed duplicate returned an error: %v", err)
	}

	h.Kill()
	select {
	case <-exits:
	case <-time.After(3 * time.Second):
		t.Fatal("killed viewer never reported completion")
	}
	select {
	case err := <-exits:
		t.Fatalf("a second viewer was spawned (exit %v)", err)
	case <-time.After(200 * time.Millisecond):
	}
	if h.Active() {
		t.Fatal("handle still active after kill")
	}
}

func TestLaunchUnknownCommand(t *testing.T) {
	h := NewHandle("/no/such/viewer-binary", quietLog())
	if err := h.Launch("report.json"); err == nil {
		t.Fatal("launching a missing binary succeeded")
	}
	if h.Active() {
		t.Fatal("failed launch left the handle active")
	}
}

func TestNotifierDisabledByEmptyURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		enabled bool
	}{
		{"empty", "", false},
		{"whitespace", "   ", false},
		{"configured", "slack://token@channel", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := NewNotifier(tc.url)
			if n.Enabled() != tc.enabled {
				t.Fatalf("Enabled() = %v, want %v", n.Enabled(), tc.enabled)
			}
		})
	}
}

func TestNotifierSendWhenDisabled(t *testing.T) {
	if err := NewNotifier("").Send("self-test failed"); err != nil {
		t.Fatalf("disabled notifier returned %v", err)
	}
	var n *Notifier
	if err := n.Send("self-test failed"); err != nil {
		t.Fatalf("nil notifier returned %v", err)
	}
}
