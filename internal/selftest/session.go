// Package selftest reconciles the two command dispatchers against each
// other. While a session captures, every command line runs twice: the
// routing table dispatches in shadow mode, where handlers record a
// frame and return untouched, then the legacy dispatcher runs live.
// Validate diffs the two frame streams; production behavior is always
// the legacy path's, so a divergence costs a report, never a session.
package selftest

import (
	"fmt"
	"log"

	"github.com/slatewm/slate/internal/match"
)

// Frame is one recorded handler entry: which handler, the criteria
// snapshot, and the arguments exactly as dispatched.
type Frame struct {
	Handler string         `json:"handler"`
	Match   match.Snapshot `json:"match"`
	Args    []*string      `json:"args"`
}

// Viewer launches the external diagnostic viewer on a report file.
type Viewer interface {
	Launch(path string) error
}

// Recorder persists a failure row for later inspection.
type Recorder interface {
	RecordFailure(reportID string, frameIndex int, reason, path string) error
}

// Notifier pushes a short failure note to an external channel.
type Notifier interface {
	Send(message string) error
}

// Session holds the capture state. It is owned by the update loop and
// never shared, so there is no locking.
type Session struct {
	capturing bool
	shadow    []Frame
	live      []Frame

	dir    string
	viewer Viewer
	rec    Recorder
	notify Notifier
	log    *log.Logger
}

// NewSession writes reports into dir. viewer, rec and notify may each
// be nil; a failure then skips that outlet.
func NewSession(dir string, viewer Viewer, rec Recorder, notify Notifier, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{dir: dir, viewer: viewer, rec: rec, notify: notify, log: logger}
}

// Enable starts capturing. It always clears both buffers, so enabling
// an already-capturing session leaves it empty.
func (s *Session) Enable() {
	s.capturing = true
	s.shadow = nil
	s.live = nil
}

// Disable stops capturing and releases retained frames.
func (s *Session) Disable() {
	s.capturing = false
	s.shadow = nil
	s.live = nil
}

// Capturing reports whether the session is recording frames.
func (s *Session) Capturing() bool { return s.capturing }

// ShadowTap returns the tap for the table dispatcher's pass. Handlers
// seeing it record their frame and return before any mutation.
func (s *Session) ShadowTap() *ShadowTap { return &ShadowTap{s: s} }

// LiveTap returns the tap for the legacy dispatcher's pass. Handlers
// record an equivalent frame and then execute normally.
func (s *Session) LiveTap() *LiveTap { return &LiveTap{s: s} }

type ShadowTap struct{ s *Session }

func (t *ShadowTap) Record(handler string, m *match.Match, args ...*string) bool {
	t.s.add(&t.s.shadow, handler, m, args)
	return true
}

type LiveTap struct{ s *Session }

func (t *LiveTap) Record(handler string, m *match.Match, args ...*string) bool {
	t.s.add(&t.s.live, handler, m, args)
	return false
}

// add appends a frame with the argument values copied out, so later
// mutation of the dispatched strings cannot rewrite history.
func (s *Session) add(buf *[]Frame, handler string, m *match.Match, args []*string) {
	if !s.capturing {
		return
	}
	copies := make([]*string, len(args))
	for i, a := range args {
		if a != nil {
			v := *a
			copies[i] = &v
		}
	}
	var snap match.Snapshot
	if m != nil {
		snap = m.Snapshot()
	}
	*buf = append(*buf, Frame{Handler: handler, Match: snap, Args: copies})
}

// Validate reconciles the buffers after one command line and drains
// them either way. It returns nil when the streams agree, else the
// report it emitted. The session keeps capturing.
func (s *Session) Validate() *Report {
	shadow, live := s.shadow, s.live
	s.shadow, s.live = nil, nil
	if !s.capturing {
		return nil
	}
	if len(shadow) != len(live) {
		reason := fmt.Sprintf("frame count mismatch: table recorded %d, legacy recorded %d",
			len(shadow), len(live))
		return s.fail(shadow, live, -1, reason)
	}
	for i := range shadow {
		if reason := frameDiff(shadow[i], live[i]); reason != "" {
			return s.fail(shadow, live, i, reason)
		}
	}
	return nil
}

// frameDiff names the first difference between two frames, "" if none.
func frameDiff(a, b Frame) string {
	if a.Handler != b.Handler {
		return fmt.Sprintf("handler: %s != %s", a.Handler, b.Handler)
	}
	if d := a.Match.Diff(b.Match); d != "" {
		return d
	}
	if len(a.Args) != len(b.Args) {
		return fmt.Sprintf("argument count: %d != %d", len(a.Args), len(b.Args))
	}
	for i := range a.Args {
		if !argEqual(a.Args[i], b.Args[i]) {
			return fmt.Sprintf("argument %d: %s != %s", i, argString(a.Args[i]), argString(b.Args[i]))
		}
	}
	return ""
}

func argEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func argString(p *string) string {
	if p == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%q", *p)
}
