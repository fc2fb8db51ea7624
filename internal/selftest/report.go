package selftest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Report is the JSON document a failed validation leaves behind: both
// frame streams plus the first divergence.
type Report struct {
	ID         string    `json:"id"`
	Time       time.Time `json:"time"`
	FrameIndex int       `json:"frame_index"`
	Reason     string    `json:"reason"`
	Table      []Frame   `json:"table_frames"`
	Legacy     []Frame   `json:"legacy_frames"`

	// Path is where the report was written, empty when writing failed.
	Path string `json:"-"`
}

// fail emits the report and fans it out to the configured outlets.
// Every outlet error is logged and swallowed: the self-test observes
// the session, it never takes it down.
func (s *Session) fail(shadow, live []Frame, index int, reason string) *Report {
	rep := &Report{
		ID:         uuid.NewString(),
		Time:       time.Now().UTC(),
		FrameIndex: index,
		Reason:     reason,
		Table:      shadow,
		Legacy:     live,
	}
	s.log.Printf("error: dispatcher self-test failed at frame %d: %s", index, reason)

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		s.log.Printf("warn: self-test report encode: %v", err)
		return rep
	}
	path := filepath.Join(s.dir, "selftest-"+rep.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Printf("warn: self-test report write: %v", err)
	} else {
		rep.Path = path
	}

	if s.viewer != nil && rep.Path != "" {
		if err := s.viewer.Launch(rep.Path); err != nil {
			s.log.Printf("warn: self-test viewer: %v", err)
		}
	}
	if s.rec != nil {
		if err := s.rec.RecordFailure(rep.ID, rep.FrameIndex, rep.Reason, rep.Path); err != nil {
			s.log.Printf("warn: self-test journal: %v", err)
		}
	}
	if s.notify != nil {
		msg := fmt.Sprintf("slate self-test failed at frame %d: %s", rep.FrameIndex, rep.Reason)
		if err := s.notify.Send(msg); err != nil {
			s.log.Printf("warn: self-test notify: %v", err)
		}
	}
	return rep
}

// Load reads a report file back, for the viewer.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", filepath.Base(path), err)
	}
	rep.Path = path
	return &rep, nil
}
