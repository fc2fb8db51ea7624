// Package journal persists executed commands and dispatcher self-test
// failures to a sqlite database.
package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal is the on-disk record of what the command layer did.
type Journal struct {
	db *sql.DB
}

// Open opens the journal at path, creating it and bringing its schema up
// to date if needed.
func Open(path string) (*Journal, error) {
	if err := applyMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return &Journal{db: db}, nil
}

func dsn(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}

func (j *Journal) Close() error { return j.db.Close() }

// Entry is one journaled command invocation.
type Entry struct {
	ID      int64
	Time    time.Time
	Verb    string
	Args    []string
	Success bool
	Error   string
}

// RecordCommand appends one executed command with its outcome.
func (j *Journal) RecordCommand(verb string, args []string, success bool, cmdErr string) error {
	blob, err := json.Marshal(args)
	if err != nil {
		return err
	}
	_, err = j.db.Exec(`
	INSERT INTO commands(ts, verb, args, success, error)
	VALUES(?, ?, ?, ?, ?)
	`, now(), verb, string(blob), success, cmdErr)
	return err
}

// Recent returns up to n command entries, newest first.
func (j *Journal) Recent(n int) ([]Entry, error) {
	rows, err := j.db.Query(`SELECT id, ts, verb, args, success, error FROM commands ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var blob string
		if err := rows.Scan(&e.ID, &e.Time, &e.Verb, &blob, &e.Success, &e.Error); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(blob), &e.Args); err != nil {
			return nil, fmt.Errorf("decode args for entry %d: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Failure is one journaled dispatcher self-test failure.
type Failure struct {
	ID         int64
	Time       time.Time
	ReportID   string
	FrameIndex int
	Reason     string
	ReportPath string
}

// RecordFailure appends one dispatcher self-test failure. The signature
// matches the recorder seam of the self-test session.
func (j *Journal) RecordFailure(reportID string, frameIndex int, reason, path string) error {
	_, err := j.db.Exec(`
	INSERT INTO selftest_failures(ts, report_id, frame_index, reason, report_path)
	VALUES(?, ?, ?, ?, ?)
	`, now(), reportID, frameIndex, reason, path)
	return err
}

// Failures returns up to n self-test failures, newest first.
func (j *Journal) Failures(n int) ([]Failure, error) {
	rows, err := j.db.Query(`SELECT id, ts, report_id, frame_index, reason, report_path FROM selftest_failures ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.ID, &f.Time, &f.ReportID, &f.FrameIndex, &f.Reason, &f.ReportPath); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// now is UTC truncated to seconds, matching sqlite's own resolution.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
