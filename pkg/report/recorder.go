package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

const (
	DefaultFile     = "processed-users.csv"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Header is the fixed column order of the processed-users report.
var Header = []string{"email", "account_id", "processed_at", "group_id", "last_seen", "added_to_org"}

// Entry is an account that was removed from the group.
type Entry struct {
	Email       string
	AccountID   string
	ProcessedAt time.Time
	GroupID     string
	// LastSeen and AddedToOrg keep the raw roster values.
	LastSeen   string
	AddedToOrg string
}

func (e Entry) row() []string {
	return []string{
		e.Email,
		e.AccountID,
		e.ProcessedAt.Format(TimestampLayout),
		e.GroupID,
		e.LastSeen,
		e.AddedToOrg,
	}
}

// Recorder accumulates successful removals until the run ends.
type Recorder struct {
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Add(entry Entry) {
	r.entries = append(r.entries, entry)
}

func (r *Recorder) Len() int {
	return len(r.entries)
}

func (r *Recorder) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// WriteFile writes the report to path. Nothing is created when no entry was
// recorded, in which case it returns false.
func (r *Recorder) WriteFile(path string) (bool, error) {
	if len(r.entries) == 0 {
		return false, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return false, fmt.Errorf("can't create report %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	_ = writer.Write(Header)
	for _, entry := range r.entries {
		_ = writer.Write(entry.row())
	}
	writer.Flush()

	if err := writer.Error(); err != nil {
		_ = file.Close()
		return false, fmt.Errorf("can't write report %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return false, fmt.Errorf("can't close report %s: %w", path, err)
	}

	return true, nil
}
