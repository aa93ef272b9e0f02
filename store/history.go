// Package store persists a record of every real purge run so an operator
// can see later what was removed and why.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Record is one completed purge run.
type Record struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	RunningRelease string    `json:"runningRelease"`
	KeepCount      int       `json:"keepCount"`
	Kept           []string  `json:"kept"`
	Purged         []string  `json:"purged"`
	// ExitStatus is apt-get's exit code, zero on success.
	ExitStatus int `json:"exitStatus"`
}

// HistoryStore defines the interface for purge-run persistence.
type HistoryStore interface {
	// Append stores a record and returns it with its generated ID set.
	Append(rec Record) (Record, error)
	// List returns all records, newest first.
	List() ([]Record, error)
}

type fileHistoryStore struct {
	fs  afero.Fs
	dir string
}

// NewFileHistoryStore returns a HistoryStore writing one JSON file per run
// under dir. The directory is created on first append.
func NewFileHistoryStore(fs afero.Fs, dir string) HistoryStore {
	return &fileHistoryStore{fs: fs, dir: dir}
}

func (s *fileHistoryStore) Append(rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return Record{}, fmt.Errorf("create history directory: %w", err)
	}
	short := rec.ID
	if len(short) > 8 {
		short = short[:8]
	}
	name := fmt.Sprintf("purge_%s_%s.json", rec.Timestamp.Format("2006-01-02_15-04-05"), short)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Record{}, fmt.Errorf("encode history record: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return Record{}, fmt.Errorf("write history record: %w", err)
	}
	return rec, nil
}

func (s *fileHistoryStore) List() ([]Record, error) {
	exists, err := afero.DirExists(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("check history directory: %w", err)
	}
	if !exists {
		return nil, nil
	}
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("read history directory: %w", err)
	}
	var records []Record
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read history record %s: %w", e.Name(), err)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			// a corrupt record should not hide the rest of the history
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}
