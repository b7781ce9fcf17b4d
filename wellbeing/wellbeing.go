// Package wellbeing keeps the daily self-report journal. Entries live in a
// local file only; nothing here talks to the backend.
package wellbeing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eros-saude/eros-go/apierr"
)

// Mood is the three-point mood scale.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
)

// Entry is one day's self report.
type Entry struct {
	Date         string  `json:"date"`
	Mood         Mood    `json:"mood"`
	Energy       int     `json:"energy"`
	SleepHours   float64 `json:"sleepHours"`
	WaterGlasses int     `json:"waterGlasses"`
	Notes        string  `json:"notes,omitempty"`
}

// Journal appends validated entries to a JSON file under the storage
// directory. Writes rewrite the whole file; the journal stays small.
type Journal struct {
	mu      sync.Mutex
	path    string
	log     zerolog.Logger
	entries []Entry
}

func NewJournal(dir string, log zerolog.Logger) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	j := &Journal{path: filepath.Join(dir, "wellbeing.json"), log: log}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *Journal) load() error {
	raw, err := os.ReadFile(j.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	if jsonErr := json.Unmarshal(raw, &j.entries); jsonErr != nil {
		// A corrupt journal is abandoned rather than blocking new entries.
		j.log.Warn().Err(jsonErr).Str("path", j.path).Msg("discarding unreadable journal")
		j.entries = nil
	}
	return nil
}

// Log validates and appends one entry.
func (j *Journal) Log(e Entry) error {
	if e.Date == "" {
		return apierr.NewValidation("date", "is required")
	}
	switch e.Mood {
	case MoodHappy, MoodNeutral, MoodSad:
	default:
		return apierr.NewValidation("mood", "must be happy, neutral or sad")
	}
	if e.Energy < 1 || e.Energy > 10 {
		return apierr.NewValidation("energy", "must be between 1 and 10")
	}
	if e.SleepHours < 0 || e.SleepHours > 24 {
		return apierr.NewValidation("sleepHours", "must be between 0 and 24")
	}
	if e.WaterGlasses < 0 {
		return apierr.NewValidation("waterGlasses", "cannot be negative")
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	if err := j.flush(); err != nil {
		j.entries = j.entries[:len(j.entries)-1]
		return err
	}
	j.log.Debug().Str("date", e.Date).Str("mood", string(e.Mood)).Msg("wellbeing entry logged")
	return nil
}

func (j *Journal) flush() error {
	raw, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}
	if err := os.WriteFile(j.path, raw, 0o600); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Entries returns all entries, oldest first.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry(nil), j.entries...)
}

// Latest returns the most recent entry.
func (j *Journal) Latest() (Entry, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.entries) == 0 {
		return Entry{}, false
	}
	return j.entries[len(j.entries)-1], true
}
