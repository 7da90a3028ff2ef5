// Package regstore holds the regulatory knowledge base: per-law metadata,
// key provisions, and mandatory provisions, persisted in SQLite and served
// to readers as immutable snapshots.
package regstore

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Regulation is one law's knowledge-base entry.
type Regulation struct {
	LawID               string    `json:"law_id"`
	Jurisdiction        string    `json:"jurisdiction"`
	RegulationType      string    `json:"regulation_type"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	KeyProvisions       []string  `json:"key_provisions"`
	MandatoryProvisions []string  `json:"mandatory_provisions"`
	MaxPenalty          string    `json:"max_penalty"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Snapshot is an immutable view of the knowledge base. Readers keep using
// the snapshot they were handed; Reload produces a new one rather than
// mutating shared state.
type Snapshot struct {
	byLaw          map[string]Regulation
	byJurisdiction map[string][]string
}

func (s *Snapshot) Law(lawID string) (Regulation, bool) {
	r, ok := s.byLaw[lawID]
	return r, ok
}

func (s *Snapshot) LawsFor(jurisdiction string) []Regulation {
	ids := s.byJurisdiction[jurisdiction]
	out := make([]Regulation, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byLaw[id])
	}
	return out
}

func (s *Snapshot) All() []Regulation {
	out := make([]Regulation, 0, len(s.byLaw))
	for _, r := range s.byLaw {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LawID < out[j].LawID })
	return out
}

// Search filters the snapshot the way the regulation service queries run:
// jurisdiction matches exactly, regulation type by substring, and the search
// term against name, description, and key provisions. Empty filters are
// skipped; all matching is case-insensitive.
func (s *Snapshot) Search(jurisdiction, regulationType, term string) []Regulation {
	jurisdiction = strings.ToLower(strings.TrimSpace(jurisdiction))
	regulationType = strings.ToLower(strings.TrimSpace(regulationType))
	term = strings.ToLower(strings.TrimSpace(term))

	var out []Regulation
	for _, r := range s.All() {
		if jurisdiction != "" && strings.ToLower(r.Jurisdiction) != jurisdiction {
			continue
		}
		if regulationType != "" && !strings.Contains(strings.ToLower(r.RegulationType), regulationType) {
			continue
		}
		if term != "" && !matchesTerm(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesTerm(r Regulation, term string) bool {
	if strings.Contains(strings.ToLower(r.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), term) {
		return true
	}
	for _, p := range r.KeyProvisions {
		if strings.Contains(strings.ToLower(p), term) {
			return true
		}
	}
	return false
}

func (s *Snapshot) Jurisdictions() []string {
	out := make([]string, 0, len(s.byJurisdiction))
	for j := range s.byJurisdiction {
		out = append(out, j)
	}
	sort.Strings(out)
	return out
}

// Store persists regulations in SQLite and publishes snapshots.
type Store struct {
	db *sqlx.DB

	mu   sync.RWMutex
	snap *Snapshot
}

const schema = `
CREATE TABLE IF NOT EXISTS regulations (
	law_id               TEXT PRIMARY KEY,
	jurisdiction         TEXT NOT NULL,
	regulation_type      TEXT NOT NULL DEFAULT '',
	name                 TEXT NOT NULL,
	description          TEXT NOT NULL DEFAULT '',
	key_provisions       TEXT NOT NULL DEFAULT '[]',
	mandatory_provisions TEXT NOT NULL DEFAULT '[]',
	max_penalty          TEXT NOT NULL DEFAULT '',
	updated_at           TEXT NOT NULL
);
`

// New opens (creating if needed) the knowledge base at dbPath, seeds any
// missing built-in regulations, and loads the first snapshot.
func New(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.seedMissing(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed regulations: %w", err)
	}
	if err := s.Reload(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load regulations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot returns the current immutable view.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Reload rebuilds the snapshot from SQLite and swaps it in. Existing readers
// keep their old snapshot.
func (s *Store) Reload() error {
	rows, err := s.db.Query("SELECT law_id, jurisdiction, regulation_type, name, description, key_provisions, mandatory_provisions, max_penalty, updated_at FROM regulations")
	if err != nil {
		return err
	}
	defer rows.Close()

	snap := &Snapshot{
		byLaw:          map[string]Regulation{},
		byJurisdiction: map[string][]string{},
	}
	for rows.Next() {
		var r Regulation
		var keyJSON, mandatoryJSON, updatedAt string
		if err := rows.Scan(&r.LawID, &r.Jurisdiction, &r.RegulationType, &r.Name, &r.Description, &keyJSON, &mandatoryJSON, &r.MaxPenalty, &updatedAt); err != nil {
			return err
		}
		_ = json.Unmarshal([]byte(keyJSON), &r.KeyProvisions)
		_ = json.Unmarshal([]byte(mandatoryJSON), &r.MandatoryProvisions)
		r.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		snap.byLaw[r.LawID] = r
		snap.byJurisdiction[r.Jurisdiction] = append(snap.byJurisdiction[r.Jurisdiction], r.LawID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, ids := range snap.byJurisdiction {
		sort.Strings(ids)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return nil
}

// Upsert writes one regulation and refreshes the snapshot.
func (s *Store) Upsert(r Regulation) error {
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO regulations (law_id, jurisdiction, regulation_type, name, description, key_provisions, mandatory_provisions, max_penalty, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LawID,
		r.Jurisdiction,
		r.RegulationType,
		r.Name,
		r.Description,
		marshalJSON(r.KeyProvisions),
		marshalJSON(r.MandatoryProvisions),
		r.MaxPenalty,
		r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}
	return s.Reload()
}

func (s *Store) seedMissing() error {
	for _, r := range seedRegulations {
		_, err := s.db.Exec(`INSERT OR IGNORE INTO regulations (law_id, jurisdiction, regulation_type, name, description, key_provisions, mandatory_provisions, max_penalty, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.LawID,
			r.Jurisdiction,
			r.RegulationType,
			r.Name,
			r.Description,
			marshalJSON(r.KeyProvisions),
			marshalJSON(r.MandatoryProvisions),
			r.MaxPenalty,
			time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func marshalJSON(v any) string {
	if v == nil {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}
