// Package storage owns the on-disk credential database: loading it (with a
// one-shot migration from the legacy text format), saving it atomically, and
// all index-based mutations. It is the single gateway between in-memory
// records and persisted state; no other package touches the file.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"passbook/internal/crypto"
	"passbook/internal/models"
)

// Store holds the full record collection in memory for one session and
// persists every mutation back to the data file immediately.
type Store struct {
	// path is the current-format data file, resolved to absolute.
	path string
	// legacyPath is the migration source: the data file with a .txt extension.
	legacyPath string
	// backupPath is where the legacy file is renamed after migration.
	backupPath string

	cipher  *crypto.Cipher
	log     *zap.Logger
	records []models.Record
}

// UpdateFields carries the mutable fields for Update. An empty field keeps
// the record's current value.
type UpdateFields struct {
	Site     string
	Username string
	// Password, when non-empty, causes the hash and encrypted forms to be
	// recomputed through the cipher.
	Password string
}

// New constructs a Store for the given data file. cipher is used to seal
// passwords during legacy migration and updates.
func New(path string, cipher *crypto.Cipher, log *zap.Logger) *Store {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	return &Store{
		path:       path,
		legacyPath: base + ".txt",
		backupPath: base + ".bak",
		cipher:     cipher,
		log:        log,
	}
}

// Load reads the database into memory. Exactly one source is used, resolved
// once: the current-format file if it exists, otherwise the legacy text file
// (which is migrated, persisted in the current format, and renamed to its
// backup name so migration can never fire twice), otherwise an empty
// database is created and persisted.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		records, err := decodeRecords(data)
		if err != nil {
			return fmt.Errorf("parse database file %s: %w", s.path, err)
		}
		s.records = records
		return nil
	case os.IsNotExist(err):
		return s.loadLegacy()
	default:
		return fmt.Errorf("read database file: %w", err)
	}
}

// loadLegacy migrates the legacy text file when present, or initializes an
// empty database when it is not.
func (s *Store) loadLegacy() error {
	raw, err := os.ReadFile(s.legacyPath)
	if os.IsNotExist(err) {
		s.records = nil
		return s.Save()
	}
	if err != nil {
		return fmt.Errorf("read legacy file: %w", err)
	}

	entries := parseLegacy(raw, s.log)
	if len(entries) == 0 {
		return &FormatError{Path: s.legacyPath}
	}

	records := make([]models.Record, 0, len(entries))
	for _, e := range entries {
		hash, encrypted := s.cipher.Seal(e.password)
		records = append(records, models.NewRecord(e.site, e.username, hash, encrypted))
	}
	s.records = records

	if err := s.Save(); err != nil {
		return err
	}
	if err := os.Rename(s.legacyPath, s.backupPath); err != nil {
		return fmt.Errorf("retire legacy file: %w", err)
	}
	s.log.Info("migrated legacy database",
		zap.Int("records", len(records)),
		zap.String("backup", s.backupPath),
	)
	return nil
}

// Save serializes the full record sequence to the data file via an atomic
// replace: the JSON is written to a temporary file in the same directory and
// renamed over the target, so a crash mid-write leaves either the old or the
// new complete file, never a partial one.
func (s *Store) Save() error {
	records := s.records
	if records == nil {
		records = []models.Record{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".passbook-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(payload); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}
	return nil
}

// Add appends a record and persists immediately.
func (s *Store) Add(rec models.Record) error {
	s.records = append(s.records, rec)
	if err := s.Save(); err != nil {
		// Keep memory and disk consistent on failure.
		s.records = s.records[:len(s.records)-1]
		return err
	}
	return nil
}

// Update replaces the mutable fields of the record at index and persists.
// The password forms are recomputed through the cipher only when a new
// password is supplied. Returns *NotFoundError on an out-of-range index.
func (s *Store) Update(index int, fields UpdateFields) error {
	if index < 0 || index >= len(s.records) {
		return &NotFoundError{Index: index, Len: len(s.records)}
	}
	prev := s.records[index]
	rec := &s.records[index]
	if fields.Site != "" || fields.Username != "" {
		rec.SetLogin(fields.Site, fields.Username)
	}
	if fields.Password != "" {
		rec.SetPassword(s.cipher.Seal(fields.Password))
	}
	if err := s.Save(); err != nil {
		s.records[index] = prev
		return err
	}
	return nil
}

// Delete removes the record at index and persists. Subsequent indices shift
// down by one: positions are not stable identifiers across deletions.
// Returns *NotFoundError on an out-of-range index.
func (s *Store) Delete(index int) error {
	if index < 0 || index >= len(s.records) {
		return &NotFoundError{Index: index, Len: len(s.records)}
	}
	removed := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)
	if err := s.Save(); err != nil {
		s.records = append(s.records[:index], append([]models.Record{removed}, s.records[index:]...)...)
		return err
	}
	return nil
}

// Records returns a copy of the collection in insertion order for read-only
// consumers such as the query engine.
func (s *Store) Records() []models.Record {
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records currently stored.
func (s *Store) Len() int {
	return len(s.records)
}

// Path returns the resolved data file location.
func (s *Store) Path() string {
	return s.path
}

// decodeRecords parses the current-format JSON array. An empty file or bare
// whitespace counts as an empty database.
func decodeRecords(data []byte) ([]models.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var records []models.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
