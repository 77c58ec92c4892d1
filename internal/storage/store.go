// Package storage persists per-session operator preferences: manufacturer
// visibility flags, cached manufacturer metadata and the encrypted backend
// API token.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const apiTokenName = "api_token"

// ManufacturerMetaRow is cached list-view metadata for one manufacturer.
type ManufacturerMetaRow struct {
	ManufacturerID string
	CategoryCount  int
	RefreshedAt    time.Time
}

// PrefsStore defines the interface for preference persistence.
type PrefsStore interface {
	SetManufacturerHidden(manufacturerID string, hidden bool) error
	IsManufacturerHidden(manufacturerID string) (bool, error)
	HiddenManufacturers() (map[string]bool, error)

	SetAPIToken(token string) error
	APIToken() (string, error)

	SetManufacturerMeta(manufacturerID string, categoryCount int) error
	ManufacturerMeta(manufacturerID string) (*ManufacturerMetaRow, error)

	Close() error
}

// SQLiteStore implements PrefsStore using SQLite with an encrypted token.
type SQLiteStore struct {
	db            *sql.DB
	encryptionKey []byte
	mu            sync.RWMutex
}

// NewSQLiteStore opens (creating if needed) the preferences database at
// dbPath. The encryptionKey is used to encrypt the stored API token.
func NewSQLiteStore(dbPath string, encryptionKey []byte) (*SQLiteStore, error) {
	// WAL mode and a busy timeout for better concurrency
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set file permissions (only works on creation)
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		// Ignore error if file doesn't exist yet
	}

	store := &SQLiteStore{
		db:            db,
		encryptionKey: encryptionKey,
	}

	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) init() error {
	prefsQuery := `
	CREATE TABLE IF NOT EXISTS manufacturer_prefs (
		manufacturer_id TEXT PRIMARY KEY,
		hidden INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(prefsQuery); err != nil {
		return fmt.Errorf("failed to create manufacturer_prefs table: %w", err)
	}

	credentialsQuery := `
	CREATE TABLE IF NOT EXISTS credentials (
		name TEXT PRIMARY KEY,
		encrypted_value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(credentialsQuery); err != nil {
		return fmt.Errorf("failed to create credentials table: %w", err)
	}

	metaQuery := `
	CREATE TABLE IF NOT EXISTS manufacturer_meta (
		manufacturer_id TEXT PRIMARY KEY,
		category_count INTEGER NOT NULL,
		refreshed_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(metaQuery); err != nil {
		return fmt.Errorf("failed to create manufacturer_meta table: %w", err)
	}

	return nil
}

// SetManufacturerHidden flags a manufacturer as hidden from list views.
func (s *SQLiteStore) SetManufacturerHidden(manufacturerID string, hidden bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO manufacturer_prefs (manufacturer_id, hidden, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(manufacturer_id) DO UPDATE SET hidden = excluded.hidden, updated_at = excluded.updated_at
	`, manufacturerID, boolToInt(hidden), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save manufacturer pref: %w", err)
	}
	return nil
}

// IsManufacturerHidden reports whether a manufacturer is hidden. Unknown
// manufacturers are visible.
func (s *SQLiteStore) IsManufacturerHidden(manufacturerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hidden int
	err := s.db.QueryRow(
		"SELECT hidden FROM manufacturer_prefs WHERE manufacturer_id = ?",
		manufacturerID,
	).Scan(&hidden)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query manufacturer pref: %w", err)
	}
	return hidden != 0, nil
}

// HiddenManufacturers returns the set of hidden manufacturer ids.
func (s *SQLiteStore) HiddenManufacturers() (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT manufacturer_id FROM manufacturer_prefs WHERE hidden = 1")
	if err != nil {
		return nil, fmt.Errorf("failed to query hidden manufacturers: %w", err)
	}
	defer rows.Close()

	hidden := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan manufacturer id: %w", err)
		}
		hidden[id] = true
	}
	return hidden, rows.Err()
}

// SetAPIToken encrypts and stores the backend API token.
func (s *SQLiteStore) SetAPIToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	encrypted, err := Encrypt([]byte(token), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO credentials (name, encrypted_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET encrypted_value = excluded.encrypted_value, updated_at = excluded.updated_at
	`, apiTokenName, encrypted, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// APIToken decrypts and returns the stored API token. Returns "" when no
// token has been stored.
func (s *SQLiteStore) APIToken() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var encrypted string
	err := s.db.QueryRow(
		"SELECT encrypted_value FROM credentials WHERE name = ?",
		apiTokenName,
	).Scan(&encrypted)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query token: %w", err)
	}

	token, err := Decrypt(encrypted, s.encryptionKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt token: %w", err)
	}
	return string(token), nil
}

// SetManufacturerMeta stores refreshed list-view metadata for a
// manufacturer.
func (s *SQLiteStore) SetManufacturerMeta(manufacturerID string, categoryCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO manufacturer_meta (manufacturer_id, category_count, refreshed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(manufacturer_id) DO UPDATE SET category_count = excluded.category_count, refreshed_at = excluded.refreshed_at
	`, manufacturerID, categoryCount, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save manufacturer meta: %w", err)
	}
	return nil
}

// ManufacturerMeta returns cached metadata for a manufacturer, or nil when
// none has been stored.
func (s *SQLiteStore) ManufacturerMeta(manufacturerID string) (*ManufacturerMetaRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := &ManufacturerMetaRow{ManufacturerID: manufacturerID}
	err := s.db.QueryRow(
		"SELECT category_count, refreshed_at FROM manufacturer_meta WHERE manufacturer_id = ?",
		manufacturerID,
	).Scan(&row.CategoryCount, &row.RefreshedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query manufacturer meta: %w", err)
	}
	return row, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
