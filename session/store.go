// Copyright (c) 2026 The Crewkerne Gazette.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Credential slot names. The admin session and the anonymous opinion
// session are independent: at most one of each exists per install, and
// they never share a token namespace.
const (
	SlotAdminToken      = "admin_token"
	SlotOpinionToken    = "opinion_session_token"
	SlotOpinionUsername = "opinion_username"
	SlotDeviceUUID      = "device_uuid"
)

// Store persists named credential slots in a local SQLite database.
// It replaces the scattered localStorage-style access of ad-hoc clients
// with one injected abstraction. All methods are safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// Open opens (creating if needed) the credential store under dataDir.
func Open(dataDir string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	path := filepath.Join(dataDir, "sessions.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, logger: logger, cache: make(map[string]string)}
	if err := s.load(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT slot, value FROM credential`)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	defer rows.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	for rows.Next() {
		var slot, value string
		if err := rows.Scan(&slot, &value); err != nil {
			return fmt.Errorf("failed to scan credential: %w", err)
		}
		s.cache[slot] = value
	}
	return rows.Err()
}

// Get returns the stored value for slot, or "" when the slot is empty.
func (s *Store) Get(slot string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[slot]
}

// Set persists value under slot, replacing any previous value.
func (s *Store) Set(slot, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO credential (slot, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, slot, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	s.mu.Lock()
	s.cache[slot] = value
	s.mu.Unlock()

	s.logger.Debug("credential stored", zap.String("slot", slot))
	return nil
}

// Clear removes the value for slot. Clearing an empty slot is a no-op.
func (s *Store) Clear(slot string) error {
	_, err := s.db.Exec(`DELETE FROM credential WHERE slot = $1`, slot)
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}

	s.mu.Lock()
	delete(s.cache, slot)
	s.mu.Unlock()

	s.logger.Debug("credential cleared", zap.String("slot", slot))
	return nil
}

// DeviceUUID returns the per-install device identifier, generating and
// persisting one on first use. It is sent as X-Device-UUID on every request.
func (s *Store) DeviceUUID() (string, error) {
	if id := s.Get(SlotDeviceUUID); id != "" {
		return id, nil
	}

	id := uuid.NewString()
	if err := s.Set(SlotDeviceUUID, id); err != nil {
		return "", err
	}
	return id, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
