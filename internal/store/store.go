// Package store persists huepanel state between runs: the bridge pairing,
// the last discovery result and TTL'd catalog snapshots. Everything is kept
// as JSON blobs in a namespaced kv table.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Bucket names used by the panel.
const (
	BucketPairing   = "pairing"
	BucketDiscovery = "discovery"
	BucketCatalog   = "catalog"
)

// Store is a namespaced JSON kv backed by SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new store on top of an opened database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Put saves a value under (bucket, key). A ttl of 0 means the entry never
// expires; a negative ttl stores an entry that is already expired.
func (s *Store) Put(bucket, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	now := time.Now().UTC().Unix()

	var expiresAt *int64
	if ttl != 0 {
		exp := time.Now().Add(ttl).UTC().Unix()
		expiresAt = &exp
	}

	_, err = s.db.Exec(`
		INSERT INTO kv_store (bucket, key, value, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(bucket, key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`, bucket, key, string(data), expiresAt, now, now)

	if err != nil {
		return fmt.Errorf("failed to store value: %w", err)
	}

	return nil
}

// Get retrieves a value by key into dst. Returns false if the key does not
// exist or has expired.
func (s *Store) Get(bucket, key string, dst any) (bool, error) {
	var valueStr string
	var expiresAt sql.NullInt64

	err := s.db.QueryRow(`
		SELECT value, expires_at FROM kv_store
		WHERE bucket = ? AND key = ?
	`, bucket, key).Scan(&valueStr, &expiresAt)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get value: %w", err)
	}

	// Check expiry
	if expiresAt.Valid && time.Now().UTC().Unix() > expiresAt.Int64 {
		// Expired - delete and report absent
		_, _ = s.db.Exec(`DELETE FROM kv_store WHERE bucket = ? AND key = ?`, bucket, key)
		return false, nil
	}

	if err := json.Unmarshal([]byte(valueStr), dst); err != nil {
		return false, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return true, nil
}

// Delete removes a key. Reports whether an entry was removed.
func (s *Store) Delete(bucket, key string) (bool, error) {
	result, err := s.db.Exec(`
		DELETE FROM kv_store WHERE bucket = ? AND key = ?
	`, bucket, key)
	if err != nil {
		return false, fmt.Errorf("failed to delete key: %w", err)
	}

	affected, _ := result.RowsAffected()
	return affected > 0, nil
}

// Clear removes all keys from a bucket.
func (s *Store) Clear(bucket string) error {
	_, err := s.db.Exec(`DELETE FROM kv_store WHERE bucket = ?`, bucket)
	if err != nil {
		return fmt.Errorf("failed to clear bucket: %w", err)
	}
	return nil
}

// CleanupExpired removes all expired entries.
func (s *Store) CleanupExpired() (int64, error) {
	now := time.Now().UTC().Unix()

	result, err := s.db.Exec(`
		DELETE FROM kv_store WHERE expires_at IS NOT NULL AND expires_at <= ?
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired entries: %w", err)
	}

	return result.RowsAffected()
}
