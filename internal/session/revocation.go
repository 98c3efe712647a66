package session

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	revocationSchema = `CREATE TABLE IF NOT EXISTS revoked_tokens (
	id TEXT PRIMARY KEY,
	expires_at INTEGER NOT NULL
);`
	revokeQuery = `INSERT INTO revoked_tokens (id, expires_at) VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET expires_at = excluded.expires_at;`
	isRevokedQuery = `SELECT expires_at FROM revoked_tokens WHERE id = ?;`
	purgeQuery     = `DELETE FROM revoked_tokens WHERE expires_at <= ?;`
)

// RevocationStore keeps revoked token IDs in SQLite until they expire.
type RevocationStore struct {
	db *sql.DB
}

func NewRevocationStore(db *sql.DB) *RevocationStore {
	return &RevocationStore{db: db}
}

func (s *RevocationStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, revocationSchema)
	return err
}

func (s *RevocationStore) Revoke(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, revokeQuery, id, expiresAt.Unix())
	return err
}

func (s *RevocationStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	var expiresAt int64
	err := s.db.QueryRowContext(ctx, isRevokedQuery, id).Scan(&expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Purge drops entries whose tokens have expired by now and returns how many
// were removed.
func (s *RevocationStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, purgeQuery, now.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
