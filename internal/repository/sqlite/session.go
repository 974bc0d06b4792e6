package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/repository"
)

// compile-time check that *DB implements repository.SessionRepository
var _ repository.SessionRepository = (*DB)(nil)

// Load returns the stored record for key.
// Returns apperror.ErrNotFound if nothing is stored under key.
func (db *DB) Load(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := db.conn.QueryRowContext(ctx,
		`SELECT data FROM session_state WHERE key = ?`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("session", key)
		}
		return nil, fmt.Errorf("sqlite: loading session %s: %w", key, err)
	}
	return []byte(data), nil
}

// Save upserts the record for key. created_at is kept from the first write.
func (db *DB) Save(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO session_state (key, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		     data = excluded.data,
		     updated_at = excluded.updated_at`,
		key, string(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving session %s: %w", key, err)
	}
	return nil
}

// Delete removes the record for key. Deleting a missing key is a no-op.
func (db *DB) Delete(ctx context.Context, key string) error {
	if _, err := db.conn.ExecContext(ctx,
		`DELETE FROM session_state WHERE key = ?`, key,
	); err != nil {
		return fmt.Errorf("sqlite: deleting session %s: %w", key, err)
	}
	return nil
}

// Count returns the number of stored sessions. Used by the health endpoint.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM session_state`,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: counting sessions: %w", err)
	}
	return n, nil
}
