// Package postgres implements repository.SessionRepository on PostgreSQL.
//
// Use it when several SkillSync instances sit behind a load balancer and must
// see the same sessions. The schema is managed with goose migrations embedded
// in the binary.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/sakif/skillsync/internal/apperror"
	"github.com/sakif/skillsync/internal/repository"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var _ repository.SessionRepository = (*DB)(nil)

type DB struct {
	pool *pgxpool.Pool
}

// New connects to dsn, verifies the connection and applies pending migrations.
func New(ctx context.Context, dsn string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: parsing DSN: %w", err)
	}
	config.MaxConns = 10
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("postgres: creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: pinging database: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := migrate(ctx, sqlDB); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{pool: pool}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("postgres: setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("postgres: applying migrations: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	db.pool.Close()
	return nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Load(ctx context.Context, key string) ([]byte, error) {
	var data string
	err := db.pool.QueryRow(ctx,
		`SELECT data FROM session_state WHERE key = $1`, key,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("session", key)
		}
		return nil, fmt.Errorf("postgres: loading session %s: %w", key, err)
	}
	return []byte(data), nil
}

func (db *DB) Save(ctx context.Context, key string, data []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO session_state (key, data)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET
		     data = EXCLUDED.data,
		     updated_at = NOW()`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("postgres: saving session %s: %w", key, err)
	}
	return nil
}

func (db *DB) Delete(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx,
		`DELETE FROM session_state WHERE key = $1`, key,
	); err != nil {
		return fmt.Errorf("postgres: deleting session %s: %w", key, err)
	}
	return nil
}
