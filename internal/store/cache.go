// Package store persists raw Overpass responses in SQLite so repeated
// sessions over the same region skip the network round trip.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// ResponseCache is a TTL cache of raw API payloads keyed by query region.
type ResponseCache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at the given path and
// configures WAL mode.
func Open(dsn string) (*ResponseCache, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}
	return &ResponseCache{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS overpass_cache (
	id         TEXT PRIMARY KEY,
	region     TEXT NOT NULL,
	payload    BLOB NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_overpass_cache_region ON overpass_cache(region);
CREATE INDEX IF NOT EXISTS idx_overpass_cache_expires_at ON overpass_cache(expires_at);
`

// Migrate creates the cache schema.
func (c *ResponseCache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "store: migrate")
}

// Close closes the underlying database.
func (c *ResponseCache) Close() error {
	return c.db.Close()
}

// Get returns the freshest unexpired payload for the region. The second
// return is false on a miss.
func (c *ResponseCache) Get(ctx context.Context, region string) ([]byte, bool, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT payload FROM overpass_cache
		 WHERE region = ? AND expires_at > ?
		 ORDER BY fetched_at DESC LIMIT 1`,
		region, time.Now().UTC(),
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrapf(err, "store: get region %s", region)
	}
	return payload, true, nil
}

// Put stores a payload for the region with the given TTL, replacing any
// previous entries for it.
func (c *ResponseCache) Put(ctx context.Context, region string, payload []byte, ttl time.Duration) error {
	now := time.Now().UTC()

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "store: begin put")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM overpass_cache WHERE region = ?`, region); err != nil {
		return eris.Wrapf(err, "store: clear region %s", region)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO overpass_cache (id, region, payload, fetched_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(), region, payload, now, now.Add(ttl),
	); err != nil {
		return eris.Wrapf(err, "store: insert region %s", region)
	}
	return eris.Wrap(tx.Commit(), "store: commit put")
}

// Prune deletes expired entries and returns how many were removed.
func (c *ResponseCache) Prune(ctx context.Context) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`DELETE FROM overpass_cache WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, eris.Wrap(err, "store: prune")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "store: prune rows affected")
	}
	return n, nil
}
