package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"symptom-checker/pkg"
)

// Repository stores pending session outcomes in postgres.  It satisfies
// session.Store for deployments that run several server replicas without
// sticky sessions.
type Repository struct {
	DB  *sql.DB
	TTL time.Duration
	now func() time.Time
}

// NewRepository constructs a new Repository from an existing sql.DB.
// The caller is responsible for managing the DB connection lifecycle.
func NewRepository(db *sql.DB, ttl time.Duration) *Repository {
	return &Repository{DB: db, TTL: ttl, now: time.Now}
}

// Open connects to databaseURL, verifies the connection and applies the
// schema.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return conn, nil
}

// Put upserts the pending outcome for a session.
func (r *Repository) Put(ctx context.Context, sessionID string, outcome pkg.Outcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO session_results (session_id, payload, expires_at)
         VALUES ($1, $2, $3)
         ON CONFLICT (session_id)
         DO UPDATE SET payload = EXCLUDED.payload, expires_at = EXCLUDED.expires_at`,
		sessionID, string(payload), r.now().Add(r.TTL),
	)
	return err
}

// TakeAndClear deletes the pending outcome and returns it.  A row past its
// expiry is deleted too but reported as absent.
func (r *Repository) TakeAndClear(ctx context.Context, sessionID string) (pkg.Outcome, bool, error) {
	var (
		payload   string
		expiresAt time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		`DELETE FROM session_results
         WHERE session_id = $1
         RETURNING payload, expires_at`,
		sessionID,
	).Scan(&payload, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return pkg.Outcome{}, false, nil
	}
	if err != nil {
		return pkg.Outcome{}, false, err
	}
	if !r.now().Before(expiresAt) {
		return pkg.Outcome{}, false, nil
	}
	var outcome pkg.Outcome
	if err := json.Unmarshal([]byte(payload), &outcome); err != nil {
		return pkg.Outcome{}, false, fmt.Errorf("decode outcome: %w", err)
	}
	return outcome, true, nil
}

// PurgeExpired removes rows whose sessions have expired and reports how
// many were deleted.
func (r *Repository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM session_results WHERE expires_at <= $1`, r.now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
