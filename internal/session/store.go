// Package session holds the read-once result slot that carries an analysis
// from the POST that produced it to the GET that displays it.
package session

import (
	"context"

	"symptom-checker/pkg"
)

// Store keeps at most one pending outcome per session id.
type Store interface {
	// Put replaces whatever is pending for the session.
	Put(ctx context.Context, sessionID string, outcome pkg.Outcome) error
	// TakeAndClear returns the pending outcome and removes it, so a second
	// call reports false.
	TakeAndClear(ctx context.Context, sessionID string) (pkg.Outcome, bool, error)
}
