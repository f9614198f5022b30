// Package sessionstore persists the signed-in user's Cognito tokens between
// CLI runs, playing the part the browser's local storage plays for a web
// client. Nothing else is cached locally.
package sessionstore

import "context"

// Record is the persisted form of a session.
type Record struct {
	Email        string
	IDToken      string
	AccessToken  string
	RefreshToken string
}

// Store keeps at most one Record.
//
// Load returns (nil, nil) when nothing is stored. Save replaces whatever was
// stored before. Clear is idempotent.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, r Record) error
	Clear(ctx context.Context) error
}
