package ports

import (
	"context"

	"github.com/aretw0/botcmd/pkg/domain"
)

// SessionStore defines the interface for persisting per-caller sessions.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
