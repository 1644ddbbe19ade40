// Package sessions declares the server-side repository contract for opaque
// session tokens.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// session tokens.
type Repository interface {
	// Create stores a new session token for userID with an expiry of
	// now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find looks up a session by its opaque token string. Returns
	// common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session by its token string. Deleting a
	// non-existent token is not an error, which makes logout idempotent.
	Delete(ctx context.Context, token string) error
}
