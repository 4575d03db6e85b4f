// Package auth registers and authenticates trip owners and issues their session tokens.
package auth

import (
	"context"

	"github.com/mmynk/tripsplit/internal/models"
)

// Authenticator verifies user credentials. Services depend on this interface
// so the credential scheme can change without touching them.
type Authenticator interface {
	// Register creates an account. The credential format depends on the implementation.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user owning email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// User looks up an account by ID; it returns ErrUserNotFound when none exists.
	User(ctx context.Context, id string) (*models.User, error)
}
