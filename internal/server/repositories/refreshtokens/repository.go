// Package refreshtokens stores the refresh tokens issued at login.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/goalbingo/internal/server/models"
)

// Repository issues, finds and revokes refresh tokens.
type Repository interface {
	Create(ctx context.Context, token models.RefreshToken) error

	// Find returns common.ErrorNotFound for unknown tokens.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
}
