// Package users stores accounts of the board server.
package users

import (
	"context"

	"github.com/dmitrijs2005/goalbingo/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills its ID. A taken username yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// Lock takes a row lock on the user until the surrounding transaction
	// ends. An unknown id yields common.ErrorNotFound.
	Lock(ctx context.Context, userID string) error
}
