// Package services contains the application services of the goal bingo
// client: the board session with debounced auto-save and the authentication
// service that keeps a device session alive between runs.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/goalbingo/internal/client/client"
	"github.com/dmitrijs2005/goalbingo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/goalbingo/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
//   - Login: authenticate against the server and remember the session.
//   - Restore: resume a remembered session; returns the user name or "".
//   - Logout: forget the session on the device and in the client.
//   - Register: create a new user on the server.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Restore(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, username string, password []byte) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

// Login authenticates and stores the user name and refresh token so the
// next run can resume without a password.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if err := a.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	_, refresh := a.client.Tokens()
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyUsername, []byte(username)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyRefreshToken, []byte(refresh))
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) Restore(ctx context.Context) (string, error) {
	stored, err := metadata.NewSQLiteRepository(a.db).GetMany(ctx, metadata.KeyUsername, metadata.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	username, token := stored[metadata.KeyUsername], stored[metadata.KeyRefreshToken]
	if len(username) == 0 || len(token) == 0 {
		return "", nil
	}

	a.client.SetRefreshToken(string(token))
	return string(username), nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.Logout()
	return metadata.NewSQLiteRepository(a.db).Delete(ctx, metadata.KeyUsername, metadata.KeyRefreshToken)
}

func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, password)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
