package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/goalbingo/internal/boardsync"
	"github.com/dmitrijs2005/goalbingo/internal/client/client"
)

func (a *App) credentials() (string, []byte, error) {
	userName, err := ask(a.reader, a.out, "Username")
	if err != nil {
		return "", nil, err
	}
	if userName == "" {
		return "", nil, errors.New("username must not be empty")
	}
	password, err := askSecret(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register creates an account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account created, you can login now.")
	return nil
}

// Login signs in and merges the boards kept on this device into the
// account.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return fmt.Errorf("already logged in as %s", a.userName)
	}

	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.authService.Login(ctx, userName, password); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		return err
	}

	a.userName = userName
	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", userName)

	return a.Sync(ctx)
}

// Sync runs the sign-in merge again. On failure the session keeps working
// with the device boards.
func (a *App) Sync(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errors.New("login first")
	}

	a.session.Flush()
	if a.synced() {
		// the device copy is refreshed so the merge sees the latest boards
		if err := a.local.Save(ctx, a.session.Snapshot()); err != nil {
			a.log.Warn(ctx, "store boards on device", "error", err)
		}
	}

	outcome, err := a.syncer.Login(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ModeOffline)
		}
		if !a.synced() {
			a.useDevice(ctx)
		}
		return fmt.Errorf("boards not synced, changes stay on this device: %w", err)
	}

	a.session.Replace(a.remote, outcome.State)
	a.report(outcome)
	return nil
}

func (a *App) report(o *boardsync.Outcome) {
	if n := len(o.Uploaded); n > 0 {
		fmt.Fprintf(a.out, "Uploaded %d board(s) from this device.\n", n)
	}
	if len(o.Skipped) > 0 {
		names := make([]string, len(o.Skipped))
		for i, b := range o.Skipped {
			names[i] = b.Name
		}
		fmt.Fprintf(a.out, "Board limit reached, not kept: %s\n", strings.Join(names, ", "))
		if o.ArchiveErr == nil {
			fmt.Fprintln(a.out, "They were archived on the server.")
		}
	}
	if o.UploadErr != nil {
		fmt.Fprintf(a.out, "Warning: some boards were not uploaded: %v\n", o.UploadErr)
	}
	if o.SaveErr != nil {
		fmt.Fprintf(a.out, "Warning: merged boards were not fully saved: %v\n", o.SaveErr)
	}
	fmt.Fprintf(a.out, "%d board(s) in your account.\n", len(o.State.Boards))
}

// Logout forgets the session. The current boards stay on this device.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errors.New("not logged in")
	}

	a.session.Flush()
	if a.synced() {
		if err := a.local.Save(ctx, a.session.Snapshot()); err != nil {
			a.log.Warn(ctx, "store boards on device", "error", err)
		}
	}

	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.useDevice(ctx)

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) Ping(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Server is reachable.")
	return nil
}

// restore resumes a session remembered on this device. Without one, or
// when the server cannot be reached, the device boards are used.
func (a *App) restore(ctx context.Context) {
	userName, err := a.authService.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "restore session", "error", err)
	}
	if userName == "" {
		a.session.Init(ctx)
		return
	}

	a.userName = userName
	if err := a.Sync(ctx); err != nil {
		a.log.Warn(ctx, "resume session", "error", err)
		fmt.Fprintln(a.out, err)
		return
	}
	a.setMode(ModeOnline)
}
