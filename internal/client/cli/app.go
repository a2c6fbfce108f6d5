package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/boardsync"
	"github.com/dmitrijs2005/goalbingo/internal/client/client"
	"github.com/dmitrijs2005/goalbingo/internal/client/config"
	"github.com/dmitrijs2005/goalbingo/internal/client/repositories"
	"github.com/dmitrijs2005/goalbingo/internal/client/services"
	"github.com/dmitrijs2005/goalbingo/internal/client/storage/local"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

// loginSyncer merges the device boards into the account on sign-in.
type loginSyncer interface {
	Login(ctx context.Context) (*boardsync.Outcome, error)
}

type App struct {
	config      *config.Config
	log         logging.Logger
	repos       *repositories.Repositories
	authService services.AuthService
	session     *services.BoardSession
	syncer      loginSyncer
	local       storage.Adapter
	remote      storage.Adapter

	userName string
	reader   *bufio.Reader
	out      io.Writer

	modeMu sync.RWMutex
	mode   Mode
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	repos, err := repositories.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	localAdapter := local.NewAdapter(repos.DB, log)
	remoteAdapter := client.NewRemoteAdapter(apiClient, log)

	session := services.NewBoardSession(localAdapter,
		services.WithMaxBoards(c.MaxBoards),
		services.WithSaveDelay(c.SaveDelay),
		services.WithSessionLogger(log),
	)
	syncer := boardsync.NewSyncer(localAdapter, remoteAdapter, c.MaxBoards,
		boardsync.WithArchiver(remoteAdapter),
		boardsync.WithLogger(log),
	)

	return &App{
		config:      c,
		log:         log.With("module", "cli"),
		repos:       repos,
		authService: services.NewAuthService(apiClient, repos.DB),
		session:     session,
		syncer:      syncer,
		local:       localAdapter,
		remote:      remoteAdapter,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run resumes a remembered session, starts the connectivity watcher and
// serves the REPL until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	fmt.Fprintln(a.out, "Welcome to Goal Bingo (type 'help' for commands)")
	a.restore(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) close(ctx context.Context) {
	a.session.Flush()
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "close client", "error", err)
	}
	if a.repos != nil {
		if err := a.repos.Close(); err != nil {
			a.log.Warn(ctx, "close database", "error", err)
		}
	}
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// synced reports whether changes currently go to the server.
func (a *App) synced() bool {
	return a.remote != nil && a.session.Adapter() == a.remote
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := a.authService.Ping(pctx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}

// useDevice switches the session to the device database and its boards.
func (a *App) useDevice(ctx context.Context) {
	var state bingo.AppState
	if st, err := a.local.Load(ctx); err == nil && st != nil {
		state = *st
	}
	a.session.Replace(a.local, state)
}
