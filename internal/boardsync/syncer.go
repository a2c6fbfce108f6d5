package boardsync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/logging"
	"github.com/dmitrijs2005/goalbingo/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Archiver keeps boards that were dropped by a merge.
type Archiver interface {
	Archive(ctx context.Context, boards []bingo.Board) error
}

// Outcome describes a completed login synchronisation.
//
// UploadErr joins the failures of individual uploads, SaveErr the failures
// of persisting the merged collection and ArchiveErr the failure to archive
// skipped boards. None of them prevents State from being usable.
type Outcome struct {
	State      bingo.AppState
	Skipped    []bingo.Board
	Uploaded   []string
	UploadErr  error
	SaveErr    error
	ArchiveErr error
}

// Syncer merges the device collection into the remote one on sign-in.
type Syncer struct {
	local     storage.Adapter
	remote    storage.Adapter
	archiver  Archiver
	maxBoards int
	log       logging.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithArchiver makes the syncer hand skipped boards to a.
func WithArchiver(a Archiver) Option {
	return func(s *Syncer) { s.archiver = a }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Syncer) { s.log = l }
}

// NewSyncer constructs a Syncer between the device and the server. Boards
// beyond maxBoards are skipped and archived when an Archiver is set.
func NewSyncer(local, remote storage.Adapter, maxBoards int, opts ...Option) *Syncer {
	s := &Syncer{
		local:     local,
		remote:    remote,
		maxBoards: maxBoards,
		log:       logging.Nop(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("module", "boardsync")
	return s
}

// Login loads both collections, uploads the local-only boards that fit into
// the remote capacity, merges, and stores the merged collection on both
// sides.
//
// A local load failure is treated as an empty device. A remote load failure
// aborts the login since merging against an unknown remote would overwrite
// it.
func (s *Syncer) Login(ctx context.Context) (*Outcome, error) {
	local, err := s.local.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "local load failed, continuing without local boards", "error", err)
		local = nil
	}

	remote, err := s.remote.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load remote boards: %w", err)
	}

	out := &Outcome{}
	out.Uploaded, out.UploadErr = s.upload(ctx, BoardsToUpload(local, remote, s.maxBoards))

	res := Merge(local, remote, s.maxBoards)
	out.State = res.State
	out.Skipped = res.Skipped

	if len(res.Skipped) > 0 && s.archiver != nil {
		if err := s.archiver.Archive(ctx, res.Skipped); err != nil {
			s.log.Error(ctx, "archive skipped boards", "count", len(res.Skipped), "error", err)
			out.ArchiveErr = err
		}
	}

	var saveErrs []error
	if err := s.remote.Save(ctx, res.State); err != nil {
		s.log.Error(ctx, "save merged boards remotely", "error", err)
		saveErrs = append(saveErrs, fmt.Errorf("remote: %w", err))
	}
	if err := s.local.Save(ctx, res.State); err != nil {
		s.log.Error(ctx, "save merged boards locally", "error", err)
		saveErrs = append(saveErrs, fmt.Errorf("local: %w", err))
	}
	out.SaveErr = errors.Join(saveErrs...)

	s.log.Info(ctx, "login sync finished",
		"boards", len(res.State.Boards),
		"uploaded", len(out.Uploaded),
		"skipped", len(res.Skipped))

	return out, nil
}

// upload pushes every board independently. A failed upload never cancels the
// others; the ids that made it are returned in input order.
func (s *Syncer) upload(ctx context.Context, boards []bingo.Board) ([]string, error) {
	if len(boards) == 0 {
		return nil, nil
	}

	ok := make([]bool, len(boards))
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	for i, b := range boards {
		g.Go(func() error {
			if err := s.remote.SaveBoard(ctx, b); err != nil {
				s.log.Warn(ctx, "board upload failed", "board_id", b.ID, "error", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("upload board %s: %w", b.ID, err))
				mu.Unlock()
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	var uploaded []string
	for i, b := range boards {
		if ok[i] {
			uploaded = append(uploaded, b.ID)
		}
	}
	return uploaded, errors.Join(errs...)
}
