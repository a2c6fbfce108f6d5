package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/dmitrijs2005/goalbingo/internal/dbx"
	"github.com/dmitrijs2005/goalbingo/internal/server/models"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/boards"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/goalbingo/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

type fakeUsersRepo struct {
	byName    map[string]*models.User
	createErr error
	getErr    error
	lockErr   error
	locked    []string
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, taken := f.byName[u.UserName]; taken {
		return nil, common.ErrorAlreadyExists
	}
	out := *u
	out.ID = "id-" + u.UserName
	f.byName[u.UserName] = &out
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Lock(_ context.Context, userID string) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.locked = append(f.locked, userID)
	return nil
}

type fakeRefreshRepo struct {
	tokens    map[string]models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(_ context.Context, t models.RefreshToken) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[t.Token] = t
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

// fakeBoardsRepo keeps boards per user in insertion order.
type fakeBoardsRepo struct {
	owner   map[string]string
	byUser  map[string][]bingo.Board
	listErr error
	upErr   error
	listed  int
}

func newFakeBoardsRepo() *fakeBoardsRepo {
	return &fakeBoardsRepo{owner: map[string]string{}, byUser: map[string][]bingo.Board{}}
}

func (f *fakeBoardsRepo) List(_ context.Context, userID string) ([]bingo.Board, error) {
	f.listed++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]bingo.Board(nil), f.byUser[userID]...), nil
}

func (f *fakeBoardsRepo) Count(_ context.Context, userID string) (int, error) {
	return len(f.byUser[userID]), nil
}

func (f *fakeBoardsRepo) Owner(_ context.Context, boardID string) (string, error) {
	o, ok := f.owner[boardID]
	if !ok {
		return "", common.ErrorNotFound
	}
	return o, nil
}

func (f *fakeBoardsRepo) Upsert(_ context.Context, userID string, b bingo.Board) error {
	if f.upErr != nil {
		return f.upErr
	}
	if o, ok := f.owner[b.ID]; ok && o != userID {
		return common.ErrorConflict
	}
	list := f.byUser[userID]
	for i := range list {
		if list[i].ID == b.ID {
			list[i] = b
			return nil
		}
	}
	f.owner[b.ID] = userID
	f.byUser[userID] = append(list, b)
	return nil
}

func (f *fakeBoardsRepo) Delete(_ context.Context, userID, boardID string) error {
	list := f.byUser[userID]
	for i := range list {
		if list[i].ID == boardID {
			f.byUser[userID] = append(list[:i:i], list[i+1:]...)
			delete(f.owner, boardID)
			return nil
		}
	}
	return nil
}

func (f *fakeBoardsRepo) DeleteAll(_ context.Context, userID string) error {
	for _, b := range f.byUser[userID] {
		delete(f.owner, b.ID)
	}
	delete(f.byUser, userID)
	return nil
}

type fakeRepoManager struct {
	users   *fakeUsersRepo
	refresh *fakeRefreshRepo
	boards  *fakeBoardsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:   &fakeUsersRepo{byName: map[string]*models.User{}},
		refresh: &fakeRefreshRepo{tokens: map[string]models.RefreshToken{}},
		boards:  newFakeBoardsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.refresh }
func (m *fakeRepoManager) Boards(dbx.DBTX) boards.Repository               { return m.boards }

func newBoard(t *testing.T, name string) bingo.Board {
	t.Helper()
	b, err := bingo.NewBoard(name, bingo.Size3, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return b
}
