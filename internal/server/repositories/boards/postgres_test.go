package boards

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listQ      = `(?s)SELECT\s+b\.id,.*FROM\s+boards\s+b\s+JOIN\s+cells\s+c.*WHERE\s+b\.user_id\s*=\s*\$1\s+ORDER\s+BY\s+b\.created_at\s+DESC,\s*b\.id,\s*c\.idx`
	countQ     = `SELECT count\(\*\) FROM boards WHERE user_id = \$1`
	ownerQ     = `SELECT user_id FROM boards WHERE id = \$1`
	upsertQ    = `(?s)INSERT\s+INTO\s+boards\s*\(id,\s*user_id,\s*name,\s*size,\s*created_at,\s*updated_at\).*ON\s+CONFLICT\s*\(id\).*WHERE\s+boards\.user_id\s*=\s*EXCLUDED\.user_id`
	clearQ     = `DELETE FROM cells WHERE board_id = \$1`
	cellsQ     = `INSERT INTO cells \(board_id, idx, position, goal, is_achieved\) VALUES \(\$1, \$2, \$3, \$4, \$5\), `
	deleteQ    = `DELETE FROM boards WHERE id = \$1 AND user_id = \$2`
	deleteAllQ = `DELETE FROM boards WHERE user_id = \$1`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewPostgresRepository(db), mock
}

func testBoard(t *testing.T, name string, created time.Time) bingo.Board {
	t.Helper()
	b, err := bingo.NewBoard(name, bingo.Size3, created)
	require.NoError(t, err)
	b.SetGoal(bingo.PositionOf(0, 0), "read", created)
	b.SetAchieved(bingo.PositionOf(0, 0), true, created.Add(time.Minute))
	return b
}

func TestList_GroupsCellsPerBoard(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	t1 := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer, older := testBoard(t, "newer", t1), testBoard(t, "older", t2)

	rows := sqlmock.NewRows([]string{"id", "name", "size", "created_at", "updated_at", "position", "goal", "is_achieved"})
	for _, b := range []bingo.Board{newer, older} {
		for _, c := range b.Cells {
			rows.AddRow(b.ID, b.Name, int(b.Size), b.CreatedAt, b.UpdatedAt, string(c.Position), c.Goal, c.IsAchieved)
		}
	}
	mock.ExpectQuery(listQ).WithArgs("u1").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff([]bingo.Board{newer, older}, got))
}

func TestList_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQ).WillReturnError(errors.New("down"))
	_, err := repo.List(context.Background(), "u1")
	require.ErrorContains(t, err, "failed to select boards")

	mock.ExpectQuery(listQ).WillReturnRows(
		sqlmock.NewRows([]string{"id"}).AddRow("only-one-column"))
	_, err = repo.List(context.Background(), "u1")
	require.Error(t, err)
}

func TestCountAndOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectQuery(countQ).WithArgs("u1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	n, err := repo.Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	mock.ExpectQuery(ownerQ).WithArgs("b1").WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u2"))
	owner, err := repo.Owner(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "u2", owner)

	mock.ExpectQuery(ownerQ).WithArgs("b9").WillReturnError(sql.ErrNoRows)
	_, err = repo.Owner(ctx, "b9")
	require.ErrorIs(t, err, common.ErrorNotFound)

	mock.ExpectQuery(countQ).WillReturnError(errors.New("down"))
	_, err = repo.Count(ctx, "u1")
	require.Error(t, err)

	mock.ExpectQuery(ownerQ).WillReturnError(errors.New("down"))
	_, err = repo.Owner(ctx, "b1")
	require.ErrorContains(t, err, "db error: down")
}

func TestUpsert_WritesBoardAndCells(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	b := testBoard(t, "plan", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	mock.ExpectExec(upsertQ).
		WithArgs(b.ID, "u1", "plan", 3, b.CreatedAt, b.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(clearQ).WithArgs(b.ID).WillReturnResult(sqlmock.NewResult(0, 9))

	args := make([]driver.Value, 0, 45)
	for i, c := range b.Cells {
		args = append(args, b.ID, i, string(c.Position), c.Goal, c.IsAchieved)
	}
	mock.ExpectExec(cellsQ).WithArgs(args...).WillReturnResult(sqlmock.NewResult(0, 9))

	require.NoError(t, repo.Upsert(context.Background(), "u1", b))
}

func TestUpsert_ForeignBoardConflicts(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	b := testBoard(t, "plan", time.Now())

	mock.ExpectExec(upsertQ).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Upsert(context.Background(), "u1", b)
	require.ErrorIs(t, err, common.ErrorConflict)
}

func TestUpsert_Errors(t *testing.T) {
	b := testBoard(t, "plan", time.Now())

	t.Run("board insert", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(upsertQ).WillReturnError(errors.New("down"))
		require.ErrorContains(t, repo.Upsert(context.Background(), "u1", b), "db error")
	})
	t.Run("unexpected rows", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(upsertQ).WillReturnResult(sqlmock.NewResult(0, 2))
		require.ErrorContains(t, repo.Upsert(context.Background(), "u1", b), "unexpected rows affected")
	})
	t.Run("cells", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(upsertQ).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(clearQ).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(cellsQ).WillReturnError(errors.New("check violation"))
		require.ErrorContains(t, repo.Upsert(context.Background(), "u1", b), "check violation")
	})
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(deleteQ).WithArgs("b1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.Delete(ctx, "u1", "b1"))

	mock.ExpectExec(deleteAllQ).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 3))
	require.NoError(t, repo.DeleteAll(ctx, "u1"))

	mock.ExpectExec(deleteQ).WillReturnError(errors.New("down"))
	require.Error(t, repo.Delete(ctx, "u1", "b1"))

	mock.ExpectExec(deleteAllQ).WillReturnError(errors.New("down"))
	require.Error(t, repo.DeleteAll(ctx, "u1"))
}
