package boards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/goalbingo/internal/bingo"
	"github.com/dmitrijs2005/goalbingo/internal/common"
	"github.com/dmitrijs2005/goalbingo/internal/dbx"
)

// PostgresRepository works over dbx.DBTX. Upsert issues several statements
// and should run inside a transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository over db.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the boards of userID with their cells, newest created first.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]bingo.Board, error) {
	query := `
		SELECT b.id, b.name, b.size, b.created_at, b.updated_at, c.position, c.goal, c.is_achieved
		FROM boards b
		JOIN cells c ON c.board_id = b.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id, c.idx`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select boards: %w", err)
	}
	defer rows.Close()

	var result []bingo.Board
	for rows.Next() {
		var (
			b                bingo.Board
			size             int
			created, updated time.Time
			position, goal   string
			achieved         bool
		)
		if err := rows.Scan(&b.ID, &b.Name, &size, &created, &updated, &position, &goal, &achieved); err != nil {
			return nil, err
		}

		if n := len(result); n == 0 || result[n-1].ID != b.ID {
			b.Size = bingo.BoardSize(size)
			b.CreatedAt = created.UTC()
			b.UpdatedAt = updated.UTC()
			result = append(result, b)
		}
		last := &result[len(result)-1]
		last.Cells = append(last.Cells, bingo.Cell{
			Position:   bingo.Position(position),
			Goal:       goal,
			IsAchieved: achieved,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns how many boards userID owns.
func (r *PostgresRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM boards WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Owner returns the user owning boardID, or common.ErrorNotFound.
func (r *PostgresRepository) Owner(ctx context.Context, boardID string) (string, error) {
	var userID string
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM boards WHERE id = $1`, boardID).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return userID, nil
}

// Upsert writes a board and replaces its cells. A board owned by another
// user is left unchanged and common.ErrorConflict is returned.
func (r *PostgresRepository) Upsert(ctx context.Context, userID string, b bingo.Board) error {
	query := `
		INSERT INTO boards (id, user_id, name, size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			size = EXCLUDED.size,
			created_at = EXCLUDED.created_at,
			updated_at = EXCLUDED.updated_at
			WHERE boards.user_id = EXCLUDED.user_id`

	res, err := r.db.ExecContext(ctx, query, b.ID, userID, b.Name, int(b.Size), b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
	case 0:
		return fmt.Errorf("board %s: %w", b.ID, common.ErrorConflict)
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM cells WHERE board_id = $1`, b.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if len(b.Cells) == 0 {
		return nil
	}

	values := make([]string, len(b.Cells))
	args := make([]any, 0, len(b.Cells)*5)
	for i, c := range b.Cells {
		p := i * 5
		values[i] = fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", p+1, p+2, p+3, p+4, p+5)
		args = append(args, b.ID, i, string(c.Position), c.Goal, c.IsAchieved)
	}
	cells := `INSERT INTO cells (board_id, idx, position, goal, is_achieved) VALUES ` + strings.Join(values, ", ")
	if _, err := r.db.ExecContext(ctx, cells, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes boardID if userID owns it. Cells cascade.
func (r *PostgresRepository) Delete(ctx context.Context, userID, boardID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE id = $1 AND user_id = $2`, boardID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM boards WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
