// Package todos provides the PostgreSQL-backed repository for todo rows.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"daylist/internal/common"
	"daylist/internal/dbx"
	"daylist/internal/server/models"
)

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts one todo and returns the freshly assigned id.
func (r *PostgresRepository) Create(ctx context.Context, p CreateParams) (int64, error) {
	query := `
		INSERT INTO todos (day_title, task_number, task_description, task_title)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, p.DayTitle, p.TaskNumber, p.TaskDescription, p.TaskTitle).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: insert todo: %v", common.ErrorPersistence, err)
	}
	return id, nil
}

// GetByID returns one todo without its attachments. A missing row yields
// common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Todo, error) {
	query := `
		SELECT id, day_title, task_number, task_description, task_title, is_completed, created_at
		FROM todos WHERE id=$1
	`
	t := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.DayTitle, &t.TaskNumber, &t.TaskDescription, &t.TaskTitle, &t.IsCompleted, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select todo: %w", err)
	}
	return t, nil
}

// SelectAll returns every todo, newest first.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Todo, error) {
	query := `
		SELECT id, day_title, task_number, task_description, task_title, is_completed, created_at
		FROM todos ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(
			&item.ID, &item.DayTitle, &item.TaskNumber, &item.TaskDescription,
			&item.TaskTitle, &item.IsCompleted, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateFields applies a sparse column map to one todo and reports how many
// rows were affected. Callers decide what a zero count means; it is not an
// error here. The map must not be empty.
func (r *PostgresRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, fmt.Errorf("no fields to update")
	}
	query, args, err := sq.Update("todos").
		SetMap(fields).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: update todo: %v", common.ErrorPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// Delete removes one todo row and reports how many rows were affected.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id=$1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete todo: %v", common.ErrorPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// DeleteByDayTitle removes every todo carrying the given day title and
// reports how many rows were affected.
func (r *PostgresRepository) DeleteByDayTitle(ctx context.Context, dayTitle string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE day_title=$1`, dayTitle)
	if err != nil {
		return 0, fmt.Errorf("%w: delete day group: %v", common.ErrorPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
