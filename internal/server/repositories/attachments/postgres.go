// Package attachments provides the PostgreSQL-backed repository for
// attachment metadata rows.
package attachments

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

// PostgresRepository implements attachment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// InsertBatch writes all rows in one multi-row INSERT. An empty slice is a
// no-op, not an error. Rows are written in the order given.
func (r *PostgresRepository) InsertBatch(ctx context.Context, rows []InsertRow) error {
	if len(rows) == 0 {
		return nil
	}
	builder := sq.Insert("attachments").
		Columns("todo_id", "file_url", "file_name").
		PlaceholderFormat(sq.Dollar)
	for _, row := range rows {
		builder = builder.Values(row.TodoID, row.FileURL, row.FileName)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert attachments: %v", common.ErrorPersistence, err)
	}
	return nil
}

// SelectAll returns every attachment row.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Attachment, error) {
	query := `
		SELECT id, todo_id, file_url, file_name, file_name_shortcut
		FROM attachments
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select attachments: %w", err)
	}
	defer rows.Close()

	var result []*models.Attachment
	for rows.Next() {
		var item models.Attachment
		if err := rows.Scan(&item.ID, &item.TodoID, &item.FileURL, &item.FileName, &item.FileNameShortcut); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SelectURLsByTodoID returns the access URLs of every attachment owned by
// one todo.
func (r *PostgresRepository) SelectURLsByTodoID(ctx context.Context, todoID int64) ([]string, error) {
	return r.selectURLs(ctx, `SELECT file_url FROM attachments WHERE todo_id=$1`, todoID)
}

// SelectURLsByDayTitle returns the access URLs of every attachment owned by
// any todo in the given day group.
func (r *PostgresRepository) SelectURLsByDayTitle(ctx context.Context, dayTitle string) ([]string, error) {
	query := `
		SELECT a.file_url FROM attachments a
		JOIN todos t ON a.todo_id = t.id
		WHERE t.day_title=$1
	`
	return r.selectURLs(ctx, query, dayTitle)
}

func (r *PostgresRepository) selectURLs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select attachment urls: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		result = append(result, url)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetURLByID returns the access URL of one attachment. A missing row yields
// common.ErrorNotFound.
func (r *PostgresRepository) GetURLByID(ctx context.Context, id int64) (string, error) {
	var url string
	err := r.db.QueryRowContext(ctx, `SELECT file_url FROM attachments WHERE id=$1`, id).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to select attachment: %w", err)
	}
	return url, nil
}

// Delete removes one attachment row and reports how many rows were affected.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	if err != nil {
		return 0, fmt.Errorf("%w: delete attachment: %v", common.ErrorPersistence, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
