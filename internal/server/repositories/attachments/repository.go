package attachments

import (
	"context"

	"daylist/internal/server/models"
)

// InsertRow is one (parent todo id, url, display name) tuple to record.
type InsertRow struct {
	TodoID   int64
	FileURL  string
	FileName string
}

type Repository interface {
	InsertBatch(ctx context.Context, rows []InsertRow) error
	SelectAll(ctx context.Context) ([]*models.Attachment, error)
	SelectURLsByTodoID(ctx context.Context, todoID int64) ([]string, error)
	SelectURLsByDayTitle(ctx context.Context, dayTitle string) ([]string, error)
	GetURLByID(ctx context.Context, id int64) (string, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
