package todos

import (
	"context"

	"daylist/internal/server/models"
)

// CreateParams are the columns a client may supply when creating a todo.
// Nil pointers are stored as NULL.
type CreateParams struct {
	DayTitle        *string
	TaskNumber      int
	TaskDescription string
	TaskTitle       *string
}

type Repository interface {
	Create(ctx context.Context, p CreateParams) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Todo, error)
	SelectAll(ctx context.Context) ([]*models.Todo, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByDayTitle(ctx context.Context, dayTitle string) (int64, error)
}
