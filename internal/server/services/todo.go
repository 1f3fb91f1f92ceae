// Package services contains the request orchestrators. Each public method
// sequences the relational reads/writes and object-store calls for one
// endpoint. Consistency between the two stores is best effort: statements
// commit independently and no compensating action is taken when a later
// step fails after an earlier one committed.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"daylist/internal/common"
	"daylist/internal/filex"
	"daylist/internal/logging"
	"daylist/internal/server/models"
	"daylist/internal/server/repositories/attachments"
	"daylist/internal/server/repositories/repomanager"
	"daylist/internal/server/repositories/todos"
	"daylist/internal/server/storage"
)

type TodoService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	store  storage.ObjectStore
	logger logging.Logger
}

func NewTodoService(db *sql.DB, repos repomanager.RepositoryManager, store storage.ObjectStore, logger logging.Logger) *TodoService {
	return &TodoService{
		db:     db,
		repos:  repos,
		store:  store,
		logger: logger.With("module", "todo_service"),
	}
}

// CreateParams mirror the create request body. Empty optional text fields
// are stored as NULL rather than as empty strings.
type CreateParams struct {
	DayTitle        string
	TaskNumber      int
	TaskDescription string
	TaskTitle       string
}

// UpdateParams carry only the fields present in the request; nil pointers
// mean "not submitted". IsCompleted holds the raw wire value and is applied
// only when it parses to exactly 0 or 1. ShortcutName overrides the display
// name of the first file in request order.
type UpdateParams struct {
	TaskDescription *string
	DayTitle        *string
	TaskTitle       *string
	IsCompleted     *string
	ShortcutName    string
	Files           []storage.FilePayload
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create inserts one todo and reads it back by its freshly assigned id.
func (s *TodoService) Create(ctx context.Context, p CreateParams) (*models.Todo, error) {
	repo := s.repos.Todos(s.db)
	id, err := repo.Create(ctx, todos.CreateParams{
		DayTitle:        nullable(p.DayTitle),
		TaskNumber:      p.TaskNumber,
		TaskDescription: p.TaskDescription,
		TaskTitle:       nullable(p.TaskTitle),
	})
	if err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, id)
}

// List returns all todos newest-first with their attachments nested.
func (s *TodoService) List(ctx context.Context) ([]*models.Todo, error) {
	items, err := s.repos.Todos(s.db).SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	atts, err := s.repos.Attachments(s.db).SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	byTodo := make(map[int64][]*models.Attachment, len(items))
	for _, a := range atts {
		byTodo[a.TodoID] = append(byTodo[a.TodoID], a)
	}
	for _, t := range items {
		t.Attachments = byTodo[t.ID]
		if t.Attachments == nil {
			t.Attachments = []*models.Attachment{}
		}
	}
	return items, nil
}

// Update applies a partial text update and/or attaches new files. The two
// steps commit independently: a failed upload does not roll back an already
// committed text update. A request carrying neither fields nor files is
// rejected. Updating a missing todo is not an error; a file upload for it
// is still attempted.
func (s *TodoService) Update(ctx context.Context, id int64, p UpdateParams) error {
	fields := map[string]any{}

	if p.IsCompleted != nil {
		status, err := strconv.Atoi(*p.IsCompleted)
		if err == nil && (status == 0 || status == 1) {
			fields["is_completed"] = status
		} else {
			s.logger.Warn(ctx, "ignoring invalid is_completed value", "value", *p.IsCompleted)
		}
	}
	if p.TaskDescription != nil {
		fields["task_description"] = *p.TaskDescription
	}
	if p.DayTitle != nil {
		fields["day_title"] = nullable(*p.DayTitle)
	}
	if p.TaskTitle != nil {
		fields["task_title"] = nullable(*p.TaskTitle)
	}

	if len(fields) == 0 && len(p.Files) == 0 {
		return fmt.Errorf("%w: no fields to update or files to upload", common.ErrorBadRequest)
	}

	if len(fields) > 0 {
		affected, err := s.repos.Todos(s.db).UpdateFields(ctx, id, fields)
		if err != nil {
			return err
		}
		if affected == 0 {
			s.logger.Warn(ctx, "todo not found for text update", "id", id)
		}
	}

	if len(p.Files) > 0 {
		return s.attachFiles(ctx, id, p.Files, p.ShortcutName)
	}
	return nil
}

// AttachFiles implements the standalone bulk-upload endpoint. The parent
// todo is not checked for existence.
func (s *TodoService) AttachFiles(ctx context.Context, todoID int64, files []storage.FilePayload, shortcut string) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: no files uploaded", common.ErrorBadRequest)
	}
	return s.attachFiles(ctx, todoID, files, shortcut)
}

// attachFiles uploads each file in request order, applies the shortcut
// display name to the first file only, and records all resulting rows in a
// single batched insert once every upload has succeeded. Uploads that did
// succeed are not rolled back when the insert fails.
func (s *TodoService) attachFiles(ctx context.Context, todoID int64, files []storage.FilePayload, shortcut string) error {
	rows := make([]attachments.InsertRow, 0, len(files))
	for i, f := range files {
		res, err := s.store.Upload(ctx, f)
		if err != nil {
			return err
		}
		name := f.Name
		if shortcut != "" && i == 0 {
			name = shortcut + filex.Ext(f.Name)
		}
		rows = append(rows, attachments.InsertRow{TodoID: todoID, FileURL: res.URL, FileName: name})
	}
	return s.repos.Attachments(s.db).InsertBatch(ctx, rows)
}

// Delete removes one todo and fans out object deletes for its attachments.
// The relational rows are removed first; a failed object delete fails the
// whole request even though the rows are already gone.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	todoRepo := s.repos.Todos(s.db)
	attRepo := s.repos.Attachments(s.db)

	urls, err := attRepo.SelectURLsByTodoID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := todoRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if _, err := todoRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.deleteObjects(ctx, urls); err != nil {
		return err
	}
	s.logger.Info(ctx, "deleted todo with attachments", "id", id, "attachments", len(urls))
	return nil
}

// DeleteAttachment removes one attachment row and then its object. A missing
// row yields common.ErrorAlreadyGone so callers can report it as such rather
// than as a failure. An object delete failure after the row is gone leaves
// an orphaned object.
func (s *TodoService) DeleteAttachment(ctx context.Context, id int64) error {
	repo := s.repos.Attachments(s.db)

	url, err := repo.GetURLByID(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorAlreadyGone
	}
	if err != nil {
		return err
	}

	if _, err := repo.Delete(ctx, id); err != nil {
		return err
	}

	if key, ok := storage.KeyFromURL(url); ok {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
		s.logger.Info(ctx, "deleted object", "key", key)
	}
	return nil
}

// DeleteDayGroup removes every todo carrying the given day title. Attachment
// rows go with them through the schema's ON DELETE CASCADE; their objects
// are fanned out for deletion here afterwards.
func (s *TodoService) DeleteDayGroup(ctx context.Context, dayTitle string) error {
	urls, err := s.repos.Attachments(s.db).SelectURLsByDayTitle(ctx, dayTitle)
	if err != nil {
		return err
	}

	affected, err := s.repos.Todos(s.db).DeleteByDayTitle(ctx, dayTitle)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: no tasks for day title %q", common.ErrorNotFound, dayTitle)
	}

	return s.deleteObjects(ctx, urls)
}

// deleteObjects dispatches one object delete per derivable key and waits for
// all of them together; the first failure cancels the group and is returned.
func (s *TodoService) deleteObjects(ctx context.Context, urls []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, u := range urls {
		key, ok := storage.KeyFromURL(u)
		if !ok {
			continue
		}
		g.Go(func() error {
			return s.store.Delete(ctx, key)
		})
	}
	return g.Wait()
}
