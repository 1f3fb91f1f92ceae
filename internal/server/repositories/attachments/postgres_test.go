package attachments

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"daylist/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestInsertBatch_EmptyIsNoOp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	if err := repo.InsertBatch(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// no statements expected
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestInsertBatch_SingleStatementForAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := regexp.QuoteMeta(`INSERT INTO attachments (todo_id,file_url,file_name) VALUES ($1,$2,$3),($4,$5,$6)`)

	mock.ExpectExec(q).
		WithArgs(int64(1), "https://b/k1", "a.txt", int64(1), "https://b/k2", "b.txt").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.InsertBatch(context.Background(), []InsertRow{
		{TodoID: 1, FileURL: "https://b/k1", FileName: "a.txt"},
		{TodoID: 1, FileURL: "https://b/k2", FileName: "b.txt"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsertBatch_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO attachments`).
		WillReturnError(errors.New("db down"))

	err := repo.InsertBatch(context.Background(), []InsertRow{
		{TodoID: 1, FileURL: "https://b/k1", FileName: "a.txt"},
	})
	if !errors.Is(err, common.ErrorPersistence) {
		t.Fatalf("want ErrorPersistence, got %v", err)
	}
}

func TestSelectAll_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `SELECT id, todo_id, file_url, file_name, file_name_shortcut\s+FROM attachments`
	rows := sqlmock.NewRows([]string{"id", "todo_id", "file_url", "file_name", "file_name_shortcut"}).
		AddRow(int64(1), int64(10), "https://b/k1", "a.txt", nil).
		AddRow(int64(2), int64(11), "https://b/k2", "b.txt", "shortcut")

	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.SelectAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	if got[0].TodoID != 10 || got[0].FileNameShortcut != nil {
		t.Fatalf("bad row[0]: %+v", got[0])
	}
	if got[1].FileNameShortcut == nil || *got[1].FileNameShortcut != "shortcut" {
		t.Fatalf("bad row[1]: %+v", got[1])
	}
}

func TestSelectURLsByTodoID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"file_url"}).
		AddRow("https://b/k1").
		AddRow("https://b/k2")

	mock.ExpectQuery(`SELECT file_url FROM attachments WHERE todo_id=\$1`).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	got, err := repo.SelectURLsByTodoID(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "https://b/k1" {
		t.Fatalf("unexpected urls: %v", got)
	}
}

func TestSelectURLsByDayTitle_Joins(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)SELECT a\.file_url FROM attachments a\s+JOIN todos t ON a\.todo_id = t\.id\s+WHERE t\.day_title=\$1`
	rows := sqlmock.NewRows([]string{"file_url"}).AddRow("https://b/k1")

	mock.ExpectQuery(q).WithArgs("Monday").WillReturnRows(rows)

	got, err := repo.SelectURLsByDayTitle(context.Background(), "Monday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "https://b/k1" {
		t.Fatalf("unexpected urls: %v", got)
	}
}

func TestGetURLByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT file_url FROM attachments WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"file_url"}).AddRow("https://b/k3"))

	got, err := repo.GetURLByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://b/k3" {
		t.Fatalf("url = %q", got)
	}
}

func TestGetURLByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT file_url FROM attachments WHERE id=\$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetURLByID(context.Background(), 404)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM attachments WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.Delete(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("affected = %d, want 1", n)
	}
}
