package persistence

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/query"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var insertOutbox = regexp.QuoteMeta("INSERT INTO outbox")

func TestWithTx_CommitsWithOutbox(t *testing.T) {
	db, mock := newMock(t)
	evt := domain.NewOutboxEvent("course", "c-1", "course.approved", map[string]string{"title": "Go"})

	mock.ExpectBegin()
	mock.ExpectExec(insertOutbox).
		WithArgs(evt.ID.String(), "course", "c-1", "course.approved", `{"title":"Go"}`, sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		return InsertOutboxBatchTx(context.Background(), tx, SQLite, []domain.OutboxEvent{evt})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_DomainErrorRollsBackUntouched(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	notFound := domain.NewNotFoundError("Course not found")
	err := WithTx(context.Background(), db, func(tx *sql.Tx) error { return notFound })

	assert.Same(t, notFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_DriverErrorIsUpstream(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(insertOutbox).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		return InsertOutboxTx(context.Background(), tx, Postgres, domain.NewOutboxEvent("user", "u-1", "user.registered", nil))
	})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.False(t, upstream.Gateway)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryPage_CountUnreachableIsGateway(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses")).
		WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})

	_, _, err := QueryPage(context.Background(), db, SQLite, "courses", "id", nil,
		query.ResolveOptions(map[string]string{}, nil), Columns{"createdAt": "created_at"},
		func(s RowScanner) (string, error) { return "", nil })

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.True(t, upstream.Gateway)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryPage_ScansRowsInOrder(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM courses ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?")).
		WithArgs(5, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("a").AddRow("b"))

	opts := query.ResolveOptions(map[string]string{"page": "2", "limit": "5"}, nil)
	items, total, err := QueryPage(context.Background(), db, SQLite, "courses", "id", nil, opts,
		Columns{"createdAt": "created_at"},
		func(s RowScanner) (string, error) {
			var id string
			err := s.Scan(&id)
			return id, err
		})

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Equal(t, []string{"a", "b"}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExists(t *testing.T) {
	db, mock := newMock(t)
	q := "SELECT 1 FROM courses WHERE slug = ?"

	mock.ExpectQuery(regexp.QuoteMeta(q)).WithArgs("go").WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(q)).WithArgs("rust").WillReturnRows(sqlmock.NewRows([]string{"one"}))

	ok, err := Exists(context.Background(), db, SQLite, q, "go")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(context.Background(), db, SQLite, q, "rust")
	require.NoError(t, err)
	assert.False(t, ok)
}
