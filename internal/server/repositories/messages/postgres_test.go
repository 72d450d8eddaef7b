package messages

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var (
	cols = []string{"id", "user_id", "content", "type", "is_hidden", "created_at"}
	now  = time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+messages\s*\(user_id,\s*content,\s*type\)`).
		WithArgs(int64(1), "hi", models.MessageTypeText).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), now))

	m, err := repo.Create(context.Background(), &models.Message{UserID: 1, Content: "hi", Type: models.MessageTypeText})
	require.NoError(t, err)
	assert.Equal(t, int64(5), m.ID)
}

func TestListByUser_ExcludesHidden(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+messages\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+NOT\s+is_hidden`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(int64(1), int64(1), "hi", "text", false, now))

	got, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsHidden)
}

func TestList_IncludesHidden(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+messages\s+ORDER\s+BY\s+id\s+LIMIT\s+\$1\s+OFFSET\s+\$2`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(1), "hi", "text", false, now).
			AddRow(int64(2), int64(2), "spam", "text", true, now))

	got, err := repo.List(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].IsHidden)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM messages WHERE id = \$1`).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHideAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^UPDATE messages SET is_hidden = TRUE WHERE id = \$1$`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^UPDATE messages SET is_hidden = TRUE WHERE id = \$1$`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^DELETE FROM messages WHERE id = \$1$`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Hide(context.Background(), 1))
	assert.ErrorIs(t, repo.Hide(context.Background(), 2), common.ErrorNotFound)
	require.NoError(t, repo.Delete(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE FROM messages WHERE user_id = \$1$`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 6))

	n, err := repo.DeleteByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestList_RowErrorsAreWrapped(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	rowErr := errors.New("connection reset")

	mock.ExpectQuery(`(?s)FROM\s+messages\s+ORDER\s+BY\s+id`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(1), "hi", "text", false, now).
			RowError(0, rowErr))

	_, err := repo.List(context.Background(), 0, 50)
	require.ErrorIs(t, err, rowErr)
	assert.Contains(t, err.Error(), "db error")
}

func TestListByUser_ScanErrorIsWrapped(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+messages\s+WHERE\s+user_id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow("not-a-number", int64(1), "hi", "text", false, now))

	_, err := repo.ListByUser(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}
