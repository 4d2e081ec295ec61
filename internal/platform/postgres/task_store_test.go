package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

var taskRowColumns = []string{"id", "title", "description", "status", "due_date", "created_at", "updated_at"}

func newMockStore(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	_, log := logger.SetupTestLogger(t)
	return NewPostgresTaskStore(db, log), mock
}

func TestNewPostgresTaskStore_NilDB(t *testing.T) {
	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })
}

func TestPostgresTaskStore_FindAll(t *testing.T) {
	s, mock := newMockStore(t)
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(taskRowColumns).
		AddRow(int64(1), "Task 1", "Description 1", "TODO", due, now, now).
		AddRow(int64(2), "Task 2", nil, "COMPLETED", due, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks ORDER BY id")).WillReturnRows(rows)

	tasks, err := s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, int64(1), tasks[0].ID)
	require.NotNil(t, tasks[0].Description)
	assert.Equal(t, "Description 1", *tasks[0].Description)
	assert.Equal(t, domain.TaskStatusTodo, tasks[0].Status)
	assert.True(t, tasks[0].DueDate.Equal(due))

	assert.Equal(t, int64(2), tasks[1].ID)
	assert.Nil(t, tasks[1].Description)
	assert.Equal(t, domain.TaskStatusCompleted, tasks[1].Status)
}

func TestPostgresTaskStore_FindAll_Empty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(taskRowColumns))

	tasks, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestPostgresTaskStore_FindAll_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks ORDER BY id")).
		WillReturnError(errors.New("connection refused"))

	tasks, err := s.FindAll(context.Background())
	assert.Nil(t, tasks)

	var storeErr *store.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "find_all", storeErr.Operation)
}

func TestPostgresTaskStore_FindByID(t *testing.T) {
	s, mock := newMockStore(t)
	due := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow(int64(3), "Task 3", nil, "IN_PROGRESS", due, now, now))

	task, err := s.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), task.ID)
	assert.Equal(t, "Task 3", task.Title)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)
}

func TestPostgresTaskStore_FindByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	task, err := s.FindByID(context.Background(), 99)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestPostgresTaskStore_SaveInsertsNewTask(t *testing.T) {
	s, mock := newMockStore(t)
	desc := "Description 1"
	task, err := domain.NewTask("Task 1", &desc, domain.TaskStatusTodo, time.Now())
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs("Task 1", "Description 1", "TODO", task.DueDate, task.CreatedAt, task.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	saved, err := s.Save(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Zero(t, task.ID, "argument must not be modified")
	assert.Equal(t, "Task 1", saved.Title)
}

func TestPostgresTaskStore_SaveInsertsNullDescription(t *testing.T) {
	s, mock := newMockStore(t)
	task, err := domain.NewTask("Task 1", nil, domain.TaskStatusTodo, time.Now())
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WithArgs("Task 1", nil, "TODO", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	saved, err := s.Save(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.ID)
	assert.Nil(t, saved.Description)
}

func TestPostgresTaskStore_SaveUpdatesExistingTask(t *testing.T) {
	s, mock := newMockStore(t)
	task, err := domain.NewTask("Task 1", nil, domain.TaskStatusCompleted, time.Now())
	require.NoError(t, err)
	task.ID = 4
	created := time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).
		WithArgs(int64(4), "Task 1", nil, "COMPLETED", task.DueDate, task.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	saved, err := s.Save(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, int64(4), saved.ID)
	assert.True(t, saved.CreatedAt.Equal(created))
}

func TestPostgresTaskStore_SaveUpdateMissingTask(t *testing.T) {
	s, mock := newMockStore(t)
	task, err := domain.NewTask("Task 1", nil, domain.TaskStatusTodo, time.Now())
	require.NoError(t, err)
	task.ID = 42

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).
		WillReturnError(sql.ErrNoRows)

	saved, err := s.Save(context.Background(), task)
	assert.Nil(t, saved)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestPostgresTaskStore_SaveConstraintViolation(t *testing.T) {
	s, mock := newMockStore(t)
	task, err := domain.NewTask("Task 1", nil, domain.TaskStatusTodo, time.Now())
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WillReturnError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"})

	_, err = s.Save(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresTaskStore_SaveNil(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.Save(context.Background(), nil)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
}

func TestPostgresTaskStore_ExistsByID(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{"present", true},
		{"absent", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs(int64(1)).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))

			exists, err := s.ExistsByID(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tc.exists, exists)
		})
	}
}

func TestPostgresTaskStore_DeleteByID(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.DeleteByID(context.Background(), 1))
}

func TestPostgresTaskStore_DeleteByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteByID(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
