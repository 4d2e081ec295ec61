package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

const taskColumns = `id, title, description, status, due_date, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      string
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		task.Description = &description.String
	}
	task.Status = domain.TaskStatus(status)
	task.DueDate = task.DueDate.UTC()
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()

	return &task, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// FindAll implements store.TaskStore.FindAll
func (s *PostgresTaskStore) FindAll(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "find_all", "failed to query tasks", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", redact.Error(err)))
			return nil, store.NewStoreError("task", "find_all", "failed to scan task row", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "find_all", "error iterating task rows", MapError(err))
	}

	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID
func (s *PostgresTaskStore) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("task not found", slog.Int64("task_id", id))
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		log.Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "find_by_id", "failed to get task", MapError(err))
	}

	return task, nil
}

// Save implements store.TaskStore.Save
func (s *PostgresTaskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, store.NewStoreError("task", "save", "task cannot be nil", store.ErrInvalidEntity)
	}
	if task.ID == 0 {
		return s.insert(ctx, task)
	}
	return s.update(ctx, task)
}

func (s *PostgresTaskStore) insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stored := task.Clone()
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (title, description, status, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		stored.Title,
		nullableString(stored.Description),
		string(stored.Status),
		stored.DueDate,
		stored.CreatedAt,
		stored.UpdatedAt,
	).Scan(&stored.ID)
	if err != nil {
		log.Error("failed to insert task",
			slog.String("title", stored.Title),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "insert", "failed to insert task", MapError(err))
	}

	log.Debug("inserted task", slog.Int64("task_id", stored.ID))
	return stored, nil
}

func (s *PostgresTaskStore) update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stored := task.Clone()
	err := s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at
	`,
		stored.ID,
		stored.Title,
		nullableString(stored.Description),
		string(stored.Status),
		stored.DueDate,
		stored.UpdatedAt,
	).Scan(&stored.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no task to update", slog.Int64("task_id", stored.ID))
		return nil, store.ErrTaskNotFound
	}
	if err != nil {
		log.Error("failed to update task",
			slog.Int64("task_id", stored.ID),
			slog.String("error", redact.Error(err)))
		return nil, store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}

	stored.CreatedAt = stored.CreatedAt.UTC()
	log.Debug("updated task", slog.Int64("task_id", stored.ID))
	return stored, nil
}

// ExistsByID implements store.TaskStore.ExistsByID
func (s *PostgresTaskStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to check task existence",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return false, store.NewStoreError("task", "exists_by_id", "failed to check task existence", MapError(err))
	}
	return exists, nil
}

// DeleteByID implements store.TaskStore.DeleteByID
func (s *PostgresTaskStore) DeleteByID(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return store.NewStoreError("task", "delete_by_id", "failed to delete task", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		return store.NewStoreError("task", "delete_by_id", "failed to delete task", err)
	}

	log.Debug("deleted task", slog.Int64("task_id", id))
	return nil
}
