package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskInput carries the caller-supplied fields of a task for create and
// full update. It has no ID; the store assigns ids and updates take the id
// separately.
type TaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	DueDate     time.Time
}

// TaskService provides task-related operations
type TaskService interface {
	// GetAllTasks returns every task.
	GetAllTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTaskByID returns the task with the given id or ErrTaskNotFound.
	GetTaskByID(ctx context.Context, id int64) (*domain.Task, error)

	// CreateTask persists a new task and returns it with its assigned id.
	CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error)

	// UpdateTask overwrites title, description, status and due date of an
	// existing task. Returns ErrTaskNotFound if the task does not exist.
	UpdateTask(ctx context.Context, id int64, input TaskInput) (*domain.Task, error)

	// UpdateTaskStatus overwrites only the status of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateTaskStatus(ctx context.Context, id int64, status domain.TaskStatus) (*domain.Task, error)

	// DeleteTask removes a task. Returns ErrTaskNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id int64) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// GetAllTasks implements TaskService.GetAllTasks
func (s *taskServiceImpl) GetAllTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskStore.FindAll(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("get_all_tasks", "failed to list tasks", err)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get_task", "failed to retrieve task", id, err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, input TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(input.Title, input.Description, input.Status, input.DueDate)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.taskStore.Save(ctx, task)
	if err != nil {
		log.Error("failed to save new task",
			slog.String("title", input.Title),
			slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.Int64("task_id", created.ID))
	return created, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	input TaskInput,
) (*domain.Task, error) {
	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "update_task", "failed to retrieve task", id, err)
	}

	if err := task.Update(input.Title, input.Description, input.Status, input.DueDate); err != nil {
		return nil, err
	}

	updated, err := s.taskStore.Save(ctx, task)
	if err != nil {
		return nil, s.fail(ctx, "update_task", "failed to save task", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated", slog.Int64("task_id", id))
	return updated, nil
}

// UpdateTaskStatus implements TaskService.UpdateTaskStatus
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id int64,
	status domain.TaskStatus,
) (*domain.Task, error) {
	task, err := s.taskStore.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "update_task_status", "failed to retrieve task", id, err)
	}

	previous := task.Status
	if err := task.SetStatus(status); err != nil {
		return nil, err
	}

	updated, err := s.taskStore.Save(ctx, task)
	if err != nil {
		return nil, s.fail(ctx, "update_task_status", "failed to save task", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task status changed",
		slog.Int64("task_id", id),
		slog.String("from", previous.String()),
		slog.String("to", status.String()))
	return updated, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	exists, err := s.taskStore.ExistsByID(ctx, id)
	if err != nil {
		return s.fail(ctx, "delete_task", "failed to check task existence", id, err)
	}
	if !exists {
		return ErrTaskNotFound
	}

	if err := s.taskStore.DeleteByID(ctx, id); err != nil {
		return s.fail(ctx, "delete_task", "failed to delete task", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// fail converts a store error into the service's error contract. Not-found is
// expected and logged at debug; anything else is logged at error.
func (s *taskServiceImpl) fail(ctx context.Context, operation, message string, id int64, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if store.IsNotFoundError(err) {
		log.Debug("task not found",
			slog.String("operation", operation),
			slog.Int64("task_id", id))
		return ErrTaskNotFound
	}

	log.Error(message,
		slog.String("operation", operation),
		slog.Int64("task_id", id),
		slog.String("error", redact.Error(err)))
	return NewTaskServiceError(operation, message, err)
}
