package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// TaskStatus represents where a task is in its lifecycle.
// Any status may change to any other status.
type TaskStatus string

// Possible task status values
const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// Field limits for Task.
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
)

// DueDateLayout is the wire format of a task due date (yyyy-MM-ddTHH:mm).
const DueDateLayout = "2006-01-02T15:04"

// Task-specific validation errors
var (
	ErrTaskTitleEmpty         = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong       = errors.New("task title is too long")
	ErrTaskDescriptionTooLong = errors.New("task description is too long")
	ErrInvalidTaskStatus      = errors.New("invalid task status")
	ErrTaskDueDateEmpty       = errors.New("task due date cannot be empty")
	ErrTaskDueDateOutOfRange  = errors.New("task due date is out of range")
)

// TaskStatuses returns every valid status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted}
}

// IsValid reports whether s is one of the defined statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s TaskStatus) String() string {
	return string(s)
}

// Task is a unit of work with a title, optional description, status and due date.
//
// ID is zero until the task has been saved for the first time; the store owns
// id assignment.
type Task struct {
	ID          int64
	Title       string
	Description *string
	Status      TaskStatus
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTask creates an unsaved Task and sets its creation/update timestamps.
// Returns an error if validation fails.
func NewTask(title string, description *string, status TaskStatus, dueDate time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Title:       title,
		Description: cloneString(description),
		Status:      status,
		DueDate:     normalizeDueDate(dueDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "is required", ErrTaskTitleEmpty)
	}

	if utf8.RuneCountInString(t.Title) > TitleMaxLength {
		return NewValidationError("title", "exceeds maximum length", ErrTaskTitleTooLong)
	}

	if t.Description != nil && utf8.RuneCountInString(*t.Description) > DescriptionMaxLength {
		return NewValidationError("description", "exceeds maximum length", ErrTaskDescriptionTooLong)
	}

	if !t.Status.IsValid() {
		return NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
	}

	if t.DueDate.IsZero() {
		return NewValidationError("dueDate", "is required", ErrTaskDueDateEmpty)
	}

	return nil
}

// Update replaces every mutable field. The task is left untouched if the new
// values are invalid.
func (t *Task) Update(title string, description *string, status TaskStatus, dueDate time.Time) error {
	updated := *t
	updated.Title = title
	updated.Description = cloneString(description)
	updated.Status = status
	updated.DueDate = normalizeDueDate(dueDate)

	if err := updated.Validate(); err != nil {
		return err
	}

	updated.UpdatedAt = time.Now().UTC()
	*t = updated
	return nil
}

// SetStatus changes only the status of the task.
func (t *Task) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return NewValidationError("status", "is not a known status", ErrInvalidTaskStatus)
	}

	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Description = cloneString(t.Description)
	return &c
}

// normalizeDueDate drops everything below minute precision, which is all the
// wire format can carry.
func normalizeDueDate(d time.Time) time.Time {
	if d.IsZero() {
		return d
	}
	return d.UTC().Truncate(time.Minute)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
