package api

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
)

// TaskRequest defines the payload for creating or fully updating a task.
type TaskRequest struct {
	Title       string  `json:"title"       validate:"required,notblank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Status      string  `json:"status"      validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
	DueDate     string  `json:"dueDate"     validate:"required,datetime=2006-01-02T15:04"`
}

// TaskStatusRequest defines the payload for the status update endpoint.
type TaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED"`
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	DueDate     string    `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// toInput converts a validated request into service input.
func (r TaskRequest) toInput() (service.TaskInput, error) {
	dueDate, err := time.Parse(domain.DueDateLayout, r.DueDate)
	if err != nil {
		return service.TaskInput{}, domain.NewValidationError("dueDate", "has invalid format", err)
	}
	// The zero instant stands for "no due date" downstream.
	if dueDate.IsZero() {
		return service.TaskInput{}, domain.NewValidationError("dueDate", "is out of range", domain.ErrTaskDueDateOutOfRange)
	}

	return service.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      domain.TaskStatus(r.Status),
		DueDate:     dueDate,
	}, nil
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		DueDate:     task.DueDate.UTC().Format(domain.DueDateLayout),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	response := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, taskToResponse(task))
	}
	return response
}

// Client-facing validation messages, per field.
const (
	msgTitleRequired      = "Title is required"
	msgTitleTooLong       = "Title cannot be more than 100 characters"
	msgDescriptionTooLong = "Description cannot be more than 500 characters"
	msgStatusRequired     = "Status is required"
	msgStatusInvalid      = "Status must be one of TODO, IN_PROGRESS, COMPLETED"
	msgDueDateRequired    = "Due date is required"
	msgDueDateFormat      = "Due date must use format yyyy-MM-ddTHH:mm"
	msgDueDateRange       = "Due date must be after 0001-01-01T00:00"
)

// taskFieldMessage maps a failed validator tag on a task request field to its message.
func taskFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		if fe.Tag() == "max" {
			return msgTitleTooLong
		}
		return msgTitleRequired
	case "description":
		return msgDescriptionTooLong
	case "status":
		if fe.Tag() == "required" {
			return msgStatusRequired
		}
		return msgStatusInvalid
	case "dueDate":
		if fe.Tag() == "required" {
			return msgDueDateRequired
		}
		return msgDueDateFormat
	default:
		return "Invalid value"
	}
}
