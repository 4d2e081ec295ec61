// Package api handles incoming HTTP requests for the /tasks resource: path
// parsing, request validation, and response formatting. It translates
// HTTP concerns to calls on service.TaskService and maps the outcomes back to
// status codes, so the service layer never sees a request or a writer.
package api
