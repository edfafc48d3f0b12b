package taskerrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"Task not found",
		http.StatusNotFound,
	)

	ErrInvalidTransition = apperror.New(
		apperror.CodeConflict,
		"Invalid task status transition",
		http.StatusConflict,
	)

	ErrDueDateNotFuture = apperror.New(
		apperror.CodeInvalidInput,
		"Due date must be in the future",
		http.StatusBadRequest,
	)

	ErrInvalidDueDate = apperror.New(
		apperror.CodeInvalidInput,
		"Due date must be a valid RFC 3339 timestamp",
		http.StatusBadRequest,
	)

	ErrAssigneeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Assignee not found",
		http.StatusNotFound,
	)

	ErrAssigneeInactive = apperror.New(
		apperror.CodeInvalidInput,
		"Assignee is not active",
		http.StatusBadRequest,
	)

	ErrFieldNotPermitted = apperror.New(
		apperror.CodeForbidden,
		"Field not permitted for role",
		http.StatusForbidden,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You may only access tasks assigned to you",
		http.StatusForbidden,
	)
)
