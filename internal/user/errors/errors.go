package usererrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrSelfDeactivate = apperror.New(
		apperror.CodeForbidden,
		"You cannot deactivate your own account",
		http.StatusForbidden,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You may only access your own record",
		http.StatusForbidden,
	)
)
