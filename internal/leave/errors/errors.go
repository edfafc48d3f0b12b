package leaveerrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"Leave request not found",
		http.StatusNotFound,
	)

	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"Leave request already decided",
		http.StatusConflict,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"To date must be after or equal to from date",
		http.StatusBadRequest,
	)

	ErrFromDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"From date must be today or in the future",
		http.StatusBadRequest,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You may only access your own leave requests",
		http.StatusForbidden,
	)
)
