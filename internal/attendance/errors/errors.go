package attendanceerrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance not found",
		http.StatusNotFound,
	)

	ErrDuplicateForDate = apperror.New(
		apperror.CodeConflict,
		"Attendance already exists for this date",
		http.StatusConflict,
	)

	ErrCheckOutBeforeCheckIn = apperror.New(
		apperror.CodeInvalidInput,
		"Check-out must be after check-in",
		http.StatusBadRequest,
	)

	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"Check-in and check-out must be valid RFC 3339 timestamps",
		http.StatusBadRequest,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You may only access your own attendance",
		http.StatusForbidden,
	)
)
