package financialerrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Financial record not found",
		http.StatusNotFound,
	)

	ErrDuplicateForMonth = apperror.New(
		apperror.CodeConflict,
		"Financial record already exists for this month",
		http.StatusConflict,
	)

	ErrNegativeAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Monetary amounts must not be negative",
		http.StatusBadRequest,
	)

	ErrOwnerNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrOwnerInactive = apperror.New(
		apperror.CodeInvalidInput,
		"User is inactive",
		http.StatusBadRequest,
	)

	ErrNotOwner = apperror.New(
		apperror.CodeForbidden,
		"You may only access your own financial records",
		http.StatusForbidden,
	)
)
