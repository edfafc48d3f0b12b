package autherrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(apperror.CodeUnauthorized, "Invalid credentials", http.StatusUnauthorized)
	ErrUserNotFound       = apperror.New(apperror.CodeUnauthorized, "User not found", http.StatusUnauthorized)
	ErrAccountInactive    = apperror.New(apperror.CodeForbidden, "User account is inactive", http.StatusForbidden)
	ErrOldPassword        = apperror.New(apperror.CodeInvalidInput, "Old password is incorrect", http.StatusBadRequest)
	ErrTokenGeneration    = apperror.New(apperror.CodeInternalError, "Could not issue access token", http.StatusInternalServerError)
)
