package reporterrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrSnapshotNotFound = apperror.New(apperror.CodeNotFound, "Report snapshot not found", http.StatusNotFound)
	ErrRangeIncomplete  = apperror.New(apperror.CodeInvalidInput, "Both rangeFrom and rangeTo are required", http.StatusBadRequest)
	ErrInvalidRange     = apperror.New(apperror.CodeInvalidInput, "rangeTo must be after or equal to rangeFrom", http.StatusBadRequest)
	ErrInvalidDate      = apperror.New(apperror.CodeInvalidInput, "Date must use the YYYY-MM-DD format", http.StatusBadRequest)
	ErrInvalidType      = apperror.New(apperror.CodeInvalidInput, "Unknown report type", http.StatusBadRequest)
)
