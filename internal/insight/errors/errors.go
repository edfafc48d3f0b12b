package insighterrors

import (
	"net/http"

	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/apperror"
)

var (
	ErrNoSnapshots        = apperror.New(apperror.CodeNotFound, "No report snapshots found", http.StatusNotFound)
	ErrRangeIncomplete    = apperror.New(apperror.CodeInvalidInput, "Both rangeFrom and rangeTo are required", http.StatusBadRequest)
	ErrInvalidRange       = apperror.New(apperror.CodeInvalidInput, "rangeTo must be after or equal to rangeFrom", http.StatusBadRequest)
	ErrInvalidDate        = apperror.New(apperror.CodeInvalidInput, "Date must use the YYYY-MM-DD format", http.StatusBadRequest)
	ErrUpstreamRequest    = apperror.New(apperror.CodeUpstreamFailure, "Model request failed", http.StatusBadGateway)
	ErrUpstreamEmpty      = apperror.New(apperror.CodeUpstreamFailure, "Model returned an empty response", http.StatusBadGateway)
	ErrUpstreamBadPayload = apperror.New(apperror.CodeUpstreamFailure, "Model returned invalid JSON", http.StatusBadGateway)
	ErrModelUnavailable   = apperror.New(apperror.CodeServiceUnavailable, "Model API key is missing", http.StatusServiceUnavailable)
)
