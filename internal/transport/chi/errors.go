package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ruckc/clusterkraf/internal/domain/cluster"
	"github.com/ruckc/clusterkraf/internal/domain/projection"
	"github.com/ruckc/clusterkraf/internal/logger"
)

// ErrorCode is the machine-readable error code of an API error response.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest    ErrorCode = "bad_request"
	CodeUnauthorized  ErrorCode = "unauthorized"
	CodeUnprojectable ErrorCode = "unprojectable_point"
	CodeUnavailable   ErrorCode = "unavailable"
	CodeInternal      ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

var errorHandlers = []errorHandler{
	sentinelHandler(projection.ErrProjection, http.StatusUnprocessableEntity, CodeUnprojectable),
	sentinelHandler(cluster.ErrNoSeed, http.StatusInternalServerError, CodeInternal),
	sentinelHandler(cluster.ErrIndexOutOfRange, http.StatusInternalServerError, CodeInternal),
	sentinelHandler(context.Canceled, http.StatusServiceUnavailable, CodeUnavailable),
	sentinelHandler(context.DeadlineExceeded, http.StatusServiceUnavailable, CodeUnavailable),
}

func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// handleDomainError maps an error to a response without leaking internals.
func handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromContext(r.Context()).Warn("request failed", zap.Error(err))
	for _, h := range errorHandlers {
		if h(w, err) {
			return
		}
	}
	writeError(w, http.StatusInternalServerError, CodeInternal, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	writeJSONType(w, status, "application/json", v)
}

func writeJSONType(w http.ResponseWriter, status int, contentType string, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
