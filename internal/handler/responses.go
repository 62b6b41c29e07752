package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/ArsenalSync_Go/internal/domain"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Snapshot and status payloads are a few KB; anything much larger is
// released instead of pinned in the pool
const (
	responseBufferSize    = 1024
	maxPooledResponseSize = 64 * 1024
)

var responseBuffers = sync.Pool{
	New: func() any { return bytes.NewBuffer(make([]byte, 0, responseBufferSize)) },
}

func getBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledResponseSize {
		return
	}
	buf.Reset()
	responseBuffers.Put(buf)
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// respondServiceError logs err and writes the mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, message, code := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", op, "status", status, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "op", op, "status", status, "error", err)
	}
	respondError(w, status, message, code)
}

// mapServiceErrorToUserMessage maps the error taxonomy onto HTTP status codes
// and messages users can act on
func mapServiceErrorToUserMessage(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError, CodeInternal
	}

	switch domain.Classify(err) {
	case domain.ClassNotInitialized:
		return http.StatusServiceUnavailable, ErrMsgNotInitialized, CodeNotInitialized

	case domain.ClassValidation:
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return validationStatus(verr)
		}
		if errors.Is(err, domain.ErrRuleNotFound) {
			return http.StatusNotFound, ErrMsgUnknownTower, CodeRuleNotFound
		}
		return http.StatusBadRequest, ErrMsgInvalidInputError, CodeInvalidInput

	case domain.ClassRemote:
		var rerr *domain.RemoteError
		if errors.As(err, &rerr) {
			switch rerr.Kind {
			case domain.RemoteConnectivity:
				return http.StatusServiceUnavailable, ErrMsgRemoteUnavailable, CodeRemote
			case domain.RemotePermission:
				return http.StatusBadGateway, ErrMsgRemotePermission, CodeRemote
			}
		}
		return http.StatusBadGateway, ErrMsgRemoteFailure, CodeRemote

	case domain.ClassConsistency:
		return http.StatusConflict, ErrMsgConsistencyConflict, CodeConsistency
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError, CodeInternal
}

func validationStatus(verr *domain.ValidationError) (int, string, string) {
	code := string(verr.Kind)
	switch verr.Kind {
	case domain.ValidationAlreadyOwned:
		return http.StatusConflict, ErrMsgAlreadyOwned, code
	case domain.ValidationNotOwned:
		return http.StatusNotFound, ErrMsgNotOwned, code
	case domain.ValidationSelectionOverQuota:
		return http.StatusUnprocessableEntity, ErrMsgSelectionOverQuota, code
	case domain.ValidationUnknownOrdinal:
		return http.StatusBadRequest, ErrMsgUnknownOrdinal, code
	case domain.ValidationLocked:
		return http.StatusForbidden, ErrMsgLocked, code
	default:
		return http.StatusBadRequest, ErrMsgInvalidInputError, code
	}
}
