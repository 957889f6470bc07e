package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
	"github.com/matzehuels/jsoncanvas/pkg/store"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and the message.
type ErrorDetail struct {
	Code    cerrors.Code `json:"code"`
	Message string       `json:"message"`
	Path    string       `json:"path,omitempty"`
}

// classify maps err onto an HTTP status and error code.
func classify(err error) (int, cerrors.Code) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, cerrors.ErrCodeCanvasNotFound
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge, cerrors.ErrCodeInvalidInput
	case cerrors.Is(err, cerrors.ErrCodeInvalidName), cerrors.Is(err, cerrors.ErrCodeInvalidInput):
		return http.StatusBadRequest, cerrors.GetCode(err)
	}

	code := canvas.ErrorCode(err)
	switch code {
	case cerrors.ErrCodeDuplicateNodeID, cerrors.ErrCodeDuplicateEdgeID:
		return http.StatusConflict, code
	case cerrors.ErrCodeInternal, cerrors.ErrCodeUnsupported, cerrors.ErrCodeInvalidConfig:
		return http.StatusInternalServerError, cerrors.ErrCodeInternal
	}
	return http.StatusUnprocessableEntity, code
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	detail := ErrorDetail{Code: code, Message: cerrors.UserMessage(err)}
	var pe *canvas.ParseError
	if errors.As(err, &pe) {
		detail.Path = pe.Path
	}
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		detail.Message = http.StatusText(status)
	}
	writeJSON(w, status, ErrorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
