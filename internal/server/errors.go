package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/katalvlaran/netxplore/anonymize"
	"github.com/katalvlaran/netxplore/community"
	"github.com/katalvlaran/netxplore/compare"
	"github.com/katalvlaran/netxplore/core"
	"github.com/katalvlaran/netxplore/customize"
	"github.com/katalvlaran/netxplore/internal/store"
	"github.com/katalvlaran/netxplore/pipeline"
)

// errBadRequest marks request-shape problems found by the handlers.
var errBadRequest = errors.New("bad request")

// badRequest lists errors that are the caller's fault.
var badRequest = []error{
	errBadRequest,
	pipeline.ErrEmptySourceID,
	community.ErrUnknownAlgorithm,
	community.ErrOptionViolation,
	compare.ErrUnknownMetric,
	compare.ErrInvalidOptions,
	customize.ErrUnknownColorBy,
	customize.ErrUnknownSizeBy,
	customize.ErrUnknownScheme,
	customize.ErrInvalidSettings,
	customize.ErrGraphNil,
	anonymize.ErrUnknownMode,
	anonymize.ErrUnknownPhase,
	store.ErrBadImport,
	store.ErrEmptyName,
	core.ErrEmptyNodeID,
	core.ErrDuplicateNode,
	core.ErrBadWeight,
}

// statusFor maps an error onto an HTTP status code.
func statusFor(err error) int {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, store.ErrSourceNotFound):
		return http.StatusNotFound
	case pipeline.IsTooLarge(err):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrDanglingLink):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

// respondError writes {"error": true, "message": ..., "code": ...}. Server
// faults are logged and reported without internal detail. Once the request
// deadline has passed the timeout middleware owns the response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(r.Context().Err(), context.DeadlineExceeded) {
		s.log.Warn("request timed out",
			zap.String("path", r.URL.Path),
			zap.String("requestID", requestID(r)),
			zap.Error(err))
		return
	}
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("requestID", requestID(r)),
			zap.Error(err))
		msg = http.StatusText(status)
	}
	s.respondJSON(w, status, map[string]any{
		"error":   true,
		"message": msg,
		"code":    status,
	})
}
