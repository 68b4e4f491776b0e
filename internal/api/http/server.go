package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PolymerLabs/project-health-sub000/api/openapi"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/service"
)

type Server struct {
	app           *service.App
	logger        *slog.Logger
	webhookSecret []byte
}

// NewServer builds the API server. An empty webhookSecret accepts unsigned
// webhook deliveries.
func NewServer(app *service.App, logger *slog.Logger, webhookSecret string) *Server {
	s := &Server{
		app:    app,
		logger: logger,
	}
	if webhookSecret != "" {
		s.webhookSecret = []byte(webhookSecret)
	}
	return s
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *Server) writeDomainError(w http.ResponseWriter, status int, code domain.ErrorCode, message string) {
	var resp openapi.ErrorResponse
	resp.Error.Code = openapi.ErrorResponseErrorCode(code)
	resp.Error.Message = message
	s.writeJSON(w, status, resp)
}

func (s *Server) handleError(w http.ResponseWriter, err error, defaultStatus int) {
	if err == nil {
		return
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		status := defaultStatus

		switch de.Code {
		case domain.ErrorCodeBadRequest:
			status = http.StatusBadRequest
		case domain.ErrorCodeUnauthenticated:
			status = http.StatusUnauthorized
		case domain.ErrorCodeForbidden:
			status = http.StatusForbidden
		case domain.ErrorCodeNotFound:
			status = http.StatusNotFound
		case domain.ErrorCodeUpstream:
			s.logger.Warn("upstream request failed", "error", err)
			status = http.StatusBadGateway
		case domain.ErrorCodeInternal:
			status = http.StatusInternalServerError
		}

		s.writeDomainError(w, status, de.Code, de.Message)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("request timed out", "error", err)
		s.writeDomainError(w, http.StatusGatewayTimeout, domain.ErrorCodeUpstream, "request timed out")
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		s.writeDomainError(w, http.StatusNotFound, domain.ErrorCodeNotFound, "resource not found")
		return
	}

	s.logger.Error("unexpected error", "error", err)
	s.writeDomainError(w, http.StatusInternalServerError, domain.ErrorCodeInternal, "internal server error")
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeDomainError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) ServeOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	if _, err := w.Write(openapi.Spec); err != nil {
		s.logger.Error("failed to write openapi spec", "error", err)
	}
}
