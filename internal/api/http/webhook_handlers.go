package http

import (
	"errors"
	"net/http"

	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/github"
)

// HandleWebhook verifies and decodes a GitHub delivery and dispatches it.
// Event types the service does not act on are acknowledged with 202.
func (s *Server) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	hook, err := github.ParseWebhook(r, s.webhookSecret)
	switch {
	case errors.Is(err, github.ErrUnsupportedEvent):
		s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "ignored"})
		return
	case err != nil:
		s.logger.Warn("rejected webhook delivery", "event", r.Header.Get("X-GitHub-Event"), "error", err)
		s.writeDomainError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "invalid webhook delivery")
		return
	}

	if err := s.app.Webhook.Handle(r.Context(), hook); err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
