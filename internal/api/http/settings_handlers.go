package http

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/PolymerLabs/project-health-sub000/api/openapi"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/service/converter"
)

func (s *Server) HandlePushSubscribe(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req openapi.PostApiPushSubscriptionJSONRequestBody
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user := userFrom(r.Context())
	sub, err := s.app.User.Subscribe(r.Context(), user.Login, converter.PushSubscriptionFromOpenAPI(&req))
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusCreated, openapi.PushSubscriptionResponse{Id: sub.ID})
}

func (s *Server) HandlePushUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var params openapi.DeleteApiPushSubscriptionParams
	if err := runtime.BindQueryParameter("form", true, true, "endpoint", r.URL.Query(), &params.Endpoint); err != nil {
		s.writeDomainError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, "endpoint is required")
		return
	}

	user := userFrom(r.Context())
	if err := s.app.User.Unsubscribe(r.Context(), user.Login, params.Endpoint); err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.app.User.Logout(r.Context(), sessionID(r)); err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}
