package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/PolymerLabs/project-health-sub000/api/openapi"
	"github.com/PolymerLabs/project-health-sub000/internal/domain"
	"github.com/PolymerLabs/project-health-sub000/internal/service/converter"
)

func (s *Server) HandleDashData(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	data, err := s.app.Dashboard.FetchUserData(r.Context(), user.Login, user.Token)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	resp, err := converter.DashboardToOpenAPI(data)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleLastViewed(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	at, err := s.app.User.MarkViewed(r.Context(), user.Login)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, openapi.LastViewedResponse{LastViewedAt: at})
}

func (s *Server) HandleAutomergeSet(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req openapi.PostApiAutomergeJSONRequestBody
	if !s.decodeJSON(w, r, &req) {
		return
	}

	ref, opt := converter.AutomergeFromOpenAPI(&req)
	if err := s.app.User.SetAutomerge(r.Context(), userFrom(r.Context()), ref, opt); err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) HandleAutomergeGet(w http.ResponseWriter, r *http.Request) {
	var ref domain.PullRequestRef
	params := []struct {
		name string
		dest any
	}{
		{"owner", &ref.Owner},
		{"repo", &ref.Repo},
		{"number", &ref.Number},
	}
	for _, p := range params {
		err := runtime.BindStyledParameterWithOptions("simple", p.name, chi.URLParam(r, p.name), p.dest,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			s.writeDomainError(w, http.StatusBadRequest, domain.ErrorCodeBadRequest, fmt.Sprintf("invalid parameter %s", p.name))
			return
		}
	}

	opt, err := s.app.User.GetAutomerge(r.Context(), ref)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, openapi.AutomergeResponse{Option: openapi.AutomergeOption(opt)})
}
