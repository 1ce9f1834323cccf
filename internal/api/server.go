// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"project-tracker/internal/approval"
	"project-tracker/internal/catalog"
	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Favorites interface {
	Load(ctx context.Context, user string) ([]string, error)
	Add(ctx context.Context, user, projectID string) error
	Remove(ctx context.Context, user, projectID string) error
}

type Searcher interface {
	Search(ctx context.Context, keywords string, category models.ProjectCategory, size int) ([]string, error)
}

// ReadyCheck reports whether a backing store is reachable.
type ReadyCheck func(ctx context.Context) error

type Server struct {
	catalog   *catalog.Service
	favorites Favorites
	approvals *approval.Service
	search    Searcher
	checks    map[string]ReadyCheck
	log       logger.Logger
}

type Options struct {
	Catalog   *catalog.Service
	Favorites Favorites
	Approvals *approval.Service
	Search    Searcher // optional
	Checks    map[string]ReadyCheck
}

func NewServer(opts Options, log logger.Logger) *Server {
	return &Server{
		catalog:   opts.Catalog,
		favorites: opts.Favorites,
		approvals: opts.Approvals,
		search:    opts.Search,
		checks:    opts.Checks,
		log:       log.WithFields(map[string]interface{}{"component": "http"}),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("GET /ready", s.ready)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/projects", s.listProjects)
	mux.HandleFunc("GET /api/projects/{id}", s.getProject)
	mux.HandleFunc("GET /api/favorites/{user}", s.listFavorites)
	mux.HandleFunc("POST /api/favorites/{user}", s.addFavorite)
	mux.HandleFunc("DELETE /api/favorites/{user}", s.removeFavorite)
	mux.HandleFunc("GET /api/dashboard", s.dashboard)
	mux.HandleFunc("GET /api/feedbacks", s.listFeedbacks)
	mux.HandleFunc("POST /api/feedbacks/{id}/response", s.respondFeedback)
	mux.HandleFunc("GET /api/change-requests", s.listChangeRequests)
	return mux
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	failures := map[string]string{}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	if s.catalog.Store().Len() == 0 {
		failures["catalog"] = "empty"
	}

	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "not ready", "failures": failures})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	category := models.ProjectCategory(r.URL.Query().Get("category"))
	if category != "" && !category.Valid() {
		s.writeError(w, errors.NewInvalidInputError("unknown category "+string(category)))
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	var projects []models.Project
	if category != "" {
		projects = s.catalog.Store().ByCategory(category)
	} else {
		projects = s.catalog.Store().All()
	}

	if q != "" {
		filtered, err := s.filter(r.Context(), projects, q, category)
		if err != nil {
			s.writeError(w, err)
			return
		}
		projects = filtered
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// filter narrows projects by keyword through the search index when one is
// configured, by name substring otherwise.
func (s *Server) filter(ctx context.Context, projects []models.Project, q string, category models.ProjectCategory) ([]models.Project, error) {
	if s.search == nil {
		var out []models.Project
		for _, p := range projects {
			if strings.Contains(p.Name, q) || strings.Contains(p.Location, q) {
				out = append(out, p)
			}
		}
		return out, nil
	}

	ids, err := s.search.Search(ctx, q, category, len(projects))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	out := make([]models.Project, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	ids, err := s.favorites.Load(r.Context(), r.PathValue("user"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": r.PathValue("user"), "projectIds": ids})
}

type favoriteRequest struct {
	ProjectID string `json:"projectId"`
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProjectID == "" {
		s.writeError(w, errors.NewInvalidInputError("body must be {\"projectId\": \"...\"}"))
		return
	}
	if _, err := s.catalog.Get(req.ProjectID); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.favorites.Add(r.Context(), r.PathValue("user"), req.ProjectID); err != nil {
		s.writeError(w, err)
		return
	}
	s.listFavorites(w, r)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("projectId")
	if id == "" {
		s.writeError(w, errors.NewInvalidInputError("projectId query parameter is required"))
		return
	}
	if err := s.favorites.Remove(r.Context(), r.PathValue("user"), id); err != nil {
		s.writeError(w, err)
		return
	}
	s.listFavorites(w, r)
}

type dashboardResponse struct {
	catalog.Stats
	Favorites        []models.Project `json:"favorites"`
	PendingApprovals int              `json:"pendingApprovals"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	resp := dashboardResponse{Stats: s.catalog.Store().Stats(), Favorites: []models.Project{}}

	if user := r.URL.Query().Get("user"); user != "" {
		ids, err := s.favorites.Load(r.Context(), user)
		if err != nil {
			s.writeError(w, err)
			return
		}
		for _, id := range ids {
			if p, err := s.catalog.Get(id); err == nil {
				resp.Favorites = append(resp.Favorites, p)
			}
		}
		if s.approvals != nil {
			resp.PendingApprovals = len(s.approvals.PendingFor(user))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listFeedbacks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Store().Feedbacks())
}

type feedbackResponseRequest struct {
	Response string                `json:"response"`
	Status   models.FeedbackStatus `json:"status,omitempty"`
}

func (s *Server) respondFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.NewInvalidInputError("body must be {\"response\": \"...\"}"))
		return
	}
	f, err := s.catalog.RespondFeedback(r.PathValue("id"), req.Response, req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) listChangeRequests(w http.ResponseWriter, _ *http.Request) {
	if s.approvals == nil {
		writeJSON(w, http.StatusOK, []models.ChangeRequest{})
		return
	}
	writeJSON(w, http.StatusOK, s.approvals.List())
}

func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeProjectNotFound, errors.ErrCodeChangeRequestNotFound, errors.ErrCodeFeedbackNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeChangeRequestInvalid:
		return http.StatusBadRequest
	case errors.ErrCodeApproverNotAuthorized:
		return http.StatusForbidden
	case errors.ErrCodeApprovalTransitionInvalid:
		return http.StatusConflict
	case errors.ErrCodeCatalogCacheFailed, errors.ErrCodeSearchIndexFailed:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	stdErr := errors.Normalize(err)
	status := statusFor(stdErr.Code)
	if status >= 500 {
		s.log.Error("request failed", map[string]interface{}{"code": string(stdErr.Code), "error": err.Error()})
	}
	writeJSON(w, status, stdErr)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
