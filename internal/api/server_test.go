package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"project-tracker/internal/approval"
	"project-tracker/internal/catalog"
	"project-tracker/internal/common/errors"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearch struct {
	ids []string
	err error
}

func (s *stubSearch) Search(context.Context, string, models.ProjectCategory, int) ([]string, error) {
	return s.ids, s.err
}

func createTestServer(t *testing.T, opts Options) (*httptest.Server, *catalog.Service) {
	log := logger.NewTestLogger(t)
	seed := generator.SeedProjects()
	store := catalog.NewStore(seed)
	store.SetFeedbacks(generator.SeedFeedbacks(seed))
	svc := catalog.NewService(store, catalog.Backends{}, generator.DefaultCatalogOptions(), nil, log)

	opts.Catalog = svc
	if opts.Favorites == nil {
		opts.Favorites = catalog.NewMemoryFavorites()
	}
	if opts.Approvals == nil {
		dir := approval.NewDirectory([]models.UserProfile{
			{Name: "张总", EmployeeID: "NEPDI-S-001", Role: models.RoleAdmin},
			{Name: "王主任", EmployeeID: "NEPDI-S-020", Role: models.RoleManager},
		})
		opts.Approvals = approval.NewService(svc, dir, nil, log)
	}

	srv := httptest.NewServer(NewServer(opts, log).Handler())
	t.Cleanup(srv.Close)
	return srv, svc
}

func getJSON(t *testing.T, target string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(target)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ==========================
// Health / readiness
// ==========================

func TestHealthAndReady(t *testing.T) {
	srv, _ := createTestServer(t, Options{})

	var body map[string]interface{}
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/health", &body))
	assert.Equal(t, "healthy", body["status"])

	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/ready", &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReady_FailingCheck(t *testing.T) {
	srv, _ := createTestServer(t, Options{Checks: map[string]ReadyCheck{
		"redis": func(context.Context) error { return stderrors.New("connection refused") },
	}})

	var body map[string]interface{}
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/ready", &body))
	failures := body["failures"].(map[string]interface{})
	assert.Equal(t, "connection refused", failures["redis"])
}

// ==========================
// Projects
// ==========================

func TestListProjects(t *testing.T) {
	srv, _ := createTestServer(t, Options{})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantIDs    []string
	}{
		{name: "all", query: "", wantStatus: http.StatusOK, wantIDs: []string{"p1", "p1_2"}},
		{name: "by category", query: "?category=" + url.QueryEscape(string(models.CategoryGeneration)), wantStatus: http.StatusOK, wantIDs: []string{"p1", "p1_2"}},
		{name: "location keyword", query: "?q=" + url.QueryEscape("珠海"), wantStatus: http.StatusOK, wantIDs: []string{"p1_2"}},
		{name: "no match", query: "?q=" + url.QueryEscape("不存在的项目"), wantStatus: http.StatusOK, wantIDs: []string{}},
		{name: "unknown category", query: "?category=Mining", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/projects" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var projects []models.Project
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&projects))
			ids := make([]string, 0, len(projects))
			for _, p := range projects {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestListProjects_UsesSearchIndex(t *testing.T) {
	srv, _ := createTestServer(t, Options{Search: &stubSearch{ids: []string{"p1_2", "unknown", "p1"}}})

	var projects []models.Project
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/projects?q="+url.QueryEscape("热电"), &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, "p1_2", projects[0].ID)
	assert.Equal(t, "p1", projects[1].ID)
}

func TestListProjects_SearchFailure(t *testing.T) {
	srv, _ := createTestServer(t, Options{Search: &stubSearch{
		err: errors.NewSearchIndexFailedError("projects", stderrors.New("down")),
	}})

	var body errors.StandardError
	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, srv.URL+"/api/projects?q=x", &body))
	assert.Equal(t, errors.ErrCodeSearchIndexFailed, body.Code)
}

func TestGetProject(t *testing.T) {
	srv, _ := createTestServer(t, Options{})

	var p models.Project
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/projects/p1", &p))
	assert.Equal(t, "p1", p.ID)

	var body errors.StandardError
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/api/projects/missing", &body))
	assert.Equal(t, errors.ErrCodeProjectNotFound, body.Code)
}

// ==========================
// Favorites / dashboard
// ==========================

type favoritesBody struct {
	User       string   `json:"user"`
	ProjectIDs []string `json:"projectIds"`
}

func TestFavorites_AddListRemove(t *testing.T) {
	srv, _ := createTestServer(t, Options{})
	endpoint := srv.URL + "/api/favorites/" + url.PathEscape("李工")

	resp, err := http.Post(endpoint, "application/json", strings.NewReader(`{"projectId":"p1"}`))
	require.NoError(t, err)
	var fav favoritesBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fav))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"p1"}, fav.ProjectIDs)

	resp, err = http.Post(endpoint, "application/json", strings.NewReader(`{"projectId":"missing"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(endpoint, "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodDelete, endpoint+"?projectId=p1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	fav = favoritesBody{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fav))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, fav.ProjectIDs)
}

func TestDashboard(t *testing.T) {
	srv, svc := createTestServer(t, Options{})
	_, err := http.Post(srv.URL+"/api/favorites/"+url.PathEscape("王主任"), "application/json", strings.NewReader(`{"projectId":"p1_2"}`))
	require.NoError(t, err)

	var body struct {
		Projects         int              `json:"projects"`
		PendingFeedbacks int              `json:"pendingFeedbacks"`
		Favorites        []models.Project `json:"favorites"`
	}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/dashboard?user="+url.QueryEscape("王主任"), &body))
	assert.Equal(t, svc.Store().Len(), body.Projects)
	assert.Equal(t, 5, body.PendingFeedbacks)
	require.Len(t, body.Favorites, 1)
	assert.Equal(t, "p1_2", body.Favorites[0].ID)
}

func TestFeedbacksAndChangeRequests(t *testing.T) {
	srv, _ := createTestServer(t, Options{})

	var feedbacks []models.Feedback
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/feedbacks", &feedbacks))
	assert.Len(t, feedbacks, 9)

	var requests []models.ChangeRequest
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/change-requests", &requests))
	assert.Empty(t, requests)
}

func TestRespondFeedback(t *testing.T) {
	srv, svc := createTestServer(t, Options{})
	endpoint := srv.URL + "/api/feedbacks/f7/response"

	resp, err := http.Post(endpoint, "application/json", strings.NewReader(`{"response":"已安排赵工明天到现场核对偏差。"}`))
	require.NoError(t, err)
	var saved models.Feedback
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.FeedbackInProgress, saved.Status)
	assert.Equal(t, "已安排赵工明天到现场核对偏差。", saved.Response)

	stored, err := svc.Feedback("f7")
	require.NoError(t, err)
	assert.Equal(t, saved, stored)
	assert.Equal(t, 4, svc.Store().Stats().PendingFeedbacks)

	resp, err = http.Post(endpoint, "application/json", strings.NewReader(`{"response":"已出变更通知单。","status":"已响应"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	stored, _ = svc.Feedback("f7")
	assert.Equal(t, models.FeedbackResolved, stored.Status)

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"unknown feedback", srv.URL + "/api/feedbacks/f99/response", `{"response":"x"}`, http.StatusNotFound},
		{"empty response", endpoint, `{"response":"  "}`, http.StatusBadRequest},
		{"unknown status", endpoint, `{"response":"x","status":"已关闭"}`, http.StatusBadRequest},
		{"malformed body", endpoint, `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(tt.target, "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, statusFor(errors.ErrCodeApproverNotAuthorized))
	assert.Equal(t, http.StatusConflict, statusFor(errors.ErrCodeApprovalTransitionInvalid))
	assert.Equal(t, http.StatusBadRequest, statusFor(errors.ErrCodeChangeRequestInvalid))
	assert.Equal(t, http.StatusNotFound, statusFor(errors.ErrCodeFeedbackNotFound))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.ErrCodeInternal))
}
