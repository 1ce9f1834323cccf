// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-tracker/internal/api"
	"project-tracker/internal/approval"
	"project-tracker/internal/catalog"
	"project-tracker/internal/common/logger"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	notifyapprover "project-tracker/internal/workers/approval/notify-approver"
	reviewchangerequest "project-tracker/internal/workers/approval/review-change-request"
	submitchangerequest "project-tracker/internal/workers/approval/submit-change-request"
	draftresponse "project-tracker/internal/workers/assistant/draft-response"
	rebuildcatalog "project-tracker/internal/workers/generation/rebuild-catalog"
)

const e2eSeed = 20240101

// fakeElasticsearch accepts bulk and single-document writes and answers
// every search with the IDs in hits.
type fakeElasticsearch struct {
	mu       sync.Mutex
	bulks    int
	docs     []string
	hits     []string
	searches int
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/_bulk":
		f.bulks++
		_, _ = w.Write([]byte(`{"took":1,"errors":false,"items":[]}`))
	case strings.HasSuffix(r.URL.Path, "/_search"):
		f.searches++
		hits := make([]map[string]interface{}, 0, len(f.hits))
		for _, id := range f.hits {
			hits = append(hits, map[string]interface{}{"_id": id, "_source": map[string]string{"id": id}})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"hits": map[string]interface{}{"total": map[string]int{"value": len(hits)}, "hits": hits},
		})
	case strings.Contains(r.URL.Path, "/_doc/"):
		f.docs = append(f.docs, r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:])
		_, _ = w.Write([]byte(`{"result":"updated"}`))
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}

type recordingEmail struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingEmail) SendText(_ context.Context, _, to, _, _ string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to)
	return "msg-" + to, nil
}

type environment struct {
	redis     *miniredis.Miniredis
	rdb       *redis.Client
	es        *fakeElasticsearch
	index     *catalog.SearchIndex
	catalog   *catalog.Service
	approvals *approval.Service
	directory *approval.Directory
	log       logger.Logger
}

func newEnvironment(t *testing.T) *environment {
	t.Helper()
	log := logger.NewTestLogger(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	fake := &fakeElasticsearch{}
	esSrv := httptest.NewServer(fake)
	t.Cleanup(esSrv.Close)
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esSrv.URL}})
	require.NoError(t, err)
	index := catalog.NewSearchIndex(es, "projects")

	backends := catalog.Backends{
		Snapshot: catalog.NewSnapshotCache(rdb, time.Hour),
		Search:   index,
	}
	cat := catalog.NewService(catalog.NewStore(nil), backends, generator.DefaultCatalogOptions(), nil, log)

	dir := approval.NewDirectory([]models.UserProfile{
		{Name: "张总", EmployeeID: "NEPDI-S-001", Role: models.RoleAdmin, Email: "zhang@nepdi.example.com"},
		{Name: "王主任", EmployeeID: "NEPDI-S-020", Role: models.RoleManager, Email: "wang@nepdi.example.com"},
		{Name: "李工", EmployeeID: "NEPDI-S-042", Role: models.RoleUser},
	})

	return &environment{
		redis:     mr,
		rdb:       rdb,
		es:        fake,
		index:     index,
		catalog:   cat,
		approvals: approval.NewService(cat, dir, nil, log),
		directory: dir,
		log:       log,
	}
}

// ==========================
// Catalog lifecycle
// ==========================

func TestE2E_BootstrapPublishesAndRestores(t *testing.T) {
	env := newEnvironment(t)
	ctx := context.Background()

	result, err := env.catalog.Bootstrap(ctx, e2eSeed)
	require.NoError(t, err)
	assert.Equal(t, "generator", result.Source)
	assert.Zero(t, result.Violations)
	assert.True(t, env.redis.Exists("catalog:snapshot"))
	assert.Equal(t, 1, env.es.bulks)

	// A second process restores from the snapshot instead of regenerating.
	restored := catalog.NewService(catalog.NewStore(nil), catalog.Backends{
		Snapshot: catalog.NewSnapshotCache(env.rdb, time.Hour),
	}, generator.DefaultCatalogOptions(), nil, env.log)
	again, err := restored.Bootstrap(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "snapshot", again.Source)
	assert.Equal(t, result.Projects, again.Projects)

	first := env.catalog.Store().All()[0]
	got, err := restored.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)
}

func TestE2E_RebuildWorkerIsDeterministicPerSeed(t *testing.T) {
	env := newEnvironment(t)
	handler := rebuildcatalog.NewHandler(&rebuildcatalog.Config{Timeout: time.Minute}, env.catalog, env.log)

	first, err := handler.Execute(context.Background(), &rebuildcatalog.Input{Seed: e2eSeed})
	require.NoError(t, err)
	names := projectNames(env.catalog.Store().All())

	second, err := handler.Execute(context.Background(), &rebuildcatalog.Input{Seed: e2eSeed})
	require.NoError(t, err)

	assert.Equal(t, first.Projects, second.Projects)
	assert.Equal(t, first.ByCategory, second.ByCategory)
	assert.Equal(t, names, projectNames(env.catalog.Store().All()))
	assert.Equal(t, 2, env.es.bulks)
}

// ==========================
// Approval workflow
// ==========================

func TestE2E_ChangeRequestApprovedThroughBothLevels(t *testing.T) {
	env := newEnvironment(t)
	ctx := context.Background()
	_, err := env.catalog.Bootstrap(ctx, e2eSeed)
	require.NoError(t, err)

	target := env.catalog.Store().All()[0]
	_, hi := generator.ProgressBand(target.Status)
	newProgress := target.Progress + 1
	if newProgress > hi {
		newProgress = target.Progress - 1
	}

	submit := submitchangerequest.NewHandler(&submitchangerequest.Config{Timeout: 5 * time.Second}, env.approvals, env.log)
	review := reviewchangerequest.NewHandler(&reviewchangerequest.Config{Timeout: 5 * time.Second}, env.approvals, env.log)
	email := &recordingEmail{}
	notify := notifyapprover.NewHandler(&notifyapprover.Config{
		Timeout:      5 * time.Second,
		EmailEnabled: true,
		FromEmail:    "noreply@nepdi.example.com",
	}, env.approvals, env.directory, email, nil, env.log)

	submitted, err := submit.Execute(ctx, &submitchangerequest.Input{
		ProjectID: target.ID,
		Applicant: "李工",
		Change:    models.NewProgressChange(0, newProgress),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPendingLevel2, submitted.Status)

	// Level 2 signers are the manager and the admin.
	notified, err := notify.Execute(ctx, &notifyapprover.Input{RequestID: submitted.RequestID})
	require.NoError(t, err)
	assert.Equal(t, 2, notified.Sent)
	assert.ElementsMatch(t, []string{"zhang@nepdi.example.com", "wang@nepdi.example.com"}, email.sent)

	_, err = review.Execute(ctx, &reviewchangerequest.Input{RequestID: submitted.RequestID, Approver: "李工", Action: reviewchangerequest.ActionApprove})
	require.Error(t, err)

	out, err := review.Execute(ctx, &reviewchangerequest.Input{RequestID: submitted.RequestID, Approver: "王主任", Action: reviewchangerequest.ActionApprove})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPendingLevel3, out.Status)

	unchanged, err := env.catalog.Get(target.ID)
	require.NoError(t, err)
	assert.Equal(t, target.Progress, unchanged.Progress)

	out, err = review.Execute(ctx, &reviewchangerequest.Input{RequestID: submitted.RequestID, Approver: "张总", Action: reviewchangerequest.ActionApprove})
	require.NoError(t, err)
	assert.True(t, out.Approved)
	assert.True(t, out.Final)

	updated, err := env.catalog.Get(target.ID)
	require.NoError(t, err)
	assert.Equal(t, newProgress, updated.Progress)

	assert.Equal(t, []string{target.ID}, env.es.docs)
	assert.False(t, env.redis.Exists("catalog:snapshot"))

	_, err = review.Execute(ctx, &reviewchangerequest.Input{RequestID: submitted.RequestID, Approver: "张总", Action: reviewchangerequest.ActionApprove})
	assert.Error(t, err)
}

// ==========================
// HTTP surface
// ==========================

func TestE2E_APIWithRedisFavoritesAndSearch(t *testing.T) {
	env := newEnvironment(t)
	ctx := context.Background()
	_, err := env.catalog.Bootstrap(ctx, e2eSeed)
	require.NoError(t, err)

	projects := env.catalog.Store().All()
	env.es.hits = []string{projects[1].ID, projects[0].ID}

	srv := httptest.NewServer(api.NewServer(api.Options{
		Catalog:   env.catalog,
		Favorites: catalog.NewFavoritesStore(env.rdb),
		Approvals: env.approvals,
		Search:    env.index,
		Checks: map[string]api.ReadyCheck{
			"redis": func(ctx context.Context) error { return env.rdb.Ping(ctx).Err() },
		},
	}, env.log).Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/projects?q=" + url.QueryEscape("热电"))
	require.NoError(t, err)
	var found []models.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&found))
	resp.Body.Close()
	require.Len(t, found, 2)
	assert.Equal(t, projects[1].ID, found[0].ID)

	user := url.PathEscape("王主任")
	resp, err = http.Post(srv.URL+"/api/favorites/"+user, "application/json",
		strings.NewReader(`{"projectId":"`+projects[0].ID+`"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	members, err := env.redis.Members("favorites:王主任")
	require.NoError(t, err)
	assert.Equal(t, []string{projects[0].ID}, members)

	resp, err = http.Get(srv.URL + "/api/dashboard?user=" + url.QueryEscape("王主任"))
	require.NoError(t, err)
	var dash struct {
		Projects  int              `json:"projects"`
		Favorites []models.Project `json:"favorites"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dash))
	resp.Body.Close()
	assert.Equal(t, len(projects), dash.Projects)
	require.Len(t, dash.Favorites, 1)
	assert.Equal(t, projects[0].ID, dash.Favorites[0].ID)
}

// ==========================
// Assistant
// ==========================

func TestE2E_DraftResponseForPendingFeedback(t *testing.T) {
	env := newEnvironment(t)
	_, err := env.catalog.Bootstrap(context.Background(), e2eSeed)
	require.NoError(t, err)

	var pending *models.Feedback
	for _, f := range env.catalog.Store().Feedbacks() {
		if f.Status == models.FeedbackPending {
			pending = &f
			break
		}
	}
	require.NotNil(t, pending)
	project, err := env.catalog.Get(pending.ProjectID)
	require.NoError(t, err)

	genai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body["prompt"], pending.Content)
		assert.Contains(t, body["prompt"], project.Name)
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "感谢您的反馈，我们将尽快处理。"})
	}))
	t.Cleanup(genai.Close)

	handler := draftresponse.NewHandler(&draftresponse.Config{
		GenAIBaseURL: genai.URL,
		APIKey:       "test-key",
		Timeout:      5 * time.Second,
		MaxTokens:    500,
		Temperature:  0.7,
	}, env.catalog, env.log)

	out, err := handler.Execute(context.Background(), &draftresponse.Input{FeedbackID: pending.ID})
	require.NoError(t, err)
	assert.True(t, out.Configured)
	assert.Equal(t, project.ID, out.ProjectID)
	assert.Equal(t, "感谢您的反馈，我们将尽快处理。", out.Draft)

	before := env.catalog.Store().Stats().PendingFeedbacks
	saved, err := env.catalog.RespondFeedback(pending.ID, out.Draft, "")
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackInProgress, saved.Status)
	assert.Equal(t, before-1, env.catalog.Store().Stats().PendingFeedbacks)
}

func projectNames(projects []models.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}
