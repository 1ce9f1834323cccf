// internal/catalog/service.go
package catalog

import (
	"context"
	"time"

	"project-tracker/internal/common/logger"
	"project-tracker/internal/common/metrics"
	"project-tracker/internal/common/observability"
	"project-tracker/internal/common/validation"
	"project-tracker/internal/generator"
	"project-tracker/internal/models"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Persister is the durable copy of the catalog.
type Persister interface {
	SaveCatalog(ctx context.Context, projects []models.Project) error
	LoadCatalog(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, p models.Project) error
}

type Snapshotter interface {
	Save(ctx context.Context, projects []models.Project) error
	Load(ctx context.Context) ([]models.Project, bool, error)
	Invalidate(ctx context.Context) error
}

type Indexer interface {
	IndexCatalog(ctx context.Context, projects []models.Project) error
	IndexProject(ctx context.Context, p models.Project) error
}

// Backends are all optional; nil disables the corresponding store.
type Backends struct {
	Repository Persister
	Snapshot   Snapshotter
	Search     Indexer
}

// BuildResult summarizes one rebuild.
type BuildResult struct {
	Seed       int64         `json:"seed"`
	Projects   int           `json:"projects"`
	Violations int           `json:"violations"`
	Duration   time.Duration `json:"duration"`
	Source     string        `json:"source"`
}

// Service owns the shared store and keeps the backends in step with it.
type Service struct {
	store    *Store
	backends Backends
	options  generator.CatalogOptions
	obs      *observability.Observability
	log      logger.Logger
}

func NewService(store *Store, backends Backends, opts generator.CatalogOptions, obs *observability.Observability, log logger.Logger) *Service {
	if obs == nil {
		obs = observability.Noop()
	}
	return &Service{
		store:    store,
		backends: backends,
		options:  opts,
		obs:      obs,
		log:      log.WithFields(map[string]interface{}{"component": "catalog"}),
	}
}

func (s *Service) Store() *Store { return s.store }

func (s *Service) Get(projectID string) (models.Project, error) { return s.store.Get(projectID) }

func (s *Service) Feedback(id string) (models.Feedback, error) { return s.store.Feedback(id) }

// RespondFeedback saves a reply on a feedback item.
func (s *Service) RespondFeedback(id, response string, status models.FeedbackStatus) (models.Feedback, error) {
	f, err := s.store.RespondFeedback(id, response, status)
	if err != nil {
		return models.Feedback{}, err
	}
	s.log.Info("Feedback response saved", map[string]interface{}{
		"feedbackId": id,
		"status":     string(f.Status),
	})
	return f, nil
}

// Rebuild synthesizes a fresh catalog, publishes it to every configured
// backend and then replaces the store. Seed 0 draws a random seed.
func (s *Service) Rebuild(ctx context.Context, seed int64) (_ *BuildResult, err error) {
	start := time.Now()
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, span := s.obs.StartSpan(ctx, "catalog.rebuild",
		attribute.Int64("catalog.seed", seed),
		attribute.Bool("catalog.parallel", s.options.Parallel),
	)
	defer func() { observability.EndSpan(span, err) }()

	gen := generator.New(generator.NewSource(seed))
	projects, err := gen.BuildCatalog(ctx, s.options)
	if err != nil {
		s.obs.RecordCatalogBuild(ctx, 0, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.projects", len(projects)))

	violations := s.check(projects)

	// The store keeps serving the previous catalog until every backend
	// has accepted the new one.
	if err := s.publish(ctx, projects); err != nil {
		s.obs.RecordCatalogBuild(ctx, len(projects), err)
		return nil, err
	}

	s.store.Replace(projects)
	s.store.SetFeedbacks(generator.SeedFeedbacks(projects))
	metrics.CatalogSize.Set(float64(len(projects)))

	duration := time.Since(start)
	metrics.CatalogBuildDuration.Observe(duration.Seconds())
	s.obs.RecordCatalogBuild(ctx, len(projects), nil)

	s.log.Info("Catalog rebuilt", map[string]interface{}{
		"seed":       seed,
		"projects":   len(projects),
		"violations": violations,
		"duration":   duration.String(),
	})

	return &BuildResult{
		Seed:       seed,
		Projects:   len(projects),
		Violations: violations,
		Duration:   duration,
		Source:     "generator",
	}, nil
}

// check runs the consistency rules and the record schema over a catalog.
func (s *Service) check(projects []models.Project) int {
	violations := 0
	for _, p := range projects {
		metrics.GeneratedProjects.WithLabelValues(string(p.Type)).Inc()

		problems := generator.Validate(p)
		if res, err := validation.ProjectSchema.Validate(p); err == nil && !res.Valid {
			problems = append(problems, res.GetErrorMessages()...)
		}
		if len(problems) == 0 {
			continue
		}
		violations += len(problems)
		s.log.Warn("Generated project violates consistency rules", map[string]interface{}{
			"projectId":  p.ID,
			"violations": problems,
		})
	}
	metrics.InvariantViolations.Add(float64(violations))
	return violations
}

func (s *Service) publish(ctx context.Context, projects []models.Project) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.backends.Repository != nil {
		g.Go(func() error { return s.backends.Repository.SaveCatalog(gctx, projects) })
	}
	if s.backends.Snapshot != nil {
		g.Go(func() error { return s.backends.Snapshot.Save(gctx, projects) })
	}
	if s.backends.Search != nil {
		g.Go(func() error { return s.backends.Search.IndexCatalog(gctx, projects) })
	}
	return g.Wait()
}

// Bootstrap fills the store from the snapshot cache, then the repository,
// and only regenerates when both are empty.
func (s *Service) Bootstrap(ctx context.Context, seed int64) (*BuildResult, error) {
	if s.backends.Snapshot != nil {
		projects, ok, err := s.backends.Snapshot.Load(ctx)
		if err != nil {
			s.log.Warn("Snapshot load failed, falling back", map[string]interface{}{"error": err.Error()})
		} else if ok && len(projects) > 0 {
			return s.adopt(projects, "snapshot"), nil
		}
	}

	if s.backends.Repository != nil {
		projects, err := s.backends.Repository.LoadCatalog(ctx)
		if err != nil {
			s.log.Warn("Repository load failed, falling back", map[string]interface{}{"error": err.Error()})
		} else if len(projects) > 0 {
			return s.adopt(projects, "repository"), nil
		}
	}

	return s.Rebuild(ctx, seed)
}

func (s *Service) adopt(projects []models.Project, source string) *BuildResult {
	s.store.Replace(projects)
	s.store.SetFeedbacks(generator.SeedFeedbacks(projects))
	metrics.CatalogSize.Set(float64(len(projects)))
	s.log.Info("Catalog restored", map[string]interface{}{"source": source, "projects": len(projects)})
	return &BuildResult{Projects: len(projects), Source: source}
}

// ApplyChange writes an approved change to the store and propagates the
// updated record. Backend failures after the store write are logged, not
// returned, so a change is never applied twice on retry.
func (s *Service) ApplyChange(ctx context.Context, projectID string, change models.ProjectChange) (models.Project, error) {
	updated, err := s.store.ApplyChange(projectID, change)
	if err != nil {
		return models.Project{}, err
	}

	if s.backends.Repository != nil {
		if err := s.backends.Repository.UpdateProject(ctx, updated); err != nil {
			s.log.Error("Failed to persist applied change", map[string]interface{}{"projectId": projectID, "error": err.Error()})
		}
	}
	if s.backends.Search != nil {
		if err := s.backends.Search.IndexProject(ctx, updated); err != nil {
			s.log.Error("Failed to reindex applied change", map[string]interface{}{"projectId": projectID, "error": err.Error()})
		}
	}
	if s.backends.Snapshot != nil {
		if err := s.backends.Snapshot.Invalidate(ctx); err != nil {
			s.log.Warn("Failed to invalidate snapshot", map[string]interface{}{"error": err.Error()})
		}
	}
	return updated, nil
}
