package generator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"project-tracker/internal/models"
)

// CatalogOptions bounds the per-category batch size.
type CatalogOptions struct {
	MinPerCategory int
	MaxPerCategory int
	Parallel       bool
}

func DefaultCatalogOptions() CatalogOptions {
	return CatalogOptions{MinPerCategory: 6, MaxPerCategory: 14}
}

func (o CatalogOptions) validate() error {
	if o.MinPerCategory < 0 || o.MaxPerCategory < o.MinPerCategory {
		return fmt.Errorf("invalid per-category bounds [%d, %d]", o.MinPerCategory, o.MaxPerCategory)
	}
	return nil
}

// Catalog assembles the seed projects followed by a generated batch for
// every category, using the default bounds.
func (g *Generator) Catalog() []models.Project {
	projects, _ := g.BuildCatalog(context.Background(), DefaultCatalogOptions())
	return projects
}

// BuildCatalog is Catalog with explicit options. Every category draws from
// its own source forked up front, so the parallel and sequential paths
// produce the same catalog for the same seed. Batches are concatenated in
// category order whatever order they finish in.
func (g *Generator) BuildCatalog(ctx context.Context, opts CatalogOptions) ([]models.Project, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	categories := models.AllCategories()
	forks := make([]*Generator, len(categories))
	counts := make([]int, len(categories))
	for i := range categories {
		counts[i] = g.s.IntRange(opts.MinPerCategory, opts.MaxPerCategory)
		forks[i] = g.Fork()
	}

	batches := make([][]models.Project, len(categories))
	if opts.Parallel {
		eg, egCtx := errgroup.WithContext(ctx)
		for i, category := range categories {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}
				batches[i] = forks[i].ProjectsForCategory(category, counts[i])
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, category := range categories {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			batches[i] = forks[i].ProjectsForCategory(category, counts[i])
		}
	}

	projects := SeedProjects()
	for _, batch := range batches {
		projects = append(projects, batch...)
	}
	return projects, nil
}
