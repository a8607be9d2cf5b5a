package resourcechecker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arcbothq/arcbot/internal/healthcheck"
	"github.com/arcbothq/arcbot/internal/resource"
)

const checkTypeCatalog = "resources"

// CatalogObserver reads the loaded entry counts of the resource index.
type CatalogObserver interface {
	Count(cat resource.Category) int
}

// Checker evaluates resource catalog health checks.
type Checker struct {
	logger   *slog.Logger
	observer CatalogObserver
}

// NewChecker creates a resource catalog health checker.
func NewChecker(log *slog.Logger, observer CatalogObserver) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger:   log.With(slog.String("checker", "healthcheck_resources")),
		observer: observer,
	}
}

// ListChecks reports one check per resource category. An empty category
// is a warning, not an error: the bot still serves the others.
func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	if ctx != nil && ctx.Err() != nil {
		return []healthcheck.CheckResult{}
	}
	if c.observer == nil {
		c.logger.Warn("resource healthcheck dependency is unavailable")
		return []healthcheck.CheckResult{
			{
				ID:      checkTypeCatalog + ".service",
				Status:  healthcheck.StatusWarn,
				Summary: "Resource checker service is not available.",
				Detail:  "catalog observer is nil",
			},
		}
	}

	cats := resource.Categories()
	checks := make([]healthcheck.CheckResult, 0, len(cats))
	for _, cat := range cats {
		item := healthcheck.CheckResult{
			ID: checkTypeCatalog + "." + string(cat),
		}
		if n := c.observer.Count(cat); n > 0 {
			item.Status = healthcheck.StatusOK
			item.Summary = fmt.Sprintf("Category %s has %d entries.", cat, n)
		} else {
			item.Status = healthcheck.StatusWarn
			item.Summary = fmt.Sprintf("Category %s has no entries.", cat)
			item.Detail = "source file missing or failed to load"
		}
		checks = append(checks, item)
	}
	return checks
}
