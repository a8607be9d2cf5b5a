package gatewaychecker

import (
	"context"
	"log/slog"

	"github.com/arcbothq/arcbot/internal/healthcheck"
)

const checkIDSession = "gateway.session"

// SessionObserver reads the runtime state of the gateway session.
type SessionObserver interface {
	Online() bool
}

// Checker evaluates gateway session health checks.
type Checker struct {
	logger   *slog.Logger
	observer SessionObserver
}

// NewChecker creates a gateway health checker.
func NewChecker(log *slog.Logger, observer SessionObserver) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger:   log.With(slog.String("checker", "healthcheck_gateway")),
		observer: observer,
	}
}

// ListChecks reports whether the gateway session is connected.
func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	if ctx != nil && ctx.Err() != nil {
		return []healthcheck.CheckResult{}
	}
	if c.observer == nil {
		c.logger.Warn("gateway healthcheck dependency is unavailable")
		return []healthcheck.CheckResult{
			{
				ID:      checkIDSession,
				Status:  healthcheck.StatusWarn,
				Summary: "Gateway checker service is not available.",
				Detail:  "session observer is nil",
			},
		}
	}

	if c.observer.Online() {
		return []healthcheck.CheckResult{
			{
				ID:      checkIDSession,
				Status:  healthcheck.StatusOK,
				Summary: "Gateway session is connected.",
			},
		}
	}
	return []healthcheck.CheckResult{
		{
			ID:      checkIDSession,
			Status:  healthcheck.StatusError,
			Summary: "Gateway session is down.",
			Detail:  "no ready session; the bot cannot receive messages",
		},
	}
}
