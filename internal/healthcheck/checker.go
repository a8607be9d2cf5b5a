// Package healthcheck defines the runtime check items reported by the
// status endpoint and the interface checkers implement.
package healthcheck

import "context"

const (
	// StatusOK indicates check passed.
	StatusOK = "ok"
	// StatusWarn indicates check completed with warning.
	StatusWarn = "warn"
	// StatusError indicates check failed.
	StatusError = "error"
)

// CheckResult is one runtime check item produced by a checker.
type CheckResult struct {
	ID      string
	Status  string
	Summary string
	Detail  string
}

// Checker evaluates one or more runtime checks.
type Checker interface {
	ListChecks(ctx context.Context) []CheckResult
}
