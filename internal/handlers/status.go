package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcbothq/arcbot/internal/healthcheck"
	"github.com/arcbothq/arcbot/internal/resource"
)

// StatusHandler reports liveness, the loaded resource counts and the
// runtime check results.
type StatusHandler struct {
	index    *resource.Index
	checkers []healthcheck.Checker
	logger   *slog.Logger
}

func NewStatusHandler(index *resource.Index, checkers []healthcheck.Checker, log *slog.Logger) *StatusHandler {
	return &StatusHandler{
		index:    index,
		checkers: checkers,
		logger:   log.With(slog.String("handler", "status")),
	}
}

func (h *StatusHandler) Register(e *echo.Echo) {
	e.GET("/ping", h.Ping)
	e.HEAD("/health", h.PingHead)
	e.GET("/status", h.Status)
}

func (h *StatusHandler) Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (h *StatusHandler) PingHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// CheckStatus is the wire form of one runtime check item.
type CheckStatus struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
}

// StatusResponse summarizes the loaded resource tables and the runtime
// checks. Status is the worst status among the checks.
type StatusResponse struct {
	Status    string         `json:"status"`
	Resources map[string]int `json:"resources"`
	Checks    []CheckStatus  `json:"checks,omitempty"`
}

func (h *StatusHandler) Status(c echo.Context) error {
	ctx := c.Request().Context()
	overall := healthcheck.StatusOK
	var checks []CheckStatus
	for _, checker := range h.checkers {
		for _, item := range checker.ListChecks(ctx) {
			checks = append(checks, CheckStatus{
				ID:      item.ID,
				Status:  item.Status,
				Summary: item.Summary,
				Detail:  item.Detail,
			})
			if statusRank(item.Status) > statusRank(overall) {
				overall = item.Status
			}
		}
	}
	return c.JSON(http.StatusOK, StatusResponse{
		Status:    overall,
		Resources: categoryCounts(h.index),
		Checks:    checks,
	})
}

func statusRank(status string) int {
	switch status {
	case healthcheck.StatusError:
		return 2
	case healthcheck.StatusWarn:
		return 1
	default:
		return 0
	}
}

func categoryCounts(index *resource.Index) map[string]int {
	counts := make(map[string]int, len(resource.Categories()))
	for _, cat := range resource.Categories() {
		counts[string(cat)] = index.Count(cat)
	}
	return counts
}
