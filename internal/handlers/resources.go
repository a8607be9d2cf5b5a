package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcbothq/arcbot/internal/resource"
)

// ResourcesHandler exposes read-only listings of the loaded resource
// tables, one category per request.
type ResourcesHandler struct {
	index  *resource.Index
	logger *slog.Logger
}

func NewResourcesHandler(index *resource.Index, log *slog.Logger) *ResourcesHandler {
	return &ResourcesHandler{
		index:  index,
		logger: log.With(slog.String("handler", "resources")),
	}
}

func (h *ResourcesHandler) Register(e *echo.Echo) {
	e.GET("/resources/:category", h.ListCategory)
}

// ResourceSummary is the wire form of one index entry.
type ResourceSummary struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Exists  bool     `json:"exists"`
	Levels  []int    `json:"levels,omitempty"`
}

func (h *ResourcesHandler) ListCategory(c echo.Context) error {
	name := c.Param("category")
	cat, ok := knownCategory(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown category: "+name)
	}

	entries := h.index.List(cat)
	out := make([]ResourceSummary, 0, len(entries))
	for _, res := range entries {
		item := ResourceSummary{
			Key:     res.Key,
			Name:    res.Name,
			Aliases: res.Aliases,
			Exists:  res.Exists,
		}
		if res.HasLevels {
			if lr, ok := h.index.FindWeapon(res.Key); ok {
				item.Levels = lr.LevelsAvailable
			}
		}
		out = append(out, item)
	}
	return c.JSON(http.StatusOK, out)
}
