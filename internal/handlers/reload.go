package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arcbothq/arcbot/internal/resource"
)

// ReloadHandler refreshes resource tables from disk on demand. A
// category whose source fails to load keeps its previous contents, so
// a failed reload never drops data; the response still reports it.
type ReloadHandler struct {
	index  *resource.Index
	logger *slog.Logger
}

func NewReloadHandler(index *resource.Index, log *slog.Logger) *ReloadHandler {
	return &ReloadHandler{
		index:  index,
		logger: log.With(slog.String("handler", "reload")),
	}
}

func (h *ReloadHandler) Register(e *echo.Echo) {
	e.POST("/reload", h.ReloadAll)
	e.POST("/reload/:category", h.ReloadCategory)
}

// ReloadResponse reports the refresh outcome and the resulting counts.
type ReloadResponse struct {
	OK        bool           `json:"ok"`
	Resources map[string]int `json:"resources"`
}

func (h *ReloadHandler) ReloadAll(c echo.Context) error {
	ok := h.index.Reload()
	h.logger.Info("reload requested", slog.Bool("ok", ok))

	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ReloadResponse{OK: ok, Resources: categoryCounts(h.index)})
}

func (h *ReloadHandler) ReloadCategory(c echo.Context) error {
	name := c.Param("category")
	cat, known := knownCategory(name)
	if !known {
		return echo.NewHTTPError(http.StatusNotFound, "unknown category: "+name)
	}

	ok := h.index.ReloadCategory(cat)
	h.logger.Info("category reload requested",
		slog.String("category", name),
		slog.Bool("ok", ok))

	status := http.StatusOK
	if !ok {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, ReloadResponse{OK: ok, Resources: categoryCounts(h.index)})
}

func knownCategory(name string) (resource.Category, bool) {
	for _, cat := range resource.Categories() {
		if string(cat) == name {
			return cat, true
		}
	}
	return "", false
}
