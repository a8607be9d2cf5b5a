package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/arcbothq/arcbot/internal/healthcheck"
	"github.com/arcbothq/arcbot/internal/resource"
)

type staticChecker struct {
	items []healthcheck.CheckResult
}

func (s *staticChecker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	return s.items
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFixture(t *testing.T, dir, cat, source string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, cat+".json"), []byte(source), 0o644); err != nil {
		t.Fatalf("write %s source: %v", cat, err)
	}
}

func newTestIndex(t *testing.T) (*resource.Index, string) {
	t.Helper()
	dir := t.TempDir()
	writeFixture(t, dir, "maps", `{"dam": {"name": "Dam", "filename": "dam.png"}}`)
	writeFixture(t, dir, "weapons", `{
		"kettle": {"name": "Kettle", "filename": "kettle.png"},
		"anvil": {"name": "Anvil", "filename": "anvil.png"}
	}`)
	writeFixture(t, dir, "arc", `{}`)

	idx := resource.New(dir, discardLogger())
	if !idx.Reload() {
		t.Fatalf("fixture index failed to load")
	}
	return idx, dir
}

func newContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPing(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewStatusHandler(idx, nil, discardLogger())

	c, rec := newContext(http.MethodGet, "/ping")
	assert.NoError(t, h.Ping(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatusReportsCounts(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewStatusHandler(idx, nil, discardLogger())

	c, rec := newContext(http.MethodGet, "/status")
	assert.NoError(t, h.Status(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]int{"maps": 1, "weapons": 2, "arc": 0}, resp.Resources)
	assert.Empty(t, resp.Checks)
}

func TestStatusReflectsWorstCheck(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewStatusHandler(idx, []healthcheck.Checker{
		&staticChecker{items: []healthcheck.CheckResult{
			{ID: "gateway.session", Status: healthcheck.StatusOK, Summary: "Gateway session is connected."},
		}},
		&staticChecker{items: []healthcheck.CheckResult{
			{ID: "resources.arc", Status: healthcheck.StatusWarn, Summary: "Category arc has no entries."},
		}},
	}, discardLogger())

	c, rec := newContext(http.MethodGet, "/status")
	assert.NoError(t, h.Status(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "warn", resp.Status)
	assert.Len(t, resp.Checks, 2)
	assert.Equal(t, "gateway.session", resp.Checks[0].ID)
	assert.Equal(t, "resources.arc", resp.Checks[1].ID)
}

func TestReloadAllPicksUpChanges(t *testing.T) {
	t.Parallel()
	idx, dir := newTestIndex(t)
	h := NewReloadHandler(idx, discardLogger())

	writeFixture(t, dir, "maps", `{
		"dam": {"name": "Dam", "filename": "dam.png"},
		"spaceport": {"name": "Spaceport", "filename": "spaceport.png"}
	}`)

	c, rec := newContext(http.MethodPost, "/reload")
	assert.NoError(t, h.ReloadAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReloadResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Resources["maps"])
}

func TestReloadCategoryOnlyTouchesOne(t *testing.T) {
	t.Parallel()
	idx, dir := newTestIndex(t)
	h := NewReloadHandler(idx, discardLogger())

	// Both sources shrink on disk, but only maps gets reloaded.
	writeFixture(t, dir, "maps", `{}`)
	writeFixture(t, dir, "weapons", `{}`)

	c, rec := newContext(http.MethodPost, "/reload/maps")
	c.SetParamNames("category")
	c.SetParamValues("maps")
	assert.NoError(t, h.ReloadCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReloadResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 0, resp.Resources["maps"])
	assert.Equal(t, 2, resp.Resources["weapons"])
}

func TestReloadCategoryUnknown(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewReloadHandler(idx, discardLogger())

	c, _ := newContext(http.MethodPost, "/reload/ships")
	c.SetParamNames("category")
	c.SetParamValues("ships")

	err := h.ReloadCategory(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestResourcesListCategory(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewResourcesHandler(idx, discardLogger())

	c, rec := newContext(http.MethodGet, "/resources/weapons")
	c.SetParamNames("category")
	c.SetParamValues("weapons")
	assert.NoError(t, h.ListCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []ResourceSummary
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "kettle", resp[0].Key)
	assert.Equal(t, "Kettle", resp[0].Name)
	assert.Equal(t, "anvil", resp[1].Key)
	assert.False(t, resp[0].Exists)
}

func TestResourcesListEmptyCategory(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewResourcesHandler(idx, discardLogger())

	c, rec := newContext(http.MethodGet, "/resources/arc")
	c.SetParamNames("category")
	c.SetParamValues("arc")
	assert.NoError(t, h.ListCategory(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestResourcesListUnknownCategory(t *testing.T) {
	t.Parallel()
	idx, _ := newTestIndex(t)
	h := NewResourcesHandler(idx, discardLogger())

	c, _ := newContext(http.MethodGet, "/resources/ships")
	c.SetParamNames("category")
	c.SetParamValues("ships")

	err := h.ListCategory(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestResourcesListReportsLevels(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFixture(t, dir, "maps", `{}`)
	writeFixture(t, dir, "arc", `{}`)
	writeFixture(t, dir, "weapons", `{
		"kettle": {
			"name": "Kettle",
			"levels": {"1": {"filename": "kettle_1.png"}, "3": {"filename": "kettle_3.png"}}
		}
	}`)
	idx := resource.New(dir, discardLogger())
	if !idx.Reload() {
		t.Fatalf("fixture index failed to load")
	}
	h := NewResourcesHandler(idx, discardLogger())

	c, rec := newContext(http.MethodGet, "/resources/weapons")
	c.SetParamNames("category")
	c.SetParamValues("weapons")
	assert.NoError(t, h.ListCategory(c))

	var resp []ResourceSummary
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, []int{1, 3}, resp[0].Levels)
}

func TestReloadFailureKeepsPreviousData(t *testing.T) {
	t.Parallel()
	idx, dir := newTestIndex(t)
	h := NewReloadHandler(idx, discardLogger())

	writeFixture(t, dir, "maps", `{not json`)

	c, rec := newContext(http.MethodPost, "/reload")
	assert.NoError(t, h.ReloadAll(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ReloadResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, 1, resp.Resources["maps"])
}
