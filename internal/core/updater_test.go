package core

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
	"github.com/abrystyle/ritualesbienestar/internal/config"
)

const shopHTML = `<!DOCTYPE html>
<html><body>
<div class="products-grid">
  <div class="product-item-info" data-product-sku="OL-001">
    <h2 class="product-item-name">Olife Original</h2>
    <span class="price">24,90 €</span>
    <a href="/olife-original.html">Ver</a>
  </div>
  <div class="product-item-info">
    <h2 class="product-item-name">Crema Corporal</h2>
    <span class="price">15,00 €</span>
    <a href="/crema-corporal.html">Ver</a>
  </div>
</div>
</body></html>`

func testConfig(t *testing.T, shopURL, origin string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ShopURL:      shopURL,
		SiteOrigin:   origin,
		UserAgent:    "test-agent",
		ProductsFile: filepath.Join(dir, "products.json"),
		ContentDir:   filepath.Join(dir, "content"),
		DetailDelay:  10 * time.Millisecond,
		SkipDetails:  true,
	}
}

func TestRun(t *testing.T) {
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shop.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(shopHTML))
	}))
	defer shop.Close()

	var hookCalls atomic.Int32
	var hookBody []byte
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hookCalls.Add(1)
		hookBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer hook.Close()

	cfg := testConfig(t, shop.URL+"/shop.html", shop.URL)
	cfg.BuildHook = hook.URL

	report := NewUpdateService(cfg, nil).Run(context.Background())

	assert.True(t, report.Success)
	assert.Zero(t, report.Errors)
	assert.Equal(t, 2, report.Products)
	assert.Equal(t, 2, report.Written)
	assert.Equal(t, 2, report.Changes.New)
	require.NotNil(t, report.Scraping)
	assert.True(t, report.Scraping.Success)
	require.NotNil(t, report.Generation)
	assert.True(t, report.Generation.Success)
	require.NotNil(t, report.BuildTrigger)
	assert.True(t, report.BuildTrigger.Success)

	assert.Equal(t, int32(1), hookCalls.Load())
	var payload map[string]string
	require.NoError(t, json.Unmarshal(hookBody, &payload))
	assert.Equal(t, "daily-products-update", payload["trigger"])
	assert.NotEmpty(t, payload["timestamp"])

	batch, err := catalog.LoadBatch(cfg.ProductsFile)
	require.NoError(t, err)
	assert.Equal(t, 2, batch.TotalProducts)

	_, err = os.Stat(filepath.Join(cfg.ContentDir, "olife-original.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.ContentDir, "crema-corporal.md"))
	assert.NoError(t, err)
}

func TestRunSecondPassNoChanges(t *testing.T) {
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shop.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(shopHTML))
	}))
	defer shop.Close()

	cfg := testConfig(t, shop.URL+"/shop.html", shop.URL)
	svc := NewUpdateService(cfg, nil)

	first := svc.Run(context.Background())
	require.True(t, first.Success)
	assert.Equal(t, 2, first.Changes.New)

	second := svc.Run(context.Background())
	require.True(t, second.Success)
	assert.Zero(t, second.Changes.New)
	assert.Zero(t, second.Changes.Updated)
	assert.Contains(t, second.Message, "no changes")
}

func TestRunScrapeFailure(t *testing.T) {
	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer shop.Close()

	cfg := testConfig(t, shop.URL+"/shop.html", shop.URL)

	report := NewUpdateService(cfg, nil).Run(context.Background())
	assert.False(t, report.Success)
	assert.Equal(t, 1, report.Errors)
	require.NotNil(t, report.Scraping)
	assert.False(t, report.Scraping.Success)
	assert.Nil(t, report.Generation)
	assert.Contains(t, report.Message, "scraping failed")
}

func TestTriggerBuildNotConfigured(t *testing.T) {
	cfg := testConfig(t, "https://shop.example/shop.html", "https://shop.example")

	err := NewUpdateService(cfg, nil).TriggerBuild(context.Background(), "manual-rebuild")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestTriggerBuildBadStatus(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer hook.Close()

	cfg := testConfig(t, "https://shop.example/shop.html", "https://shop.example")
	cfg.BuildHook = hook.URL

	err := NewUpdateService(cfg, nil).TriggerBuild(context.Background(), "manual-rebuild")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestSummaryMessage(t *testing.T) {
	assert.Contains(t, summaryMessage(RunReport{Errors: 3}), "3 errors")
	assert.Contains(t, summaryMessage(RunReport{Changes: catalog.Changes{New: 2}, Products: 5}), "2 new")
	assert.Contains(t, summaryMessage(RunReport{Errors: 1, Products: 5}), "minor error")
	assert.Contains(t, summaryMessage(RunReport{Products: 5}), "no changes")
}
