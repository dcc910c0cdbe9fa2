package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.evergreenlife.it/es_es/shop.html", cfg.ShopURL)
	assert.Equal(t, "https://www.evergreenlife.it", cfg.SiteOrigin)
	assert.Equal(t, "evergreen_products.json", cfg.ProductsFile)
	assert.Equal(t, "src/content/products", cfg.ContentDir)
	assert.Equal(t, time.Second, cfg.DetailDelay)
	assert.False(t, cfg.SkipDetails)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOP_URL", "https://shop.example/list.html")
	t.Setenv("DETAIL_DELAY", "250ms")
	t.Setenv("SKIP_DETAILS", "true")
	t.Setenv("UPDATE_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example/list.html", cfg.ShopURL)
	assert.Equal(t, 250*time.Millisecond, cfg.DetailDelay)
	assert.True(t, cfg.SkipDetails)
	assert.Equal(t, "secret", cfg.UpdateToken)
}
