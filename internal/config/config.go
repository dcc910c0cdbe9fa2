package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every process-wide knob. It is populated once at startup and
// treated as read-only for the lifetime of the run.
type Config struct {
	// ShopURL is the catalog listing page the extractor scrapes.
	ShopURL string `envconfig:"SHOP_URL" default:"https://www.evergreenlife.it/es_es/shop.html"`

	// SiteOrigin is prepended to site-relative image and product links.
	SiteOrigin string `envconfig:"SITE_ORIGIN" default:"https://www.evergreenlife.it"`

	// UserAgent is sent on every outbound request.
	UserAgent string `envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`

	// ProductsFile is the batch JSON written after each run and read back as
	// the previous state on the next one.
	ProductsFile string `envconfig:"PRODUCTS_FILE" default:"evergreen_products.json"`

	// ContentDir receives one <slug>.md file per product.
	ContentDir string `envconfig:"CONTENT_DIR" default:"src/content/products"`

	// DetailDelay is the pause between consecutive detail-page fetches.
	DetailDelay time.Duration `envconfig:"DETAIL_DELAY" default:"1s"`

	// SkipDetails disables per-product detail-page enrichment.
	SkipDetails bool `envconfig:"SKIP_DETAILS" default:"false"`

	// UpdateToken is the shared secret required by the trigger endpoints.
	UpdateToken string `envconfig:"UPDATE_TOKEN"`

	// BuildHook is POSTed to after a run that changed the catalog. Empty
	// disables build notifications.
	BuildHook string `envconfig:"BUILD_HOOK"`

	// DatabaseURL enables the run-history store when set.
	DatabaseURL string `envconfig:"DATABASE_URL"`

	Port string `envconfig:"PORT" default:"8080"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
