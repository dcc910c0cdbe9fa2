package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
	"github.com/abrystyle/ritualesbienestar/internal/config"
	"github.com/abrystyle/ritualesbienestar/internal/content"
	"github.com/abrystyle/ritualesbienestar/internal/normalize"
	"github.com/abrystyle/ritualesbienestar/internal/observability"
	"github.com/abrystyle/ritualesbienestar/internal/scraper"
	"github.com/abrystyle/ritualesbienestar/internal/store"
)

// UpdateService runs the full pipeline: scrape the listing, enrich from
// detail pages, normalize, persist the batch JSON, project content files,
// and report what changed since the previous run.
type UpdateService struct {
	cfg    *config.Config
	runs   *store.Store // nil when no database is configured
	client *http.Client
}

func NewUpdateService(cfg *config.Config, runs *store.Store) *UpdateService {
	return &UpdateService{
		cfg:    cfg,
		runs:   runs,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// StepResult mirrors the per-step reporting of the trigger endpoints.
type StepResult struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type RunReport struct {
	Success      bool            `json:"success"`
	Timestamp    time.Time       `json:"timestamp"`
	Duration     string          `json:"duration"`
	Scraping     *StepResult     `json:"scraping,omitempty"`
	Generation   *StepResult     `json:"generation,omitempty"`
	BuildTrigger *StepResult     `json:"build_trigger,omitempty"`
	Products     int             `json:"products"`
	Written      int             `json:"files_written"`
	Changes      catalog.Changes `json:"changes"`
	Errors       int             `json:"errors"`
	Message      string          `json:"message"`
}

// Run executes one pipeline pass. A listing fetch failure is the only fatal
// outcome; every later step degrades per-product and the partial batch is
// still serialized as the current state.
func (s *UpdateService) Run(ctx context.Context) RunReport {
	started := time.Now()
	report := RunReport{Timestamp: started.UTC()}

	previous, err := catalog.LoadBatch(s.cfg.ProductsFile)
	if err != nil {
		slog.Warn("previous batch unreadable, treating run as first", "error", err)
	}

	raws, err := s.scrape(ctx)
	step := StepResult{Success: err == nil, Timestamp: time.Now().UTC()}
	if err != nil {
		step.Error = err.Error()
		report.Scraping = &step
		report.Errors++
		report.Message = fmt.Sprintf("scraping failed: %v", err)
		report.Duration = time.Since(started).Round(time.Millisecond).String()
		s.recordRun(ctx, started, report)
		return report
	}
	report.Scraping = &step

	products := normalize.Batch(raws)
	batch := catalog.Batch{
		URL:           s.cfg.ShopURL,
		ScrapedAt:     time.Now().UTC(),
		TotalProducts: len(products),
		Products:      products,
	}
	report.Products = len(products)

	genStep := StepResult{Success: true, Timestamp: time.Now().UTC()}
	if err := catalog.SaveBatch(s.cfg.ProductsFile, batch); err != nil {
		observability.IncError(observability.ErrorWrite, "core")
		genStep.Success = false
		genStep.Error = err.Error()
		report.Errors++
	}

	writer := content.NewWriter(s.cfg.ContentDir)
	written, writeErr := writer.WriteAll(products, batch.ScrapedAt)
	report.Written = written
	if writeErr != nil && genStep.Success {
		genStep.Success = false
		genStep.Error = writeErr.Error()
		report.Errors++
	}
	report.Generation = &genStep

	report.Changes = catalog.Diff(previous, batch)

	// Mirrors the original trigger policy: rebuild on any change, or when the
	// run had at most one failing step.
	shouldBuild := report.Changes.New > 0 || report.Changes.Updated > 0 || report.Errors <= 1
	if shouldBuild && s.cfg.BuildHook != "" {
		buildStep := StepResult{Success: true, Timestamp: time.Now().UTC()}
		if err := s.TriggerBuild(ctx, "daily-products-update"); err != nil {
			buildStep.Success = false
			buildStep.Error = err.Error()
			report.Errors++
		}
		report.BuildTrigger = &buildStep
	}

	report.Success = report.Errors == 0
	report.Duration = time.Since(started).Round(time.Millisecond).String()
	report.Message = summaryMessage(report)
	observability.ObserveRunDuration(time.Since(started).Seconds())

	slog.Info("pipeline run finished",
		"products", report.Products,
		"written", report.Written,
		"new", report.Changes.New,
		"updated", report.Changes.Updated,
		"errors", report.Errors,
		"duration", report.Duration)

	s.recordRun(ctx, started, report)
	return report
}

func (s *UpdateService) scrape(ctx context.Context) ([]catalog.RawProduct, error) {
	extractor := scraper.NewExtractor(s.cfg.ShopURL, s.cfg.SiteOrigin, s.cfg.UserAgent)
	raws, err := extractor.ExtractListing(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("listing extracted", "products", len(raws))

	if !s.cfg.SkipDetails {
		enricher := scraper.NewEnricher(s.cfg.UserAgent, s.cfg.DetailDelay)
		raws = enricher.EnrichAll(ctx, raws)
	}
	return raws, nil
}

// TriggerBuild POSTs the build hook payload the downstream site expects.
func (s *UpdateService) TriggerBuild(ctx context.Context, trigger string) error {
	if s.cfg.BuildHook == "" {
		return fmt.Errorf("build hook not configured")
	}

	payload, _ := json.Marshal(map[string]string{
		"trigger":   trigger,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BuildHook, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("build hook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("build hook failed with status %d", resp.StatusCode)
	}
	return nil
}

func (s *UpdateService) recordRun(ctx context.Context, started time.Time, report RunReport) {
	if s.runs == nil {
		return
	}
	run := store.Run{
		StartedAt:   started.UTC(),
		DurationMS:  time.Since(started).Milliseconds(),
		Products:    report.Products,
		NewProducts: report.Changes.New,
		Updated:     report.Changes.Updated,
		Written:     report.Written,
		Errors:      report.Errors,
		Triggered:   report.BuildTrigger != nil && report.BuildTrigger.Success,
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		slog.Error("failed to record run", "error", err)
	}
}

func summaryMessage(report RunReport) string {
	switch {
	case report.Errors > 1:
		return fmt.Sprintf("run finished with %d errors", report.Errors)
	case report.Changes.New > 0 || report.Changes.Updated > 0:
		return fmt.Sprintf("update successful: %d new, %d updated, %d total",
			report.Changes.New, report.Changes.Updated, report.Products)
	case report.Errors == 1:
		return fmt.Sprintf("run completed with a minor error: %d products", report.Products)
	default:
		return fmt.Sprintf("no changes: %d products verified", report.Products)
	}
}
