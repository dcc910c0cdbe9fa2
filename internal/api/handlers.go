package api

import (
	"net/http"
	"strconv"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
	"github.com/abrystyle/ritualesbienestar/internal/observability"
)

// handleUpdate runs a full pipeline pass synchronously and reports the
// per-step outcome. Only one run is allowed at a time; concurrent triggers
// get a 409 so overlapping scrapes never race on the batch file.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.running.CompareAndSwap(false, true) {
		respondError(w, http.StatusConflict, "An update is already running")
		return
	}
	defer s.running.Store(false)

	report := s.updater.Run(r.Context())

	status := http.StatusOK
	if !report.Success {
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, report)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if err := s.updater.TriggerBuild(r.Context(), "manual-rebuild"); err != nil {
		respondError(w, http.StatusBadGateway, "Build trigger failed: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"triggered": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

// handleProducts serves the latest persisted batch plus aggregate figures.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	batch, err := catalog.LoadBatch(s.cfg.ProductsFile)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load batch: "+err.Error())
		return
	}
	if batch.Products == nil {
		batch.Products = []catalog.Product{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"url":        batch.URL,
		"scraped_at": batch.ScrapedAt,
		"total":      batch.TotalProducts,
		"summary":    catalog.Summarize(batch),
		"items":      batch.Products,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "Run history requires a database")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	runs, err := s.runs.RecentRuns(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch runs: "+err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": runs,
		"limit": limit,
		"total": len(runs),
	})
}
