package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
	"github.com/abrystyle/ritualesbienestar/internal/httpx"
	"github.com/abrystyle/ritualesbienestar/internal/observability"
)

var titleCaser = cases.Title(language.Spanish)

// Enricher visits each product's detail page to pick up tags, the long-form
// description, and feature bullets that the listing cards do not carry.
type Enricher struct {
	client *httpx.PoliteClient
	delay  time.Duration
}

func NewEnricher(userAgent string, delay time.Duration) *Enricher {
	if delay <= 0 {
		delay = time.Second
	}
	return &Enricher{
		client: httpx.NewPoliteClient(userAgent),
		delay:  delay,
	}
}

// EnrichAll walks the batch sequentially with a fixed pause between fetches.
// A failed detail page leaves that product with listing-derived fields only;
// cancellation returns the partially enriched slice without error.
func (en *Enricher) EnrichAll(ctx context.Context, products []catalog.RawProduct) []catalog.RawProduct {
	for i := range products {
		if ctx.Err() != nil {
			slog.Warn("detail enrichment cancelled", "enriched", i, "total", len(products))
			return products
		}
		if products[i].Link == "" {
			continue
		}

		if err := en.enrich(ctx, &products[i]); err != nil {
			observability.IncError(observability.ClassifyFetchError(err), "enricher")
			slog.Warn("detail page failed", "product", products[i].Name, "url", products[i].Link, "error", err)
		} else {
			observability.IncPagesFetched("enricher")
		}

		if i < len(products)-1 {
			select {
			case <-ctx.Done():
				return products
			case <-time.After(en.delay):
			}
		}
	}
	return products
}

func (en *Enricher) enrich(ctx context.Context, product *catalog.RawProduct) error {
	doc, err := en.client.GetDocument(ctx, product.Link)
	if err != nil {
		return fmt.Errorf("detail %s: %w", product.Link, err)
	}

	candidates := append([]string{}, product.Tags...)
	candidates = append(candidates, benefitTags(doc)...)
	candidates = append(candidates, selectorTags(doc)...)
	candidates = append(candidates, nameTags(doc)...)
	product.Tags = filterTags(candidates, maxDetailTags)

	if desc := longestDescription(doc); desc != "" {
		product.DetailedDescription = desc
	}
	product.Features = featureList(doc)
	return nil
}

// benefitTags scans the structured description blocks for the benefit
// vocabulary; each hit becomes a capitalized tag.
func benefitTags(doc *goquery.Document) []string {
	text := strings.ToLower(doc.Find(".product-description, .description, .tab-content").Text())
	var tags []string
	for _, keyword := range benefitKeywords {
		if strings.Contains(text, keyword) {
			tags = append(tags, titleCaser.String(keyword))
		}
	}
	return tags
}

func selectorTags(doc *goquery.Document) []string {
	var tags []string
	for _, selector := range detailTagSelectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			n := utf8.RuneCountInString(text)
			if n > 2 && n < 30 {
				tags = append(tags, text)
			}
		})
	}
	return tags
}

func nameTags(doc *goquery.Document) []string {
	name := strings.ToLower(strings.TrimSpace(doc.Find(detailNameSelectors).First().Text()))
	if name == "" {
		return nil
	}
	var tags []string
	for _, rule := range nameTagRules {
		if strings.Contains(name, rule.Substr) {
			tags = append(tags, rule.Tag)
		}
	}
	return tags
}

// longestDescription keeps the longest candidate across the ordered
// description containers; the shop nests the same copy at several depths.
func longestDescription(doc *goquery.Document) string {
	var best string
	for _, selector := range detailDescriptionSelectors {
		desc := strings.TrimSpace(doc.Find(selector).First().Text())
		if len(desc) > len(best) {
			best = desc
		}
	}
	return best
}

func featureList(doc *goquery.Document) []string {
	var features []string
	doc.Find(detailFeatureSelectors).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" && len(text) < 100 {
			features = append(features, text)
		}
	})
	return features
}

// filterTags drops noisy entries, deduplicates case-insensitively preserving
// first occurrence, and caps the result.
func filterTags(tags []string, limit int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		n := utf8.RuneCountInString(tag)
		if n <= 2 || n >= 30 {
			continue
		}
		if isNoiseTag(tag) {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}

func isNoiseTag(tag string) bool {
	lower := strings.ToLower(tag)
	for _, term := range tagNoiseTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
