package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
	"github.com/abrystyle/ritualesbienestar/internal/httpx"
	"github.com/abrystyle/ritualesbienestar/internal/observability"
)

// ErrNoProducts is returned when neither the card selectors nor the generic
// currency heuristic recover a single product from the listing page.
var ErrNoProducts = errors.New("no products found on listing page")

// Extractor scrapes the catalog listing into raw product records.
type Extractor struct {
	ListingURL string
	Origin     string
	fetcher    *httpx.Fetcher
}

func NewExtractor(listingURL, origin, userAgent string) *Extractor {
	return &Extractor{
		ListingURL: listingURL,
		Origin:     origin,
		fetcher:    httpx.NewFetcher(userAgent),
	}
}

// ExtractListing fetches the listing page and returns the ordered raw record
// set. A fetch failure here aborts the run; there is nothing to normalize.
func (e *Extractor) ExtractListing(ctx context.Context) ([]catalog.RawProduct, error) {
	body, _, err := e.fetcher.FetchBytes(ctx, e.ListingURL)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "extractor")
		return nil, fmt.Errorf("fetch listing %s: %w", e.ListingURL, err)
	}
	observability.IncPagesFetched("extractor")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		observability.IncError(observability.ErrorParse, "extractor")
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	products := e.extractCards(doc)
	if len(products) == 0 {
		slog.Info("no card selector matched, falling back to currency heuristic")
		products = e.extractGeneric(body)
	}
	if len(products) == 0 {
		observability.IncError(observability.ErrorParse, "extractor")
		return nil, ErrNoProducts
	}

	for i := range products {
		products[i].ID = i + 1
		observability.IncProductsExtracted("extractor")
	}
	return products, nil
}

// extractCards tries each card selector in order; the first one yielding at
// least one element is used for the whole pass.
func (e *Extractor) extractCards(doc *goquery.Document) []catalog.RawProduct {
	for _, selector := range productCardSelectors {
		cards := doc.Find(selector)
		if cards.Length() == 0 {
			continue
		}
		slog.Debug("card selector matched", "selector", selector, "count", cards.Length())

		seen := make(map[string]struct{})
		var products []catalog.RawProduct
		cards.Each(func(_ int, card *goquery.Selection) {
			product, ok := e.extractCard(card, selector)
			if !ok {
				return
			}
			key := product.Name + product.Link
			if _, dup := seen[key]; dup {
				return
			}
			seen[key] = struct{}{}
			products = append(products, product)
		})
		return products
	}
	return nil
}

func (e *Extractor) extractCard(card *goquery.Selection, selector string) (catalog.RawProduct, bool) {
	name := firstText(card, nameSelectors)
	if name == "" {
		name = strings.TrimSpace(card.Find("a").First().AttrOr("title", ""))
	}
	if !validName(name) {
		return catalog.RawProduct{}, false
	}

	priceEl := card.Find(priceSelectors).First()
	price := strings.TrimSpace(priceEl.Text())
	if price == "" {
		price = priceEl.AttrOr("data-price-amount", "")
	}

	img := card.Find("img").First()
	image := firstAttr(img, "src", "data-src", "data-lazy")

	link := card.Find("a").First().AttrOr("href", "")

	sku := card.AttrOr("data-product-sku", "")
	if sku == "" {
		sku = card.Find("[data-product-sku]").First().AttrOr("data-product-sku", "")
	}

	product := catalog.RawProduct{
		Name:          name,
		Price:         price,
		OriginalPrice: firstText(card, oldPriceSelectors),
		Description:   firstText(card, descriptionSelectors),
		Image:         e.absoluteURL(image),
		Link:          e.absoluteURL(link),
		Availability:  firstText(card, availabilitySelectors),
		Rating:        firstText(card, ratingSelectors),
		Category:      firstText(card, categorySelectors),
		Brand:         catalog.Brand,
		SKU:           sku,
		Discount:      firstText(card, discountSelectors),
		Selector:      selector,
		Tags:          []string{},
	}

	card.Find(tagSelectors).Each(func(_ int, tag *goquery.Selection) {
		text := strings.TrimSpace(tag.Text())
		// Length bound excludes paragraph-like false positives.
		if text != "" && len(text) < 50 {
			product.Tags = append(product.Tags, text)
		}
	})

	return product, true
}

// absoluteURL rewrites site-relative paths against the fixed shop origin.
func (e *Extractor) absoluteURL(raw string) string {
	if strings.HasPrefix(raw, "/") {
		return e.Origin + raw
	}
	return raw
}

func validName(name string) bool {
	if len(name) <= 1 {
		return false
	}
	lower := strings.ToLower(name)
	for _, ui := range nonProductNames {
		if strings.Contains(lower, ui) {
			return false
		}
	}
	return true
}

func firstText(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}

func firstAttr(s *goquery.Selection, attrs ...string) string {
	for _, attr := range attrs {
		if v, ok := s.Attr(attr); ok && v != "" {
			return v
		}
	}
	return ""
}
