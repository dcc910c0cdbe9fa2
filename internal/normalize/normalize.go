package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
)

// unavailableSentinel is the shop's out-of-stock marker; any other (or no)
// availability text means the product can be bought.
const unavailableSentinel = "No está disponible"

// ErrEmptySlug flags a product whose name has no usable characters; such
// records are excluded from output rather than written under an empty key.
var ErrEmptySlug = errors.New("product name produces an empty slug")

// Product derives every normalized field from one raw record. It is a pure
// function: no I/O, no shared state, and it never fails on malformed content
// fields. The only error is an unusable identity (empty slug).
func Product(raw catalog.RawProduct) (catalog.Product, error) {
	slug := Slug(raw.Name)
	if slug == "" {
		return catalog.Product{}, fmt.Errorf("%q: %w", raw.Name, ErrEmptySlug)
	}

	curated := CurateTags(raw.Tags)
	benefits := BenefitTags(raw.DetailedDescription)

	return catalog.Product{
		RawProduct:       raw,
		Slug:             slug,
		CleanCategory:    Category(raw.Name),
		CleanTags:        MergeTags(curated, benefits),
		CleanDescription: CleanDescription(raw.DetailedDescription, raw.Name),
		SizeInfo:         SizeInfo(raw.Tags, raw.DetailedDescription),
		Sections:         ExtractSections(raw.DetailedDescription),
		InStock:          !strings.Contains(raw.Availability, unavailableSentinel),
	}, nil
}

// Batch normalizes every raw record independently. Products that fail
// validation are logged and skipped; slug collisions resolve last-write-wins
// with a warning, since the slug is also the storage key.
func Batch(raws []catalog.RawProduct) []catalog.Product {
	bySlug := make(map[string]int)
	products := make([]catalog.Product, 0, len(raws))

	for _, raw := range raws {
		product, err := Product(raw)
		if err != nil {
			slog.Warn("skipping product", "product", raw.Name, "error", err)
			continue
		}
		if prev, ok := bySlug[product.Slug]; ok {
			slog.Warn("slug collision, keeping later product",
				"slug", product.Slug,
				"discarded", products[prev].Name,
				"kept", product.Name)
			products[prev] = product
			continue
		}
		bySlug[product.Slug] = len(products)
		products = append(products, product)
	}
	return products
}
