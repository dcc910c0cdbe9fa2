package catalog

import "time"

// Brand is constant for the whole catalog; the source shop sells a single line.
const Brand = "EverGreen Life"

// RawProduct is what the extractor recovers from markup, before any cleaning.
// Every field except Name is best-effort: absence is an empty string, never an
// error. Two raw products with the same (Name, Link) pair are the same entity.
type RawProduct struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         string   `json:"price,omitempty"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Description   string   `json:"description,omitempty"`
	Image         string   `json:"image,omitempty"`
	Link          string   `json:"link,omitempty"`
	Availability  string   `json:"availability,omitempty"`
	Rating        string   `json:"rating,omitempty"`
	Category      string   `json:"category,omitempty"`
	Brand         string   `json:"brand"`
	SKU           string   `json:"sku,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	Selector      string   `json:"selector,omitempty"`
	Tags          []string `json:"tags"`

	// Detail-page enrichment. Empty when the detail fetch failed or was skipped.
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Features            []string `json:"features,omitempty"`
}

// Key identifies a product across runs: SKU when the shop exposes one,
// otherwise the name.
func (p RawProduct) Key() string {
	if p.SKU != "" {
		return p.SKU
	}
	return p.Name
}

// Product is the fully derived, schema-ready record.
type Product struct {
	RawProduct

	Slug             string            `json:"slug"`
	CleanCategory    string            `json:"cleanCategory"`
	CleanTags        []string          `json:"cleanTags"`
	CleanDescription string            `json:"cleanDescription"`
	SizeInfo         string            `json:"sizeInfo,omitempty"`
	Sections         map[string]string `json:"sections,omitempty"`
	InStock          bool              `json:"inStock"`
}

// Availability collapses the free-form availability text into the two-value
// enum the content schema expects.
func (p Product) AvailabilityLabel() string {
	if p.InStock {
		return "available"
	}
	return "unavailable"
}

// Batch is the persisted intermediate state: the pipeline's output and the
// next run's prior-state input.
type Batch struct {
	URL           string    `json:"url"`
	ScrapedAt     time.Time `json:"scrapedAt"`
	TotalProducts int       `json:"totalProducts"`
	Products      []Product `json:"products"`
}
