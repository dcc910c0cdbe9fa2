package scraper

// Ordered selector tables for the shop's Magento-style markup. The card
// patterns are tried in order and the first one matching at least one element
// wins for the entire pass; patterns are never mixed within one run.
var productCardSelectors = []string{
	".product-item-info",
	".product-item",
	".item.product",
	".products-grid .item",
	"[data-product-sku]",
	".product-image-container",
}

// selectorGeneric marks records recovered by the currency-pattern heuristic
// rather than a card selector.
const selectorGeneric = "generic-price-search"

const (
	nameSelectors         = "h1, h2, h3, h4, .product-item-name, .product-name, [class*='name'], [class*='title']"
	priceSelectors        = ".price, .cost, [class*='price'], [data-price-type='basePrice']"
	oldPriceSelectors     = ".old-price, [class*='old-price'], [data-price-type='oldPrice']"
	descriptionSelectors  = ".description, .desc, [class*='description']"
	availabilitySelectors = ".availability, .stock, [class*='availability'], [class*='stock']"
	ratingSelectors       = ".rating, .stars, [class*='rating'], [class*='stars']"
	categorySelectors     = ".category, [class*='category']"
	discountSelectors     = ".discount, .sale, [class*='discount'], [class*='sale']"
	tagSelectors          = ".tag, .label, .badge, [class*='tag'], [class*='label'], [class*='badge']"
)

// Detail-page extraction tables.
var detailTagSelectors = []string{
	".product-specifications .spec-value",
	".product-benefits li",
	".product-features li",
	".product-advantages li",
	".objetivos p",
	".beneficios li",
	".caracteristicas li",
}

var detailDescriptionSelectors = []string{
	".product-description",
	".description",
	".product-details",
	".product-info",
	".product-content",
	"[class*='description']",
}

const (
	detailNameSelectors    = ".product-item-name, .page-title, h1"
	detailFeatureSelectors = ".benefits li, .features li, .characteristics li"
)

// benefitKeywords is the vocabulary scanned against detail-page descriptions;
// each hit becomes a capitalized tag.
var benefitKeywords = []string{
	"energía", "vitalidad", "bienestar", "antioxidante", "natural",
	"vitaminas", "minerales", "suplemento", "salud", "nutrición",
	"inmunológico", "digestivo", "colágeno", "antiedad", "hidratante",
	"drenante", "detox", "metabolismo", "proteína", "aminoácidos",
}

// nameTagRules maps product-name substrings to canonical tags.
var nameTagRules = []struct {
	Substr string
	Tag    string
}{
	{"collagen", "Colágeno"},
	{"protein", "Proteína"},
	{"golden", "Premium"},
	{"detox", "Detox"},
	{"drenante", "Drenante"},
	{"anticellulite", "Anticelulítico"},
	{"brucia grassi", "Quema grasas"},
	{"crema", "Cosmético"},
	{"gel", "Cosmético"},
	{"siero", "Serum"},
}

// tagNoiseTerms reject UI chrome, units, and currency fragments that the
// broad tag selectors drag in.
var tagNoiseTerms = []string{
	"€", "img", "ml", "package", "search", "lenguaje", "cantidad",
	"inscríbase", "boletín", "añadir", "comprar", "método", "ingrediente",
}

// nonProductNames are known UI strings that card selectors occasionally match.
var nonProductNames = []string{"search", "lenguaje"}

const maxDetailTags = 8
