package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<div class="products-grid">
  <div class="product-item-info" data-product-sku="OL-001">
    <h2 class="product-item-name">Olife Original</h2>
    <span class="price">24,90 €</span>
    <img src="/media/olife.jpg">
    <a href="/olife-original.html">Ver</a>
    <span class="badge">Detox</span>
  </div>
  <div class="product-item-info">
    <h2 class="product-item-name">Crema Corporal</h2>
    <a href="https://shop.example/crema.html">Ver</a>
  </div>
  <div class="product-item-info">
    <h2>Search</h2>
  </div>
</div>
</body></html>`

func testExtractor(origin string) *Extractor {
	return NewExtractor(origin+"/shop.html", origin, "test-agent")
}

func TestExtractCards(t *testing.T) {
	e := testExtractor("https://shop.example")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listingHTML))
	require.NoError(t, err)

	products := e.extractCards(doc)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "Olife Original", first.Name)
	assert.Equal(t, "24,90 €", first.Price)
	assert.Equal(t, "OL-001", first.SKU)
	assert.Equal(t, "https://shop.example/media/olife.jpg", first.Image)
	assert.Equal(t, "https://shop.example/olife-original.html", first.Link)
	assert.Equal(t, ".product-item-info", first.Selector)
	assert.Equal(t, []string{"Detox"}, first.Tags)

	second := products[1]
	assert.Equal(t, "Crema Corporal", second.Name)
	assert.Empty(t, second.Price)
	assert.Equal(t, "https://shop.example/crema.html", second.Link)
}

// Cards without a usable name, or matching known UI strings, never become
// products.
func TestValidName(t *testing.T) {
	assert.False(t, validName(""))
	assert.False(t, validName("x"))
	assert.False(t, validName("Search"))
	assert.False(t, validName("Lenguaje"))
	assert.True(t, validName("Olife Original"))
}

func TestExtractGeneric(t *testing.T) {
	page := `<html><body>
	<div class="col">
	  <h3>Aceite Natural</h3>
	  <p>Aceite de oliva con hojas.</p>
	  <span>19,90 €</span>
	  <img src="/img/aceite.jpg">
	  <a href="/aceite.html">Ver</a>
	</div>
	</body></html>`

	e := testExtractor("https://shop.example")
	products := e.extractGeneric([]byte(page))
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, "Aceite Natural", p.Name)
	assert.Equal(t, "19,90 €", p.Price)
	assert.Equal(t, "Aceite de oliva con hojas.", p.Description)
	assert.Equal(t, "https://shop.example/img/aceite.jpg", p.Image)
	assert.Equal(t, "https://shop.example/aceite.html", p.Link)
	assert.Equal(t, selectorGeneric, p.Selector)
}

func TestExtractGenericDeduplicates(t *testing.T) {
	page := `<html><body>
	<div><h3>Olife</h3><span>10,00 €</span></div>
	<div><h3>Olife</h3><span>10,00 €</span></div>
	</body></html>`

	e := testExtractor("https://shop.example")
	products := e.extractGeneric([]byte(page))
	assert.Len(t, products, 1)
}

func TestExtractListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shop.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(listingHTML))
	}))
	defer server.Close()

	e := testExtractor(server.URL)
	products, err := e.ExtractListing(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	// IDs are assigned after extraction, in document order.
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 2, products[1].ID)
}

func TestExtractListingNoProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Sin productos</p></body></html>"))
	}))
	defer server.Close()

	e := testExtractor(server.URL)
	_, err := e.ExtractListing(context.Background())
	assert.ErrorIs(t, err, ErrNoProducts)
}
