package catalog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	batch := Batch{
		URL:           "https://www.evergreenlife.it/es_es/shop.html",
		ScrapedAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		TotalProducts: 1,
		Products: []Product{
			{
				RawProduct: RawProduct{ID: 1, Name: "Olife Original", Price: "24,90 €", Brand: Brand, Tags: []string{}},
				Slug:       "olife-original",
				InStock:    true,
			},
		},
	}

	require.NoError(t, SaveBatch(path, batch))

	loaded, err := LoadBatch(path)
	require.NoError(t, err)
	assert.Equal(t, batch.URL, loaded.URL)
	assert.True(t, batch.ScrapedAt.Equal(loaded.ScrapedAt))
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, batch.Products[0].Name, loaded.Products[0].Name)
	assert.Equal(t, batch.Products[0].Slug, loaded.Products[0].Slug)
}

func TestLoadBatchMissingFile(t *testing.T) {
	batch, err := LoadBatch(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, batch.Products)
	assert.Zero(t, batch.TotalProducts)
}

func TestDiff(t *testing.T) {
	previous := Batch{Products: []Product{
		{RawProduct: RawProduct{Name: "Olife", SKU: "OL-001", Price: "10,00 €", Tags: []string{"Detox"}}},
		{RawProduct: RawProduct{Name: "Crema", Price: "15,00 €", Tags: []string{}}},
	}}
	current := Batch{Products: []Product{
		{RawProduct: RawProduct{Name: "Olife", SKU: "OL-001", Price: "12,00 €", Tags: []string{"Detox"}}}, // price changed
		{RawProduct: RawProduct{Name: "Crema", Price: "15,00 €", Tags: []string{}}},                       // unchanged
		{RawProduct: RawProduct{Name: "Siero", Price: "20,00 €", Tags: []string{}}},                       // new
	}}

	changes := Diff(previous, current)
	assert.Equal(t, 1, changes.New)
	assert.Equal(t, 1, changes.Updated)
}

func TestDiffTagChange(t *testing.T) {
	previous := Batch{Products: []Product{
		{RawProduct: RawProduct{Name: "Olife", Price: "10,00 €", Tags: []string{"Detox"}}},
	}}
	current := Batch{Products: []Product{
		{RawProduct: RawProduct{Name: "Olife", Price: "10,00 €", Tags: []string{"Detox", "Natural"}}},
	}}

	changes := Diff(previous, current)
	assert.Zero(t, changes.New)
	assert.Equal(t, 1, changes.Updated)
}

func TestDiffFirstRun(t *testing.T) {
	current := Batch{Products: []Product{
		{RawProduct: RawProduct{Name: "Olife"}},
		{RawProduct: RawProduct{Name: "Crema"}},
	}}

	changes := Diff(Batch{}, current)
	assert.Equal(t, 2, changes.New)
	assert.Zero(t, changes.Updated)
}

func TestSummarize(t *testing.T) {
	batch := Batch{Products: []Product{
		{RawProduct: RawProduct{Name: "Olife", SKU: "OL-001", Price: "10,00 €", Image: "https://x/img.jpg"}, InStock: true},
		{RawProduct: RawProduct{Name: "Crema", Price: "20,00 €"}},
		{RawProduct: RawProduct{Name: "Gratis", Price: "consultar"}},
	}}

	s := Summarize(batch)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.WithSKU)
	assert.Equal(t, 1, s.WithImage)
	assert.Equal(t, 1, s.Available)
	assert.Equal(t, 2, s.Unavailable)
	assert.InDelta(t, 10.0, s.PriceMin, 0.001)
	assert.InDelta(t, 20.0, s.PriceMax, 0.001)
	assert.InDelta(t, 15.0, s.PriceAvg, 0.001)
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in    string
		value float64
		ok    bool
	}{
		{"24,90 €", 24.90, true},
		{"1.234,56 €", 1234.56, true},
		{"5€", 5, true},
		{"consultar", 0, false},
		{"€", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		value, ok := ParsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.value, value, 0.001, "input %q", tc.in)
		}
	}
}
