package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// SaveBatch writes the batch as pretty-printed JSON, replacing any previous
// state at path.
func SaveBatch(path string, batch Batch) error {
	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	return nil
}

// LoadBatch reads a previously saved batch. A missing file is not an error:
// it returns an empty batch, which diffs as "everything is new".
func LoadBatch(path string) (Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Batch{}, nil
		}
		return Batch{}, fmt.Errorf("read batch: %w", err)
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return Batch{}, fmt.Errorf("parse batch: %w", err)
	}
	return batch, nil
}

// Changes reports how the current batch differs from the previous one.
type Changes struct {
	New     int `json:"new"`
	Updated int `json:"updated"`
}

// Diff counts products that are new since the previous batch, and existing
// products whose price or tag set changed. The core never merges state; this
// exists only for change reporting.
func Diff(previous, current Batch) Changes {
	prevByKey := make(map[string]Product, len(previous.Products))
	for _, p := range previous.Products {
		prevByKey[p.Key()] = p
	}

	var changes Changes
	for _, p := range current.Products {
		prev, ok := prevByKey[p.Key()]
		if !ok {
			changes.New++
			continue
		}
		if prev.Price != p.Price || !reflect.DeepEqual(prev.Tags, p.Tags) {
			changes.Updated++
		}
	}
	return changes
}

// Summary aggregates a batch for reporting.
type Summary struct {
	Total       int     `json:"total"`
	WithSKU     int     `json:"with_sku"`
	WithImage   int     `json:"with_image"`
	Available   int     `json:"available"`
	Unavailable int     `json:"unavailable"`
	PriceMin    float64 `json:"price_min,omitempty"`
	PriceMax    float64 `json:"price_max,omitempty"`
	PriceAvg    float64 `json:"price_avg,omitempty"`
}

// Summarize computes catalog statistics from a batch. Prices are parsed from
// the locale form "12,34 €"; unparsable prices are left out of the price stats.
func Summarize(batch Batch) Summary {
	s := Summary{Total: len(batch.Products)}

	var sum float64
	var priced int
	for _, p := range batch.Products {
		if p.SKU != "" {
			s.WithSKU++
		}
		if p.Image != "" {
			s.WithImage++
		}
		if p.InStock {
			s.Available++
		} else {
			s.Unavailable++
		}

		value, ok := ParsePrice(p.Price)
		if !ok {
			continue
		}
		if priced == 0 || value < s.PriceMin {
			s.PriceMin = value
		}
		if value > s.PriceMax {
			s.PriceMax = value
		}
		sum += value
		priced++
	}
	if priced > 0 {
		s.PriceAvg = sum / float64(priced)
	}
	return s
}

// ParsePrice extracts a numeric value from a localized price string such as
// "24,90 €". The price string itself is never rewritten; this is only for
// reporting.
func ParsePrice(price string) (float64, bool) {
	if !strings.Contains(price, "€") {
		return 0, false
	}
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' || r == ',' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(b.String(), ",", ".")
	// "1.234.56" style leftovers from thousand separators are rejected.
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
