package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
	"github.com/abrystyle/ritualesbienestar/internal/normalize"
	"github.com/abrystyle/ritualesbienestar/internal/observability"
)

const defaultPrice = "0,00 €"

// closingNote is the fixed boilerplate paragraph every product page ends with.
const closingNote = "reconocida por su calidad y efectividad."

// Writer projects normalized products into per-slug Markdown content files
// consumed by the site generator. Re-running overwrites by slug; files for
// products no longer present are left alone.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir}
}

// WriteAll renders one <slug>.md per product. Write failures are logged with
// the offending product and do not abort the batch; the count of files
// actually written is returned alongside the first error observed.
func (w *Writer) WriteAll(products []catalog.Product, createdAt time.Time) (int, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("create content dir: %w", err)
	}

	written := 0
	var firstErr error
	for _, p := range products {
		if err := w.Write(p, createdAt); err != nil {
			observability.IncError(observability.ErrorWrite, "content")
			slog.Error("write product file failed", "product", p.Name, "slug", p.Slug, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		observability.IncProductsWritten("content")
		written++
	}
	return written, firstErr
}

func (w *Writer) Write(p catalog.Product, createdAt time.Time) error {
	if p.Slug == "" {
		return fmt.Errorf("product %q has no slug", p.Name)
	}
	path := filepath.Join(w.Dir, p.Slug+".md")
	if err := os.WriteFile(path, []byte(Render(p, createdAt)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Render produces the full content file: a front-matter block followed by the
// generated Markdown body.
func Render(p catalog.Product, createdAt time.Time) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(frontMatter(p, createdAt))
	b.WriteString("---\n\n")
	b.WriteString(body(p, createdAt))
	return b.String()
}

func frontMatter(p catalog.Product, createdAt time.Time) string {
	var lines []string
	// Values are emitted as double-quoted YAML scalars. CleanDescription is
	// already escaped by the normalizer; everything else is escaped here.
	quoted := func(key, value string) {
		lines = append(lines, key+`: "`+value+`"`)
	}

	quoted("name", escapeQuotes(p.Name))
	quoted("description", p.CleanDescription)
	quoted("price", priceOrDefault(p.Price))
	quoted("brand", catalog.Brand)
	if p.Image != "" {
		quoted("image", p.Image)
	}
	if p.Link != "" {
		quoted("productUrl", p.Link)
	}
	quoted("availability", p.AvailabilityLabel())
	lines = append(lines, fmt.Sprintf("inStock: %t", p.InStock))
	quoted("category", p.CleanCategory)
	lines = append(lines, "tags: ["+quotedList(p.CleanTags)+"]")
	if p.SizeInfo != "" {
		quoted("packageSize", p.SizeInfo)
	}
	if p.SKU != "" {
		quoted("sku", p.SKU)
	}
	quoted("createdAt", createdAt.UTC().Format(time.RFC3339))
	quoted("seoTitle", escapeQuotes(p.Name)+" - "+catalog.Brand)
	quoted("seoDescription", "Compra "+escapeQuotes(p.Name)+" de "+catalog.Brand+".")

	return strings.Join(lines, "\n") + "\n"
}

func body(p catalog.Product, createdAt time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	fmt.Fprintf(&b, "%s\n\n", unescapeQuotes(p.CleanDescription))

	b.WriteString("## Información del Producto\n\n")
	fmt.Fprintf(&b, "- **Precio:** %s\n", priceOrDefault(p.Price))
	fmt.Fprintf(&b, "- **Marca:** %s\n", catalog.Brand)
	if p.SKU != "" {
		fmt.Fprintf(&b, "- **SKU:** %s\n", p.SKU)
	}
	fmt.Fprintf(&b, "- **Categoría:** %s\n", p.CleanCategory)
	if p.SizeInfo != "" {
		fmt.Fprintf(&b, "- **Formato:** %s\n", p.SizeInfo)
	}
	fmt.Fprintf(&b, "- **Disponibilidad:** %s\n\n", availabilityLabelES(p.InStock))

	if p.Link != "" {
		fmt.Fprintf(&b, "[Ver producto en la tienda oficial](%s)\n\n", p.Link)
	}

	if len(p.CleanTags) > 0 {
		b.WriteString("## Características\n\n")
		for _, tag := range p.CleanTags {
			fmt.Fprintf(&b, "- %s\n", tag)
		}
		b.WriteString("\n")
	}

	if text, ok := p.Sections[normalize.SectionObjectives]; ok {
		fmt.Fprintf(&b, "## Objetivos\n\n%s\n\n", text)
	}
	if text, ok := p.Sections[normalize.SectionUsage]; ok {
		fmt.Fprintf(&b, "## Modo de uso\n\n%s\n\n", text)
	}

	fmt.Fprintf(&b, "Este producto forma parte de la línea %s de %s, %s\n\n",
		p.CleanCategory, catalog.Brand, closingNote)

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "*Información extraída automáticamente el %s*\n", createdAt.Format("2/1/2006"))

	return b.String()
}

func priceOrDefault(price string) string {
	if strings.TrimSpace(price) == "" {
		return defaultPrice
	}
	return price
}

func availabilityLabelES(inStock bool) string {
	if inStock {
		return "Disponible"
	}
	return "No disponible"
}

func quotedList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = `"` + escapeQuotes(item) + `"`
	}
	return strings.Join(quoted, ", ")
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func unescapeQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, `"`)
}
