package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanDescriptionStripsNoise(t *testing.T) {
	raw := "Descripción: El aceite <b>de oliva</b> aporta bienestar y vitalidad a tu rutina diaria. // tracking\n" +
		"gtag('config') onclick=doThing() Más de cien años de tradición."

	got := CleanDescription(raw, "Olife Original")
	assert.Equal(t, "El aceite de oliva aporta bienestar y vitalidad a tu rutina diaria. Más de cien años de tradición.", got)
}

func TestCleanDescriptionFallback(t *testing.T) {
	assert.Equal(t,
		"Golden Day Kit de EverGreen Life. Producto de alta calidad.",
		CleanDescription("", "Golden Day Kit"))

	// Cleaned text under the minimum also falls back.
	assert.Equal(t,
		"Olife de EverGreen Life. Producto de alta calidad.",
		CleanDescription("Corto.", "Olife"))
}

func TestCleanDescriptionSentenceCut(t *testing.T) {
	raw := strings.Repeat("a", 210) + ". " + strings.Repeat("b", 88)

	got := CleanDescription(raw, "Olife")
	assert.Equal(t, 211, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "a."))
	assert.False(t, strings.HasSuffix(got, "..."))
}

func TestCleanDescriptionWordCut(t *testing.T) {
	raw := strings.TrimSpace(strings.Repeat("palabra bonita ", 20))

	got := CleanDescription(raw, "Olife")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 223)
}

func TestCleanDescriptionEscapesQuotes(t *testing.T) {
	raw := `Producto "premium" de la línea clásica, elaborado con aceite de oliva y hojas seleccionadas.`

	got := CleanDescription(raw, "Olife")
	assert.Contains(t, got, `\"premium\"`)
	assert.NotContains(t, got, "\n")
}

func TestCleanDescriptionDropsTrailingSections(t *testing.T) {
	lead := strings.TrimSpace(strings.Repeat("texto del producto ", 12)) // past the soft limit
	raw := lead + " objetivos mejorar la energía y la vitalidad del organismo cada día"

	got := CleanDescription(raw, "Olife")
	assert.NotContains(t, got, "objetivos")
}

func TestFallbackDescription(t *testing.T) {
	got := FallbackDescription("Olife Original")
	assert.Equal(t, "Olife Original de EverGreen Life. Producto de alta calidad.", got)
}
