package scraper

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/abrystyle/ritualesbienestar/internal/catalog"
)

// pricePattern matches a localized currency amount such as "24,90 €".
var pricePattern = regexp.MustCompile(`\d+[,.]?\d*\s*€`)

var blockAncestors = map[string]struct{}{
	"div":     {},
	"li":      {},
	"article": {},
	"section": {},
}

// extractGeneric is the last-resort heuristic: scan every text node for a
// currency amount, ascend to the nearest block-level ancestor, and mine that
// subtree for product fields. Records recovered this way carry no
// availability, rating, sku, or tags; that is inherent to the heuristic.
func (e *Extractor) extractGeneric(body []byte) []catalog.RawProduct {
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var products []catalog.RawProduct

	walkNodes(root, func(n *html.Node) {
		if n.Type != html.TextNode {
			return
		}
		text := strings.TrimSpace(n.Data)
		if len(text) >= 100 || !pricePattern.MatchString(text) {
			return
		}

		container := blockAncestor(n)
		if container == nil {
			return
		}

		name := containerName(container)
		if !validName(name) {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}

		product := catalog.RawProduct{
			Name:        name,
			Price:       pricePattern.FindString(text),
			Description: firstNodeText(container, "p"),
			Image:       e.absoluteURL(firstNodeAttr(container, "img", "src")),
			Link:        e.absoluteURL(firstNodeAttr(container, "a", "href")),
			Brand:       catalog.Brand,
			Selector:    selectorGeneric,
			Tags:        []string{},
		}

		seen[name] = struct{}{}
		products = append(products, product)
	})

	return products
}

func blockAncestor(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if _, ok := blockAncestors[p.Data]; ok {
			return p
		}
	}
	return nil
}

func containerName(container *html.Node) string {
	headings := map[string]struct{}{
		"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	}
	var name string
	walkNodes(container, func(n *html.Node) {
		if name != "" || n.Type != html.ElementNode {
			return
		}
		if _, ok := headings[n.Data]; ok {
			if text := strings.TrimSpace(nodeText(n)); text != "" {
				name = text
			}
			return
		}
		if n.Data == "a" {
			if title := strings.TrimSpace(nodeAttr(n, "title")); title != "" {
				name = title
			}
		}
	})
	return name
}

func firstNodeText(container *html.Node, tag string) string {
	var out string
	walkNodes(container, func(n *html.Node) {
		if out == "" && n.Type == html.ElementNode && n.Data == tag {
			out = strings.TrimSpace(nodeText(n))
		}
	})
	return out
}

func firstNodeAttr(container *html.Node, tag, attr string) string {
	var out string
	walkNodes(container, func(n *html.Node) {
		if out == "" && n.Type == html.ElementNode && n.Data == tag {
			out = nodeAttr(n, attr)
		}
	})
	return out
}

func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
