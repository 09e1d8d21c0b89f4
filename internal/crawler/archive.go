package crawler

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/solvertally/internal/sanitize"
)

// ListingURL returns the URL of archive listing page n (1-based).
// Page 1 is {prefix}/archive/index.html; later pages are
// {prefix}/archive/page{n}/index.html.
func ListingURL(prefix string, n int) string {
	base := strings.TrimRight(prefix, "/") + "/archive/"
	if n <= 1 {
		return base + "index.html"
	}
	return base + "page" + strconv.Itoa(n) + "/index.html"
}

// ExtractNames returns the sanitized text of every element in doc matching
// selector, in document order. Whitespace from the markup is kept as it is;
// model.Slug ignores it when building solution URLs.
func ExtractNames(doc *goquery.Document, selector string) []string {
	names := make([]string, 0)
	if doc == nil {
		return names
	}

	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		names = append(names, sanitize.Name(s.Text()))
	})

	return names
}
