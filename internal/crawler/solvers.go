package crawler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/solvertally/internal/model"
)

// SolverResult is the outcome of extracting solvers from a solution page.
// Callers switch on Status instead of recovering from parse failures.
type SolverResult struct {
	// Status tells whether the page was a solution page and whether it
	// carried a solvers element.
	Status model.ExtractStatus

	// Solvers are the credited names in page order. Only set when Status
	// is model.StatusFound. Duplicates are preserved.
	Solvers []string
}

// ExtractSolvers classifies page and returns the solvers listed in the first
// element matching selector.
//
// A page that answered with an error status, or that redirected to a
// different path, is reported as model.StatusInvalidPage. A page without a
// matching element is model.StatusNoSolvers.
func ExtractSolvers(page *model.RenderedPage, selector string) SolverResult {
	if page == nil || !isSolutionPage(page) {
		return SolverResult{Status: model.StatusInvalidPage}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return SolverResult{Status: model.StatusInvalidPage}
	}

	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return SolverResult{Status: model.StatusNoSolvers}
	}

	return SolverResult{
		Status:  model.StatusFound,
		Solvers: strippedStrings(sel),
	}
}

// isSolutionPage reports whether page looks like the page that was asked for.
func isSolutionPage(page *model.RenderedPage) bool {
	if page.Status >= http.StatusBadRequest {
		return false
	}
	if page.FinalURL == "" || page.FinalURL == page.URL {
		return true
	}

	requested, err := url.Parse(page.URL)
	if err != nil {
		return false
	}
	final, err := url.Parse(page.FinalURL)
	if err != nil {
		return false
	}

	return strings.EqualFold(requested.Host, final.Host) &&
		strings.TrimRight(requested.Path, "/") == strings.TrimRight(final.Path, "/")
}

// strippedStrings returns every non-blank text node under sel, trimmed, in
// document order. Script and style contents are skipped.
func strippedStrings(sel *goquery.Selection) []string {
	out := make([]string, 0)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return out
}
