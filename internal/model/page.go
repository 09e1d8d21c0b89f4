package model

// RenderedPage is a solution page as produced by the browser after
// navigation and settling.
type RenderedPage struct {
	// URL is the URL that was requested.
	URL string

	// FinalURL is the URL the browser ended up on after redirects.
	FinalURL string

	// Status is the HTTP status of the main navigation response, or 0 when
	// the browser did not report one.
	Status int

	// HTML is the rendered page source.
	HTML string
}
