// Package crawler fetches and parses the pages of a puzzle archive.
//
// # Components
//
//   - Fetcher: plain HTTP GET of archive listing pages, returned as goquery documents
//   - ExtractNames: pulls sanitized puzzle names out of a listing document
//   - ExtractSolvers: classifies a rendered solution page and pulls out the
//     credited solvers
//   - ListingURL: builds archive listing page URLs
//
// Listing pages are static and fetched over net/http. Solution pages need
// script execution and are rendered by the browser package. This package
// only parses the HTML the browser hands back.
//
// # Usage
//
//	f := crawler.NewFetcher(client, crawler.WithUserAgent(ua))
//	doc, err := f.FetchDocument(ctx, crawler.ListingURL(prefix, 1))
//	names := crawler.ExtractNames(doc, "span.name")
package crawler
