// Package browser drives a headless Chromium through Playwright to render
// JavaScript-populated solution pages.
//
// A Session owns the Playwright driver, the browser process and one page.
// Callers open it with Launch and must Close it on every exit path:
//
//	s, err := browser.Launch(ctx, opts)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
package browser
