// Package log provides the slog setup shared by every solvertally command.
//
// NewLogger returns a text logger whose handler is wrapped in a RedactHandler.
// Listing requests can carry a configured cookie and arbitrary headers, and
// those values must never end up in progress output that gets pasted into
// issues or CI logs.
//
// # Usage
//
//	logger := log.NewLogger(os.Stdout, verbose)
//	logger.Info("visiting solution page", "url", url)
//	logger.Debug("request headers", "cookie", cookie) // cookie=***REDACTED***
package log
