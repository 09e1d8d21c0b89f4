// Package report renders solver leaderboards as plain text, JSON or
// Markdown. All writers implement Writer.
package report
