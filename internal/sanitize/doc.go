// Package sanitize provides the character-level text filters used by solvertally.
//
// Two filters live here and they deliberately use different character sets:
//   - Name removes everything except word characters, whitespace and hyphens.
//     It is applied to puzzle names scraped from archive listings before they
//     are turned into URL slugs.
//   - MaskNonDigits replaces everything except decimal digits and newlines
//     with a single space. It backs the "digits" command, which keeps the
//     shape of the input (line lengths, line count) while blanking out text.
package sanitize
