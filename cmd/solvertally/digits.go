package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/solvertally/internal/sanitize"
)

// NewDigitsCmd creates the digits command.
func NewDigitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digits",
		Short: "Replace everything but digits and newlines with spaces",
		Long: `Digits copies standard input to standard output, keeping digits (including
forms such as superscripts and circled digits) and newlines and turning every
other character into a single space. Line structure and column positions are
preserved, which makes puzzle grids easy to read back as numbers. No newline
is added after the last line.

Example:
  echo "a1b2-3" | solvertally digits
  # " 1 2 3"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := sanitize.MaskReader(cmd.OutOrStdout(), cmd.InOrStdin()); err != nil {
				return fmt.Errorf("failed to filter input: %w", err)
			}
			return nil
		},
	}
}
