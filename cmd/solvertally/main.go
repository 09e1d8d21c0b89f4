// Package main provides the entry point for the solvertally CLI.
//
// solvertally collects the solver lists published on a puzzle archive and
// tallies who solved what. It also ships the small digit filter used to
// prepare puzzle input.
//
// Usage:
//
//	solvertally scrape
//	solvertally report --top 20
//	solvertally digits < input.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
