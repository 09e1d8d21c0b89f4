// Package config provides configuration structures and utilities for solvertally.
// It defines the scrape target, selectors, browser and output settings, and
// loads optional overrides from a YAML file.
package config
