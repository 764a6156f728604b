// Package cli implements the command-line interface for golf-rounds.
//
// The cli package provides the Cobra-based CLI: scrape collects rounds from a
// Golfshot profile, merge appends rounds from a JSON file, analyze compares
// the two tracked players with scores normalized to 18 holes, and export
// writes per-player, per-course CSV files or an XLSX workbook. It
// coordinates the config, scraper, storage, filter, analysis, export and
// chart packages.
package cli
