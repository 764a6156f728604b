// Package storage provides JSON-based persistence for scraped rounds.
//
// Rounds live in rounds-data.json inside the data directory; the chart
// series from the last analysis is written to score-graph-data.json. The
// data directory may start with "~/" and is created on first use.
package storage
