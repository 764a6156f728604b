// Package round provides the data model for scraped golf rounds.
//
// A Round carries course metadata, per-hole descriptors and each player's
// per-hole stroke entries as they appear on the scorecard. Entries are kept as
// strings; the empty string marks a hole that was not played. The package also
// owns the lenient integer parse used when scoring, round date parsing, and
// URL-based merging of round collections.
package round
