// Package analysis compares two tracked players across a set of golf rounds.
//
// Each player's round is reduced to the holes actually played, a raw stroke
// total and an 18-hole-equivalent normalized score, so front-nine, back-nine
// and sparse rounds can be compared against full rounds. Rounds where both
// players have a normalized score become comparison rows with a winner; the
// rows are summarized into win/loss/tie counts and columnar graph data.
//
// All functions are pure: they take rounds as arguments and write only to
// the io.Writer they are handed.
package analysis
