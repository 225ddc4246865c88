// Package vim parses normal-mode key sequences into commands.
//
// The parser is a small state machine over runes. Keys it does not
// own pass through to the caller, so mode switches and simple edits
// stay out of the grammar. Counts multiply across the operator
// boundary: "2d3w" operates over six words.
package vim
