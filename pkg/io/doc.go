// Package io reads processing-time matrices and writes solver outcomes.
//
// # Matrix formats
//
// CSV: one job per line, one machine per column. Blank lines and lines
// starting with '#' are skipped and cells are trimmed:
//
//	# jobs x machines
//	5, 2
//	1, 6
//	4, 3
//
// TSV is the same with tab separators.
//
// JSON: either a bare array of rows or an object with a "matrix" field:
//
//	{"matrix": [[5, 2], [1, 6], [4, 3]]}
//
// Readers only parse. Ragged rows and negative values are passed through so
// that validation in the flowshop package reports them with a precise message.
//
// # Outcome format
//
// [WriteJSON] encodes a solver outcome: algorithm, result (sequence, timings,
// makespan, idle), branch-and-bound stats and three-candidate breakdowns when
// present.
package io
