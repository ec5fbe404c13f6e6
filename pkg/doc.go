// Package pkg provides the libraries behind the flowshop command.
//
// # Overview
//
// A permutation flow shop runs every job through the same machines in the
// same order, and every machine processes the jobs in one shared sequence.
// The libraries find that sequence and describe the resulting schedule:
//
//  1. [flowshop] - Matrix type, schedule builder and results
//  2. [heuristics] - Johnson's rule, sort-key rules, the priority rule and the three-candidate heuristic
//  3. [exhaustive] and [bnb] - Exact search, by enumeration or best-first branch and bound
//  4. [solver] - Algorithm registry and the runner shared by CLI and HTTP API
//  5. [report] and [render] - Text reports, Gantt charts and operation networks
//
// # Architecture
//
// The typical data flow:
//
//	CSV / TSV / JSON matrix
//	         ↓
//	    [io] package (parse)
//	         ↓
//	    [solver] package (validate, dispatch, memoize)
//	         ↓
//	    [heuristics] / [exhaustive] / [bnb]
//	         ↓
//	    [report] text, [render] SVG/PNG, [io] JSON
//
// # Quick Start
//
//	m := flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}}
//	r, err := heuristics.Johnson(m)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(report.Format(r))
//
// Errors across the packages carry codes from [errors], so callers can tell
// rejected input from an exhausted search budget.
package pkg
