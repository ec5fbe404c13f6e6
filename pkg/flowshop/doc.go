// Package flowshop provides the data model of the permutation flow-shop
// problem and the schedule builder every algorithm shares.
//
// # Core Types
//
//   - [Matrix]: processing times, rows = jobs, columns = machines
//   - [Timing]: start and end of one job on one machine
//   - [Schedule]: timing table, makespan and idle time for a sequence
//   - [Result]: a named schedule produced by one algorithm run
//
// # Timing Recurrence
//
// For position p in the sequence and machine m:
//
//	start(0, 0) = 0
//	start(p, m) = max(end(p, m-1), end(p-1, m))   (missing terms are 0)
//	end(p, m)   = start(p, m) + time(job(p), m)
//
// A job cannot start on machine m before it leaves machine m-1, and a machine
// cannot start a job before it finishes the previous one.
//
// # Usage
//
//	m := flowshop.Matrix{{5, 2}, {1, 6}, {4, 3}}
//	s, err := flowshop.Build(m, []int{1, 2, 0})
//	fmt.Println(s.Makespan) // 12
//
// [Build] is the only place makespans are computed so that every algorithm
// reports identical values for identical sequences.
package flowshop
