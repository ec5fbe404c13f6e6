// Package heuristics implements constructive sequencing rules for the
// permutation flow shop.
//
// Each rule derives a job sequence directly from the processing-time matrix,
// without search, and hands it to [flowshop.NewResult] so makespans are
// computed by the shared schedule builder.
//
// # Rules
//
//   - [JohnsonClassic]: Johnson's rule, optimal for exactly 2 machines
//   - [JohnsonGeneralized]: Johnson's rule over two pseudo-machines (M > 2)
//   - [Johnson]: dispatches to one of the two above by machine count
//   - [MinFirstMachine], [MaxLastMachine], [Bottleneck], [MaxTotal]: single-key sorts
//   - [PriorityRule]: signed priority index (2 machines)
//   - [ThreeCandidate]: best of three statistic-ordered candidates (M >= 2)
//
// # Determinism
//
// All sorts are stable, so jobs with equal keys keep ascending job index.
// Johnson's rule scans jobs in matrix order and prefers machine 0 on ties.
// Running a rule twice on the same matrix yields identical results.
package heuristics
