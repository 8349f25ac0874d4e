// Package solver turns a validated scenario into a mixed-integer
// quadratic model and drives it through an ordered list of backends.
//
// The model maximizes
//
//	sum_i (A_i*X_i - B_i*X_i^2) - sum_i C_i*X_i - sum_j F_j*Y_j
//
// subject to non-negative integer quantities X, binary activations Y,
// per-resource capacity rows, and big-M linking of premium quantities
// to their activations. The Adapter tries each configured backend in
// priority order, falling through only when a backend cannot run at
// all; a definitive Infeasible, Unbounded or Error verdict ends the
// solve. Interpret recovers integral decisions from a solved result
// and recomputes the full profit and resource breakdown from them.
package solver
