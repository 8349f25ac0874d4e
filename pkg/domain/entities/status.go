package entities

// SolveStatus represents the terminal verdict of one solve attempt
type SolveStatus int

const (
	StatusUnknown SolveStatus = iota
	StatusOptimal
	StatusOptimalInaccurate
	StatusInfeasible
	StatusUnbounded
	StatusTimeout
	StatusError
)

// String method for SolveStatus enum
func (s SolveStatus) String() string {
	switch s {
	case StatusOptimal:
		return "Optimal"
	case StatusOptimalInaccurate:
		return "OptimalInaccurate"
	case StatusInfeasible:
		return "Infeasible"
	case StatusUnbounded:
		return "Unbounded"
	case StatusTimeout:
		return "Timeout"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Solved reports whether the status carries a usable solution.
// Only Optimal and OptimalInaccurate results can be interpreted into
// a production plan; every other status is surfaced to the caller
// verbatim.
func (s SolveStatus) Solved() bool {
	return s == StatusOptimal || s == StatusOptimalInaccurate
}
