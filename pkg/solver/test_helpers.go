package solver

import "context"

// StubBackend provides a canned backend for testing adapter fallback
// and the services built on top of it
type StubBackend struct {
	BackendName string
	Unavailable bool
	StubResult  *Result
	StubErr     error
	Calls       int
}

// Verify interface compliance
var _ Backend = (*StubBackend)(nil)

// Name returns the stub's configured name
func (s *StubBackend) Name() string {
	if s.BackendName == "" {
		return "stub"
	}
	return s.BackendName
}

// Available reports the stub's configured availability
func (s *StubBackend) Available() bool {
	return !s.Unavailable
}

// Solve returns the canned result or error and counts the call
func (s *StubBackend) Solve(ctx context.Context, m *Model, opts Options) (*Result, error) {
	s.Calls++
	if s.StubErr != nil {
		return nil, s.StubErr
	}
	return s.StubResult, nil
}
