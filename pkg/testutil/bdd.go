package testutil

import "testing"

// Given, When and Then name nested subtests so scenario steps read in order
// in `go test -v` output.
func Given(t *testing.T, setup string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("given "+setup, fn)
}

func When(t *testing.T, action string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("when "+action, fn)
}

func Then(t *testing.T, expectation string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("then "+expectation, fn)
}
