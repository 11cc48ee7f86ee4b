package stream

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// assertPanicsIs runs fn and asserts that it panics with an error matching
// target.
func assertPanicsIs(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		assert.NotZero(t, r)
		err, ok := r.(error)
		assert.True(t, ok)
		assert.True(t, errors.Is(err, target))
	}()
	fn()
}
