//go:build champdebug

package champ

import "fmt"

// assertInvariant panics with ErrInternalInvariant when cond is false.
// Only compiled in when built with the champdebug build tag.
func assertInvariant(cond bool, msg string) {
	if !cond {
		panic(fmt.Errorf("%w: %s", ErrInternalInvariant, msg))
	}
}
