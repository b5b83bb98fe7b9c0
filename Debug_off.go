//go:build !champdebug

package champ

// assertInvariant is a no-op in release builds; see Debug_on.go for the
// champdebug-tagged version that actually checks.
func assertInvariant(bool, string) {}
