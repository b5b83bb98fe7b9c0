package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain registers champbench as a script-callable command: each txtar
// script under testdata/script can then say "exec champbench -config ..."
// and have it run in-process instead of forking a real binary.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"champbench": run,
	}))
}

func TestChampbenchScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
