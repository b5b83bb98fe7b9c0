package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/sirgallo/logger"

	"github.com/sirgallo/champ"
)

var cLog = logger.NewCustomLog("champbench")

// collisionRate is read by colorHasher.Hash to decide how often to force
// a key onto a shared hash. champ.Hasher implementations are always
// instantiated as a zero value (hashing is fixed per type parameter, not
// configured per instance), so colorHasher itself must stay a zero-size
// type; this package-level knob is how a CLI flag reaches a stateless
// hasher without breaking that contract.
var collisionRate float64

// colorHasher forces collisionRate's configured fraction of keys onto a
// single, constant hash, so a run can exercise the Collision-node path at
// scale instead of only the common sparse/array branching path.
type colorHasher struct{}

func (h colorHasher) Hash(v string) uint32 {
	if collisionRate <= 0 {
		return champ.StringHasher{}.Hash(v)
	}
	// Deterministic pseudo-random gate on the key itself so the same
	// input always produces the same decision across strategies.
	if float64(champ.StringHasher{}.Hash(v)%1000)/1000 < collisionRate {
		return 0xC0FFEE
	}
	return champ.StringHasher{}.Hash(v)
}

func (h colorHasher) Equal(a, b string) bool { return a == b }

func syntheticKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("champbench-key-%d", i)
	}
	return keys
}

func runStreaming(keys []string) (int, time.Duration) {
	start := time.Now()
	m := champ.FromEntries[string, int, colorHasher, champ.ComparableHasher[int]](func(yield func(string, int) bool) {
		for i, k := range keys {
			if !yield(k, i) {
				return
			}
		}
	})
	return m.Len(), time.Since(start)
}

func runTwoPass(keys []string) (int, time.Duration) {
	start := time.Now()
	m := champ.FromEntriesTwoPass[string, int, colorHasher, champ.ComparableHasher[int]](func(yield func(string, int) bool) {
		for i, k := range keys {
			if !yield(k, i) {
				return
			}
		}
	})
	return m.Len(), time.Since(start)
}

// run executes a single champbench invocation against os.Args[1:] and
// returns a process exit code. Split out from main so the testscript
// harness in main_test.go can drive it in-process via
// testscript.RunMain.
func run() int {
	flags := flag.NewFlagSet("champbench", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to a YAML workload config (see WorkloadConfig)")
	if parseErr := flags.Parse(os.Args[1:]); parseErr != nil {
		return 2
	}

	cfg, cfgErr := loadConfig(*configPath)
	if cfgErr != nil {
		cLog.Error("error loading config:", cfgErr.Error())
		return 1
	}

	colorOutput := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	collisionRate = cfg.CollisionRate
	keys := syntheticKeys(cfg.EntryCount)

	report := func(label string, n int, elapsed time.Duration) {
		if colorOutput {
			fmt.Printf("\033[1m%s\033[0m: %s entries in %s (%s entries/sec)\n",
				label, humanize.Comma(int64(n)), elapsed.Round(time.Microsecond),
				humanize.Comma(int64(float64(n)/elapsed.Seconds())))
		} else {
			fmt.Printf("%s: %s entries in %s (%s entries/sec)\n",
				label, humanize.Comma(int64(n)), elapsed.Round(time.Microsecond),
				humanize.Comma(int64(float64(n)/elapsed.Seconds())))
		}
	}

	switch cfg.Strategy {
	case "streaming":
		n, elapsed := runStreaming(keys)
		report("streaming transient insert", n, elapsed)
	case "two-pass":
		n, elapsed := runTwoPass(keys)
		report("two-pass partition build", n, elapsed)
	default:
		n, elapsed := runStreaming(keys)
		report("streaming transient insert", n, elapsed)
		n, elapsed = runTwoPass(keys)
		report("two-pass partition build", n, elapsed)
	}

	cLog.Info("champbench run complete:", humanize.Comma(int64(cfg.EntryCount)), "entries, collision rate", cfg.CollisionRate)
	return 0
}

func main() {
	os.Exit(run())
}
