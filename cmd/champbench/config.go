package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WorkloadConfig describes a single champbench run, loaded from a YAML
// file passed on the command line.
type WorkloadConfig struct {
	// EntryCount is the number of synthetic string keys to insert.
	EntryCount int `yaml:"entryCount"`

	// CollisionRate, in [0, 1], is the fraction of keys that are forced
	// to share a hash with another key (via a constant-hash wrapper),
	// exercising the Collision-node path at scale.
	CollisionRate float64 `yaml:"collisionRate"`

	// Strategy selects which bulk-construction strategy to benchmark:
	// "streaming", "two-pass", or "both".
	Strategy string `yaml:"strategy"`
}

func defaultConfig() WorkloadConfig {
	return WorkloadConfig{
		EntryCount:    100000,
		CollisionRate: 0,
		Strategy:      "both",
	}
}

func loadConfig(path string) (WorkloadConfig, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return cfg, readErr
	}

	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return cfg, unmarshalErr
	}

	return cfg, nil
}
