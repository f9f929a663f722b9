package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Structs

// Config holds all information parsed from
// supplied config file.
type Config struct {
	Simulation Simulation
	Metrics    Metrics
}

// Simulation describes the replicas of a simulated
// network and how messages between them are delivered.
type Simulation struct {
	Replicas  []string
	Seed      int64
	Rounds    int
	Duplicate float64
	Scenarios []string
}

// Metrics configures where Prometheus metrics are
// exposed. An empty address disables them.
type Metrics struct {
	PrometheusAddr string
}

// Functions

// LoadConfig takes in the path to the main config
// file in TOML syntax and places the values from the
// file in the corresponding struct.
func LoadConfig(configFile string) (*Config, error) {

	conf := new(Config)

	// Parse values from TOML file into struct.
	_, err := toml.DecodeFile(configFile, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read in TOML config file at '%s' with: %v", configFile, err)
	}

	// Converging makes no sense with a single replica.
	if len(conf.Simulation.Replicas) < 2 {
		return nil, fmt.Errorf("simulation needs at least two replicas, got %d", len(conf.Simulation.Replicas))
	}

	// Replica names have to be unique.
	seen := make(map[string]struct{}, len(conf.Simulation.Replicas))
	for _, name := range conf.Simulation.Replicas {

		if _, found := seen[name]; found {
			return nil, fmt.Errorf("replica '%s' defined more than once", name)
		}

		seen[name] = struct{}{}
	}

	if conf.Simulation.Rounds <= 0 {
		return nil, fmt.Errorf("simulation rounds have to be positive, got %d", conf.Simulation.Rounds)
	}

	if (conf.Simulation.Duplicate < 0) || (conf.Simulation.Duplicate > 1) {
		return nil, fmt.Errorf("duplicate probability %v not within [0, 1]", conf.Simulation.Duplicate)
	}

	return conf, nil
}
