package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Structs

// Env holds information specific to the
// system the simulator runs on. This enables
// host adaptions without needing to maintain
// two different config files.
type Env struct {
	Seed *int64
}

// Functions

// LoadEnv reads in the .env file at envFile, if there
// is one, and picks up all values relevant to us from
// the process environment afterwards.
func LoadEnv(envFile string) (*Env, error) {

	// Load environment file.
	err := godotenv.Load(envFile)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrapf(err, "failed to read in env file '%s'", envFile)
	}

	env := new(Env)

	// LATTICE_SEED overrides the configured seed.
	if raw, found := os.LookupEnv("LATTICE_SEED"); found {

		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrap(err, "LATTICE_SEED is not an integer")
		}

		env.Seed = &seed
	}

	return env, nil
}

// Apply overrides values in conf with those
// found in the environment.
func (e *Env) Apply(conf *Config) {

	if e.Seed != nil {
		conf.Simulation.Seed = *e.Seed
	}
}
