package config_test

import (
	"os"
	"testing"

	"github.com/go-pluto/lattice/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Functions

// TestLoadEnv executes a black-box test on the
// implemented functionalities to load a .env file.
func TestLoadEnv(t *testing.T) {

	// godotenv does not override variables already set.
	os.Unsetenv("LATTICE_SEED")
	defer os.Unsetenv("LATTICE_SEED")

	env, err := config.LoadEnv("testdata/seed.env")
	require.NoError(t, err)
	require.NotNil(t, env.Seed)
	assert.Equal(t, int64(1337), *env.Seed)

	conf, err := config.LoadConfig("testdata/config.toml")
	require.NoError(t, err)

	env.Apply(conf)
	assert.Equal(t, int64(1337), conf.Simulation.Seed)
}

// TestLoadEnvMissing makes sure a missing .env file
// is not an error.
func TestLoadEnvMissing(t *testing.T) {

	t.Setenv("LATTICE_SEED", "")
	os.Unsetenv("LATTICE_SEED")

	env, err := config.LoadEnv("testdata/missing.env")
	require.NoError(t, err)
	assert.Nil(t, env.Seed)
}

// TestLoadEnvBadSeed expects a non-numeric seed to fail.
func TestLoadEnvBadSeed(t *testing.T) {

	t.Setenv("LATTICE_SEED", "")
	os.Unsetenv("LATTICE_SEED")

	_, err := config.LoadEnv("testdata/bad-seed.env")
	assert.Error(t, err)
}
