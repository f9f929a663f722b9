package main

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-pluto/lattice/config"
	"github.com/go-pluto/lattice/crdt"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(w io.Writer, loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(w))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// runScenarios runs every configured scenario and
// returns the names of those that did not converge.
// Unknown scenario names count as not converged.
func runScenarios(conf *config.Config, logger log.Logger, m *crdt.Metrics) []string {

	names := conf.Simulation.Scenarios
	if len(names) == 0 {

		for name := range scenarios {
			names = append(names, name)
		}

		sort.Strings(names)
	}

	var diverged []string

	for _, name := range names {

		logger := log.With(logger, "scenario", name)

		run, found := scenarios[name]
		if !found {
			level.Error(logger).Log("msg", "unknown scenario")
			diverged = append(diverged, name)
			continue
		}

		converged, err := run(conf.Simulation, logger, m)
		if err != nil {
			level.Error(logger).Log(
				"msg", "scenario failed",
				"err", err,
			)
			diverged = append(diverged, name)
			continue
		}

		if !converged {
			level.Error(logger).Log("msg", "replicas diverged")
			diverged = append(diverged, name)
			continue
		}

		level.Info(logger).Log(
			"msg", "replicas converged",
			"replicas", len(conf.Simulation.Replicas),
			"rounds", conf.Simulation.Rounds,
		)
	}

	return diverged
}

// holdMetrics blocks until stop fires if metrics are
// exposed on addr. Without an address it returns at once.
func holdMetrics(logger log.Logger, addr string, stop <-chan os.Signal) {

	if addr == "" {
		return
	}

	level.Info(logger).Log(
		"msg", "run finished, serving metrics until interrupted",
		"addr", addr,
	)

	sig := <-stop
	level.Info(logger).Log("msg", "received signal, shutting down", "signal", sig)
}

func main() {

	// Parse command-line flags.
	configFlag := flag.String("config", "config.toml", "Provide path to configuration file in TOML syntax.")
	envFlag := flag.String("env", ".env", "Provide path to an optional .env file overriding config values.")
	loglevelFlag := flag.String("loglevel", "info", "This flag sets the default logging level.")
	flag.Parse()

	logger := initLogger(os.Stdout, *loglevelFlag)

	// Read configuration from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config",
			"err", err,
		)
		os.Exit(1)
	}

	env, err := config.LoadEnv(*envFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the environment",
			"err", err,
		)
		os.Exit(2)
	}
	env.Apply(conf)

	m := NewLatticeMetrics(conf.Metrics.PrometheusAddr)
	go runPromHTTP(logger, conf.Metrics.PrometheusAddr)

	diverged := runScenarios(conf, logger, m)

	// Keep /metrics scrapable after the run until
	// the process is told to stop.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	holdMetrics(logger, conf.Metrics.PrometheusAddr, stop)

	if len(diverged) > 0 {
		level.Error(logger).Log(
			"msg", "not all scenarios converged",
			"scenarios", strings.Join(diverged, ","),
		)
		os.Exit(3)
	}
}
