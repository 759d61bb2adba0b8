// Package cli holds the flags every flock command shares.
package cli

import (
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/logging"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

// Flags selects a configuration file, overrides a few of its run settings and
// configures logging.
type Flags struct {
	ConfigFile string
	Population int
	Strategy   string
	Workers    int
	Seed       uint64

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Register adds the flags to fs with the defaults of simulation.DefaultConfig.
func (f *Flags) Register(fs *pflag.FlagSet) {
	def := simulation.DefaultConfig()
	fs.StringVarP(&f.ConfigFile, "config", "c", "", "JSON or YAML configuration file")
	fs.IntVarP(&f.Population, "population", "n", def.Population, "number of agents")
	fs.StringVarP(&f.Strategy, "strategy", "s", def.Strategy, "execution strategy (parallel or batch)")
	fs.IntVar(&f.Workers, "workers", def.Workers, "parallel strategy workers, 0 for GOMAXPROCS")
	fs.Uint64Var(&f.Seed, "seed", def.Seed, "random seed for the initial flock and patrols")

	fs.StringVar(&f.LogLevel, "log-level", "info", "debug, info, warn or error")
	fs.StringVar(&f.LogFormat, "log-format", logging.EncodingConsole, "json or console")
	fs.StringVar(&f.LogFile, "log-file", "", "write logs to this file instead of stderr")
}

// Config loads the configuration file, or the defaults without one, then
// applies the run settings set explicitly on the command line.
func (f *Flags) Config(fs *pflag.FlagSet) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if f.ConfigFile != "" {
		loaded, err := simulation.LoadConfig(f.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if fs.Changed("population") {
		cfg.Population = f.Population
	}
	if fs.Changed("strategy") {
		cfg.Strategy = f.Strategy
	}
	if fs.Changed("workers") {
		cfg.Workers = f.Workers
	}
	if fs.Changed("seed") {
		cfg.Seed = f.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Logger builds the logger described by the log flags.
func (f *Flags) Logger() (*zap.Logger, error) {
	if f.LogFile != "" {
		return logging.New(f.LogLevel, f.LogFormat, f.LogFile)
	}
	return logging.New(f.LogLevel, f.LogFormat)
}
