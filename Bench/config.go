package Bench

import (
	"fmt"
	"strings"

	"github.com/intel/forTriangleBenchGo/TriangleCount"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "TCBENCH"

// Backend names accepted by the backends option.
const (
	GrBBackend = "GrB"
	CSRBackend = "CSR"
)

var backendNames = []string{GrBBackend, CSRBackend}

const (
	ConsoleFormat = "console"
	JSONFormat    = "json"
)

type Config struct {
	Graphs      []string
	Backends    []string
	Algorithms  []TriangleCount.Method
	TimeUnit    TimeUnit
	Format      string
	Filter      string
	Repetitions int
	Burble      bool
	LogLevel    string
	Development bool
	CPUProfile  string
	MemProfile  string
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("tc-measure", pflag.ContinueOnError)
	flags.String("config", "", "optional configuration file (toml, yaml or json)")
	flags.StringArray("graph", nil, "graph file to benchmark, may be repeated; paths after "+GraphsFlag+" come first")
	flags.StringSlice("backends", backendNames, "backends to benchmark")
	flags.StringSlice("algorithms", []string{TriangleCount.Burkhardt.String(), TriangleCount.Sandia.String()}, "triangle count algorithms")
	flags.String("time_unit", Millisecond.String(), "reported time unit: ns, us, ms or s")
	flags.String("format", ConsoleFormat, "report format: console or json")
	flags.String("filter", "", "run only cases whose name contains this string")
	flags.Int("repetitions", 1, "number of times each case runs; more than one adds mean, median and stddev aggregates")
	flags.Bool("burble", false, "enable GraphBLAS burble output")
	flags.String("log_level", "info", "log level")
	flags.Bool("development", false, "development logger")
	flags.String("cpuprofile", "", "optional output file for a cpu profile")
	flags.String("memprofile", "", "optional output file for a mem profile")
	return flags
}

// LoadConfig reads the configuration from args, the TCBENCH_* environment
// and an optional configuration file on fs, in decreasing priority. The graph
// paths following GraphsFlag are extracted before flag parsing, so they may
// look like flags.
func LoadConfig(fs afero.Fs, args []string) (config Config, err error) {
	paths, rest, err := ExtractGraphPaths(args)
	if err != nil {
		return
	}

	flags := newFlagSet()
	if err = flags.Parse(rest); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		return config, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if flags.NArg() > 0 {
		return config, fmt.Errorf("%w: unexpected arguments %v, graph paths go after %v", ErrConfig, flags.Args(), GraphsFlag)
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if err = v.BindPFlags(flags); err != nil {
		return config, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err = v.ReadInConfig(); err != nil {
			return config, fmt.Errorf("%w: read %v: %w", ErrConfig, file, err)
		}
	}

	config.Graphs = append(paths, splitList(v.GetStringSlice("graph"))...)
	for _, name := range splitList(v.GetStringSlice("backends")) {
		backend, ok := canonicalBackend(name)
		if !ok {
			return config, fmt.Errorf("%w: unknown backend %q, expected one of %v", ErrConfig, name, backendNames)
		}
		if !contains(config.Backends, backend) {
			config.Backends = append(config.Backends, backend)
		}
	}
	for _, name := range splitList(v.GetStringSlice("algorithms")) {
		method, err := TriangleCount.ParseMethod(name)
		if err != nil {
			return config, fmt.Errorf("%w: %w", ErrConfig, err)
		}
		if !contains(config.Algorithms, method) {
			config.Algorithms = append(config.Algorithms, method)
		}
	}
	if config.TimeUnit, err = ParseTimeUnit(v.GetString("time_unit")); err != nil {
		return
	}
	switch config.Format = strings.ToLower(v.GetString("format")); config.Format {
	case ConsoleFormat, JSONFormat:
	default:
		return config, fmt.Errorf("%w: unknown format %q", ErrConfig, config.Format)
	}
	config.Filter = v.GetString("filter")
	if config.Repetitions = v.GetInt("repetitions"); config.Repetitions < 1 {
		return config, fmt.Errorf("%w: repetitions must be positive, got %v", ErrConfig, config.Repetitions)
	}
	config.Burble = v.GetBool("burble")
	config.LogLevel = v.GetString("log_level")
	config.Development = v.GetBool("development")
	config.CPUProfile = v.GetString("cpuprofile")
	config.MemProfile = v.GetString("memprofile")
	return config, nil
}

// splitList also splits elements on commas, since list values taken from the
// environment or a configuration file may arrive as one string.
func splitList(values []string) (result []string) {
	for _, value := range values {
		for _, s := range strings.Split(value, ",") {
			if s = strings.TrimSpace(s); s != "" {
				result = append(result, s)
			}
		}
	}
	return
}

func canonicalBackend(name string) (string, bool) {
	for _, backend := range backendNames {
		if strings.EqualFold(name, backend) {
			return backend, true
		}
	}
	return "", false
}

func contains[T comparable](values []T, value T) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
