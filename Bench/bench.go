package Bench

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/intel/forGraphBLASGo/GrB"
	"github.com/intel/forTriangleBenchGo/EdgeList"
	"github.com/intel/forTriangleBenchGo/TriangleCount"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// NewSuites returns one suite per configured backend, all sharing loader.
func NewSuites(config Config, loader *EdgeList.Loader) (suites []Suite, err error) {
	for _, name := range config.Backends {
		switch name {
		case GrBBackend:
			suites = append(suites, NewSuite[GrB.Matrix[int]](TriangleCount.NewGraphBLAS(config.Burble), loader))
		case CSRBackend:
			suites = append(suites, NewSuite[*TriangleCount.CSRMatrix](TriangleCount.NewCSR(), loader))
		default:
			return nil, fmt.Errorf("%w: unknown backend %q", ErrConfig, name)
		}
	}
	return
}

// Execute runs the whole benchmark: a configuration error is returned before
// any case is registered or any session acquired. The sessions are released
// on every path after a successful acquisition.
func Execute(args []string, fs afero.Fs, stdout io.Writer) (err error) {
	config, err := LoadConfig(fs, args)
	if err != nil {
		return
	}
	logger, err := NewLogger(config.LogLevel, config.Development)
	if err != nil {
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Debug("configuration", zap.Strings("graphs", config.Graphs), zap.Strings("backends", config.Backends),
		zap.Stringer("time unit", config.TimeUnit), zap.String("format", config.Format), zap.Int("repetitions", config.Repetitions))

	loader := EdgeList.NewLoader(EdgeList.WithFs(fs), EdgeList.WithLogger(logger))
	suites, err := NewSuites(config, loader)
	if err != nil {
		return
	}
	registry := NewRegistry()
	RegisterCases(registry, suites, config.Algorithms, config.Graphs)
	reporter, err := NewReporter(config.Format, stdout, config.TimeUnit)
	if err != nil {
		return
	}

	sessions := make([]TriangleCount.Session, len(suites))
	for i, suite := range suites {
		sessions[i] = suite
	}
	guard, err := Acquire(logger, sessions...)
	if err != nil {
		return
	}
	defer func() {
		err = errors.Join(err, guard.Release())
	}()

	if config.CPUProfile != "" {
		f, ferr := fs.Create(config.CPUProfile)
		if ferr != nil {
			return fmt.Errorf("could not create CPU profile: %w", ferr)
		}
		defer f.Close()
		if err = pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	executable, _ := os.Executable()
	if err = reporter.ReportContext(Context{
		Date:       time.Now(),
		Executable: executable,
		NumCPUs:    runtime.NumCPU(),
		Env:        guard.Env(),
	}); err != nil {
		return
	}
	tic := time.Now()
	if err = registry.Run(RunOptions{Filter: config.Filter, Repetitions: config.Repetitions}, reporter); err != nil {
		return
	}
	hits, misses := loader.Cache().Stats()
	logger.Info("benchmarks finished", zap.Int("cases", registry.Len()), zap.Duration("duration", time.Since(tic)),
		zap.Int("cache hits", hits), zap.Int("cache misses", misses))

	if config.MemProfile != "" {
		f, ferr := fs.Create(config.MemProfile)
		if ferr != nil {
			return fmt.Errorf("could not create memory profile: %w", ferr)
		}
		defer f.Close()
		runtime.GC()
		if err = pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}
	return nil
}
