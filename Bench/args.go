// Package Bench drives the triangle-count benchmarks: it turns process
// arguments into a configuration, registers one case per backend, algorithm
// and graph, acquires the backend sessions, runs every case for a single
// measured iteration and reports the triangles and status counters.
package Bench

import (
	"errors"
	"fmt"
)

// GraphsFlag marks the start of the graph paths. Every argument after it is a
// path.
const GraphsFlag = "--graphs"

var (
	ErrConfig   = errors.New("Bench configuration error")
	ErrNoGraphs = fmt.Errorf("%w: zero graphs were passed after %v", ErrConfig, GraphsFlag)
)

// ExtractGraphPaths splits args at the first GraphsFlag. The arguments before
// it are returned in rest. Without the flag no paths are returned and no
// error is reported.
func ExtractGraphPaths(args []string) (paths, rest []string, err error) {
	for i, arg := range args {
		if arg != GraphsFlag {
			continue
		}
		if i == len(args)-1 {
			return nil, nil, ErrNoGraphs
		}
		paths = append(paths, args[i+1:]...)
		rest = append(rest, args[:i]...)
		return paths, rest, nil
	}
	return nil, args, nil
}
