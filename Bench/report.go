package Bench

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
)

// Context describes the machine and sessions of a run.
type Context struct {
	Date       time.Time
	Executable string
	NumCPUs    int
	Env        []string
}

type Reporter interface {
	ReportContext(ctx Context) error
	ReportRun(run Run) error
	Finalize() error
}

func NewReporter(format string, w io.Writer, unit TimeUnit) (Reporter, error) {
	switch format {
	case ConsoleFormat:
		return NewConsoleReporter(w, unit), nil
	case JSONFormat:
		return NewJSONReporter(w, unit), nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", ErrConfig, format)
}

func sortedCounters(counters map[string]float64) []string {
	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ConsoleReporter writes an aligned table, one line per run or aggregate.
type ConsoleReporter struct {
	w      io.Writer
	tw     *tabwriter.Writer
	unit   TimeUnit
	header bool
}

func NewConsoleReporter(w io.Writer, unit TimeUnit) *ConsoleReporter {
	return &ConsoleReporter{w: w, tw: tabwriter.NewWriter(w, 0, 8, 2, ' ', 0), unit: unit}
}

func (r *ConsoleReporter) ReportContext(ctx Context) (err error) {
	if _, err = fmt.Fprintf(r.w, "%v\nRunning %v\nRun on (%v X CPU s)\n", ctx.Date.Format(time.RFC3339), ctx.Executable, ctx.NumCPUs); err != nil {
		return
	}
	for _, env := range ctx.Env {
		if _, err = fmt.Fprintf(r.w, "env: %v\n", env); err != nil {
			return
		}
	}
	return
}

func (r *ConsoleReporter) ReportRun(run Run) (err error) {
	if !r.header {
		r.header = true
		if _, err = fmt.Fprintln(r.tw, "Benchmark\tTime\tIterations\tUserCounters..."); err != nil {
			return
		}
		if _, err = fmt.Fprintln(r.tw, strings.Repeat("-", 9)+"\t"+strings.Repeat("-", 4)+"\t"+strings.Repeat("-", 10)+"\t"+strings.Repeat("-", 15)); err != nil {
			return
		}
	}
	var counters []string
	for _, name := range sortedCounters(run.Counters) {
		counters = append(counters, fmt.Sprintf("%v=%v", name, run.Counters[name]))
	}
	if run.Error != "" {
		_, err = fmt.Fprintf(r.tw, "%v\tERROR OCCURRED: '%v'\t%v\t%v\n", run.Name, run.Error, run.Iterations, strings.Join(counters, " "))
		return
	}
	_, err = fmt.Fprintf(r.tw, "%v\t%.3f %v\t%v\t%v\n", run.Name, r.unit.Scale(run.Elapsed), r.unit, run.Iterations, strings.Join(counters, " "))
	return
}

func (r *ConsoleReporter) Finalize() error {
	return r.tw.Flush()
}

type jsonContext struct {
	Date       string   `json:"date"`
	Executable string   `json:"executable"`
	NumCPUs    int      `json:"num_cpus"`
	Env        []string `json:"env"`
}

// JSONReporter collects all runs and writes a single document on Finalize.
// Counters are flattened into the run objects.
type JSONReporter struct {
	w          io.Writer
	unit       TimeUnit
	context    jsonContext
	benchmarks []map[string]any
}

func NewJSONReporter(w io.Writer, unit TimeUnit) *JSONReporter {
	return &JSONReporter{w: w, unit: unit, benchmarks: []map[string]any{}}
}

func (r *JSONReporter) ReportContext(ctx Context) error {
	r.context = jsonContext{
		Date:       ctx.Date.Format(time.RFC3339),
		Executable: ctx.Executable,
		NumCPUs:    ctx.NumCPUs,
		Env:        ctx.Env,
	}
	return nil
}

func (r *JSONReporter) ReportRun(run Run) error {
	entry := map[string]any{
		"name":                      run.Name,
		"family_index":              run.FamilyIndex,
		"per_family_instance_index": 0,
		"run_name":                  run.RunName,
		"run_type":                  run.RunType,
		"repetitions":               run.Repetitions,
		"threads":                   1,
		"iterations":                run.Iterations,
		"real_time":                 r.unit.Scale(run.Elapsed),
		"time_unit":                 r.unit.String(),
	}
	if run.RunType == AggregateRun {
		entry["aggregate_name"] = run.AggregateName
	} else {
		entry["repetition_index"] = run.RepetitionIndex
	}
	if run.Error != "" {
		entry["error_occurred"] = true
		entry["error_message"] = run.Error
	}
	for name, value := range run.Counters {
		entry[name] = value
	}
	r.benchmarks = append(r.benchmarks, entry)
	return nil
}

func (r *JSONReporter) Finalize() error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Context    jsonContext      `json:"context"`
		Benchmarks []map[string]any `json:"benchmarks"`
	}{r.context, r.benchmarks})
}
