package Bench

import (
	"fmt"
	"strings"
	"time"

	"github.com/intel/forTriangleBenchGo/TriangleCount"
)

// State is handed to a running case. Only the region driven by Loop is timed.
type State struct {
	iterations, done int
	started, stopped bool
	start            time.Time
	elapsed          time.Duration
	counters         map[string]float64
	err              error
}

func newState(iterations int) *State {
	return &State{iterations: iterations, counters: make(map[string]float64)}
}

// Loop reports whether another measured iteration should run:
//
//	for st.Loop() {
//		...
//	}
//
// The timer starts at the first call and stops once the iterations are
// exhausted.
func (st *State) Loop() bool {
	if !st.started {
		st.started = true
		st.start = time.Now()
	}
	if st.done < st.iterations {
		st.done++
		return true
	}
	st.stop()
	return false
}

func (st *State) stop() {
	if st.started && !st.stopped {
		st.elapsed = time.Since(st.start)
		st.stopped = true
	}
}

func (st *State) Iterations() int {
	return st.iterations
}

func (st *State) SetCounter(name string, value float64) {
	st.counters[name] = value
}

// SkipWithError marks the case as failed. The case function should return
// afterwards.
func (st *State) SkipWithError(err error) {
	st.err = err
}

type Func func(st *State)

type Case struct {
	Name       string
	iterations int
	fn         Func
}

// Iterations fixes the number of measured iterations of c.
func (c *Case) Iterations(n int) *Case {
	if n < 1 {
		panic(fmt.Sprintf("case %v: iterations must be positive, got %v", c.Name, n))
	}
	c.iterations = n
	return c
}

const (
	IterationRun = "iteration"
	AggregateRun = "aggregate"
)

// Run is the outcome of one repetition of a case, or an aggregate over all
// repetitions of it. FamilyIndex numbers the cases in the order they ran.
type Run struct {
	Name            string
	RunName         string
	RunType         string
	AggregateName   string
	FamilyIndex     int
	RepetitionIndex int
	Repetitions     int
	Iterations      int
	Elapsed         time.Duration
	Counters        map[string]float64
	Error           string
}

func (c *Case) run() (run Run) {
	st := newState(c.iterations)
	run.Name, run.RunName, run.RunType = c.Name, c.Name, IterationRun
	defer func() {
		if p := recover(); p != nil {
			st.err = fmt.Errorf("panic: %v", p)
			st.SetCounter(StatusCounter, float64(TriangleCount.Error))
		}
		st.stop()
		run.Iterations = st.done
		run.Elapsed = st.elapsed
		run.Counters = st.counters
		if st.err != nil {
			run.Error = st.err.Error()
		}
	}()
	c.fn(st)
	return
}

// Registry holds cases in registration order.
type Registry struct {
	cases []*Case
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a case running a single iteration unless changed with
// Iterations.
func (r *Registry) Register(name string, fn Func) *Case {
	c := &Case{Name: name, iterations: 1, fn: fn}
	r.cases = append(r.cases, c)
	return c
}

func (r *Registry) Cases() []*Case {
	return r.cases
}

func (r *Registry) Len() int {
	return len(r.cases)
}

type RunOptions struct {
	// Filter selects the cases whose name contains it; empty selects all.
	Filter string
	// Repetitions is the number of times each case runs, each time with a
	// fresh State. Values below 1 mean 1.
	Repetitions int
}

// Run executes the selected cases one after the other, all repetitions of a
// case before the next case, and hands each outcome to reporter. With more
// than one repetition the aggregates of a case follow its repetitions. A
// failing or panicking case does not stop the others.
func (r *Registry) Run(options RunOptions, reporter Reporter) error {
	repetitions := max(options.Repetitions, 1)
	family := 0
	for _, c := range r.cases {
		if options.Filter != "" && !strings.Contains(c.Name, options.Filter) {
			continue
		}
		runs := make([]Run, 0, repetitions)
		for i := 0; i < repetitions; i++ {
			run := c.run()
			run.FamilyIndex, run.RepetitionIndex, run.Repetitions = family, i, repetitions
			if err := reporter.ReportRun(run); err != nil {
				return err
			}
			runs = append(runs, run)
		}
		if repetitions > 1 {
			for _, run := range aggregate(runs) {
				if err := reporter.ReportRun(run); err != nil {
					return err
				}
			}
		}
		family++
	}
	return reporter.Finalize()
}
