package Bench

import (
	"math"
	"sort"
	"time"
)

type statistic struct {
	name    string
	compute func(values []float64) float64
}

var statistics = []statistic{
	{"mean", mean},
	{"median", median},
	{"stddev", stddev},
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stddev is the sample standard deviation; it is 0 for fewer than two values.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// aggregate summarizes the successful repetitions of one case, named
// "<case>_mean" and so on. Failed repetitions are left out; if none
// succeeded there is nothing to report.
func aggregate(runs []Run) []Run {
	var ok []Run
	for _, run := range runs {
		if run.Error == "" {
			ok = append(ok, run)
		}
	}
	if len(ok) == 0 {
		return nil
	}
	first := ok[0]
	times := make([]float64, len(ok))
	for i, run := range ok {
		times[i] = float64(run.Elapsed)
	}
	aggregates := make([]Run, 0, len(statistics))
	for _, s := range statistics {
		run := Run{
			Name:          first.RunName + "_" + s.name,
			RunName:       first.RunName,
			RunType:       AggregateRun,
			AggregateName: s.name,
			FamilyIndex:   first.FamilyIndex,
			Repetitions:   first.Repetitions,
			Iterations:    len(ok),
			Elapsed:       time.Duration(s.compute(times)),
			Counters:      make(map[string]float64, len(first.Counters)),
		}
		for name := range first.Counters {
			values := make([]float64, len(ok))
			for i, r := range ok {
				values[i] = r.Counters[name]
			}
			run.Counters[name] = s.compute(values)
		}
		aggregates = append(aggregates, run)
	}
	return aggregates
}
