package Bench_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/intel/forTriangleBenchGo/Bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonDocument struct {
	Context struct {
		NumCPUs int      `json:"num_cpus"`
		Env     []string `json:"env"`
	} `json:"context"`
	Benchmarks []map[string]any `json:"benchmarks"`
}

func TestExecuteJSON(t *testing.T) {
	var stdout bytes.Buffer
	err := Bench.Execute([]string{
		"--backends", "CSR", "--format", "json", "--time_unit", "us", "--log_level", "error",
		"--graphs", "/g/karate.txt", "/g/k4.txt",
	}, graphFs(t), &stdout)
	require.NoError(t, err)

	var doc jsonDocument
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Positive(t, doc.Context.NumCPUs)
	require.Len(t, doc.Context.Env, 1)

	expected := []struct {
		name      string
		triangles float64
	}{
		{"CSR_Burkhardt/karate.txt", 45},
		{"CSR_Sandia/karate.txt", 45},
		{"CSR_Burkhardt/k4.txt", 4},
		{"CSR_Sandia/k4.txt", 4},
	}
	require.Len(t, doc.Benchmarks, len(expected))
	for i, e := range expected {
		run := doc.Benchmarks[i]
		assert.Equal(t, e.name, run["name"])
		assert.Equal(t, e.triangles, run["triangles"], e.name)
		assert.Equal(t, 0.0, run["status"], e.name)
		assert.Equal(t, 1.0, run["iterations"], e.name)
		assert.Equal(t, "us", run["time_unit"], e.name)
		assert.Equal(t, float64(i), run["family_index"], e.name)
		assert.Equal(t, e.name, run["run_name"], e.name)
		assert.Equal(t, "iteration", run["run_type"], e.name)
		assert.Equal(t, 0.0, run["repetition_index"], e.name)
		assert.Equal(t, 1.0, run["repetitions"], e.name)
		assert.NotContains(t, run, "error_occurred", e.name)
	}
}

func TestExecuteRepetitions(t *testing.T) {
	var stdout bytes.Buffer
	err := Bench.Execute([]string{
		"--backends=CSR", "--algorithms=Burkhardt", "--format=json", "--log_level=error", "--repetitions=2",
		"--graphs", "/g/k4.txt",
	}, graphFs(t), &stdout)
	require.NoError(t, err)
	var doc jsonDocument
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Benchmarks, 2+3)
	for i, run := range doc.Benchmarks[:2] {
		assert.Equal(t, "CSR_Burkhardt/k4.txt", run["name"])
		assert.Equal(t, "iteration", run["run_type"])
		assert.Equal(t, float64(i), run["repetition_index"])
		assert.Equal(t, 2.0, run["repetitions"])
	}
	for i, aggregate := range []string{"mean", "median", "stddev"} {
		run := doc.Benchmarks[2+i]
		assert.Equal(t, "CSR_Burkhardt/k4.txt_"+aggregate, run["name"])
		assert.Equal(t, "CSR_Burkhardt/k4.txt", run["run_name"])
		assert.Equal(t, "aggregate", run["run_type"])
		assert.Equal(t, aggregate, run["aggregate_name"])
		assert.Equal(t, 0.0, run["family_index"])
		assert.NotContains(t, run, "repetition_index")
	}
	assert.Equal(t, 4.0, doc.Benchmarks[2]["triangles"])
	assert.Equal(t, 0.0, doc.Benchmarks[4]["triangles"])
}

func TestExecuteConsole(t *testing.T) {
	var stdout bytes.Buffer
	err := Bench.Execute([]string{
		"--backends=CSR", "--algorithms=Sandia", "--log_level=error", "--filter", "k5",
		"--graphs", "/g/k4.txt", "/g/k5.txt",
	}, graphFs(t), &stdout)
	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "env: ")
	assert.Contains(t, out, "CSR_Sandia/k5.txt")
	assert.Contains(t, out, "status=0 triangles=10")
	assert.NotContains(t, out, "k4.txt")
}

func TestExecuteNoGraphs(t *testing.T) {
	var stdout bytes.Buffer
	err := Bench.Execute([]string{"--backends=CSR", "--format=json", "--log_level=error"}, graphFs(t), &stdout)
	require.NoError(t, err)
	var doc jsonDocument
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Empty(t, doc.Benchmarks)
}

func TestExecuteConfigError(t *testing.T) {
	for _, args := range [][]string{
		{"--backends=CSR", "--graphs"},
		{"--backends=CSR", "--log_level=loud", "--graphs", "/g/k4.txt"},
	} {
		var stdout bytes.Buffer
		err := Bench.Execute(args, graphFs(t), &stdout)
		assert.ErrorIs(t, err, Bench.ErrConfig, args)
		assert.Zero(t, stdout.Len(), args)
	}
}

func TestExecuteReportsFailedCase(t *testing.T) {
	var stdout bytes.Buffer
	err := Bench.Execute([]string{
		"--backends=CSR", "--algorithms=Burkhardt", "--format=json", "--log_level=error",
		"--graphs", "/g/missing.txt", "/g/k5.txt",
	}, graphFs(t), &stdout)
	require.NoError(t, err)
	var doc jsonDocument
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Benchmarks, 2)
	assert.Equal(t, true, doc.Benchmarks[0]["error_occurred"])
	assert.True(t, strings.Contains(doc.Benchmarks[0]["error_message"].(string), "missing.txt"))
	assert.Equal(t, 1.0, doc.Benchmarks[0]["status"])
	assert.Equal(t, 10.0, doc.Benchmarks[1]["triangles"])
}
