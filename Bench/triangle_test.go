package Bench_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/intel/forTriangleBenchGo/Bench"
	"github.com/intel/forTriangleBenchGo/EdgeList"
	"github.com/intel/forTriangleBenchGo/TriangleCount"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// graphFs copies the edge list test data into /g of an in-memory filesystem.
func graphFs(t *testing.T) afero.Fs {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"karate.txt", "k4.txt", "k5.txt", "bipartite.txt", "k4.mtx"} {
		data, err := os.ReadFile(filepath.Join("..", "EdgeList", "testdata", name))
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, "/g/"+name, data, 0644))
	}
	return fs
}

func TestCaseName(t *testing.T) {
	assert.Equal(t, "GrB_Sandia/karate.txt", Bench.CaseName("GrB", TriangleCount.Sandia, "/data/snap/karate.txt"))
	assert.Equal(t, "CSR_Burkhardt/k4.mtx", Bench.CaseName("CSR", TriangleCount.Burkhardt, "k4.mtx"))
}

func TestRegisterCases(t *testing.T) {
	loader := EdgeList.NewLoader(EdgeList.WithFs(graphFs(t)))
	suites := []Bench.Suite{
		Bench.NewSuite[*TriangleCount.CSRMatrix](TriangleCount.NewCSR(), loader),
	}
	r := Bench.NewRegistry()
	Bench.RegisterCases(r, suites, TriangleCount.AllMethods, []string{"/g/karate.txt", "/g/k4.txt"})
	var names []string
	for _, c := range r.Cases() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"CSR_Burkhardt/karate.txt", "CSR_Sandia/karate.txt",
		"CSR_Burkhardt/k4.txt", "CSR_Sandia/k4.txt",
	}, names)

	r = Bench.NewRegistry()
	Bench.RegisterCases(r, suites, TriangleCount.AllMethods, nil)
	assert.Zero(t, r.Len())
}

func TestTriangleCases(t *testing.T) {
	loader := EdgeList.NewLoader(EdgeList.WithFs(graphFs(t)))
	csr := TriangleCount.NewCSR()
	suites := []Bench.Suite{Bench.NewSuite[*TriangleCount.CSRMatrix](csr, loader)}
	r := Bench.NewRegistry()
	paths := []string{"/g/karate.txt", "/g/karate.txt", "/g/k5.txt", "/g/bipartite.txt", "/g/k4.mtx", "/g/missing.txt"}
	Bench.RegisterCases(r, suites, TriangleCount.AllMethods, paths)

	guard, err := Bench.Acquire(zap.NewNop(), csr)
	require.NoError(t, err)
	var rec recorder
	require.NoError(t, r.Run(Bench.RunOptions{}, &rec))
	require.NoError(t, guard.Release())

	expected := []float64{45, 45, 45, 45, 10, 10, 0, 0, 4, 4}
	require.Len(t, rec.runs, len(expected)+2)
	for i, triangles := range expected {
		run := rec.runs[i]
		assert.Empty(t, run.Error, run.Name)
		assert.Equal(t, 1, run.Iterations, run.Name)
		assert.Equal(t, triangles, run.Counters[Bench.TrianglesCounter], run.Name)
		assert.Equal(t, float64(TriangleCount.Ok), run.Counters[Bench.StatusCounter], run.Name)
	}
	for _, run := range rec.runs[len(expected):] {
		assert.NotEmpty(t, run.Error, run.Name)
		assert.Zero(t, run.Iterations, run.Name)
		assert.Equal(t, 0.0, run.Counters[Bench.TrianglesCounter], run.Name)
		assert.Equal(t, float64(TriangleCount.Error), run.Counters[Bench.StatusCounter], run.Name)
	}

	// consecutive cases on one path share a single read
	hits, misses := loader.Cache().Stats()
	assert.Equal(t, 6, misses)
	assert.Equal(t, 6, hits)
}

func TestTriangleCaseWithoutSession(t *testing.T) {
	loader := EdgeList.NewLoader(EdgeList.WithFs(graphFs(t)))
	suite := Bench.NewSuite[*TriangleCount.CSRMatrix](TriangleCount.NewCSR(), loader)
	r := Bench.NewRegistry()
	Bench.RegisterCases(r, []Bench.Suite{suite}, []TriangleCount.Method{TriangleCount.Sandia}, []string{"/g/k4.txt"})
	var rec recorder
	require.NoError(t, r.Run(Bench.RunOptions{}, &rec))
	require.Len(t, rec.runs, 1)
	assert.NotEmpty(t, rec.runs[0].Error)
	assert.Equal(t, float64(TriangleCount.InvalidState), rec.runs[0].Counters[Bench.StatusCounter])
}

func TestTriangleCaseRepetitions(t *testing.T) {
	loader := EdgeList.NewLoader(EdgeList.WithFs(graphFs(t)))
	csr := TriangleCount.NewCSR()
	suite := Bench.NewSuite[*TriangleCount.CSRMatrix](csr, loader)
	r := Bench.NewRegistry()
	Bench.RegisterCases(r, []Bench.Suite{suite}, []TriangleCount.Method{TriangleCount.Sandia}, []string{"/g/karate.txt"})

	guard, err := Bench.Acquire(zap.NewNop(), csr)
	require.NoError(t, err)
	var rec recorder
	require.NoError(t, r.Run(Bench.RunOptions{Repetitions: 4}, &rec))
	require.NoError(t, guard.Release())

	require.Len(t, rec.runs, 4+3)
	for i, run := range rec.runs[:4] {
		assert.Empty(t, run.Error)
		assert.Equal(t, i, run.RepetitionIndex)
		assert.Equal(t, 45.0, run.Counters[Bench.TrianglesCounter])
	}
	assert.Equal(t, "CSR_Sandia/karate.txt_mean", rec.runs[4].Name)
	assert.Equal(t, 45.0, rec.runs[4].Counters[Bench.TrianglesCounter])
	assert.Equal(t, 0.0, rec.runs[6].Counters[Bench.StatusCounter])

	// only the first repetition reads the file
	hits, misses := loader.Cache().Stats()
	assert.Equal(t, 1, misses)
	assert.Equal(t, 3, hits)
}
