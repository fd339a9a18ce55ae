package Bench

import (
	"path/filepath"

	"github.com/intel/forTriangleBenchGo/EdgeList"
	"github.com/intel/forTriangleBenchGo/TriangleCount"
)

const (
	TrianglesCounter = "triangles"
	StatusCounter    = "status"
)

// Suite produces triangle-count cases for one backend.
type Suite interface {
	TriangleCount.Session
	Case(method TriangleCount.Method, path string) Func
}

type triangleSuite[M any] struct {
	TriangleCount.Backend[M]
	loader *EdgeList.Loader
}

func NewSuite[M any](backend TriangleCount.Backend[M], loader *EdgeList.Loader) Suite {
	return triangleSuite[M]{Backend: backend, loader: loader}
}

// Case loads the graph, builds the matrix in the layout method expects and
// counts inside the measured loop. Only the count is timed.
func (s triangleSuite[M]) Case(method TriangleCount.Method, path string) Func {
	return func(st *State) {
		var result TriangleCount.Result
		defer func() {
			st.SetCounter(TrianglesCounter, float64(result.Triangles))
			st.SetCounter(StatusCounter, float64(result.Status))
		}()

		list, err := s.loader.Load(path)
		if err != nil {
			result.Record(0, err)
			st.SkipWithError(err)
			return
		}
		A, err := TriangleCount.Build(s.Backend, list, method.Mode())
		if err != nil {
			result.Record(0, err)
			st.SkipWithError(err)
			return
		}
		defer func() {
			_ = s.Free(A)
		}()
		C, err := TriangleCount.Buffer(s.Backend, A)
		if err != nil {
			result.Record(0, err)
			st.SkipWithError(err)
			return
		}
		defer func() {
			_ = s.Free(C)
		}()

		for st.Loop() {
			result.Record(TriangleCount.Count(s.Backend, method, A, C))
		}
	}
}

// CaseName is the backend and algorithm prefix followed by the base name of
// the graph file, for example "GrB_Sandia/karate.txt".
func CaseName(backend string, method TriangleCount.Method, path string) string {
	return backend + "_" + method.String() + "/" + filepath.Base(path)
}

// RegisterCases registers, for each path in order, one case per suite and
// method, each limited to a single measured iteration.
func RegisterCases(r *Registry, suites []Suite, methods []TriangleCount.Method, paths []string) {
	for _, path := range paths {
		for _, suite := range suites {
			for _, method := range methods {
				r.Register(CaseName(suite.Name(), method, path), suite.Case(method, path)).Iterations(1)
			}
		}
	}
}
