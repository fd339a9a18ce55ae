package TriangleCount

import (
	"errors"
	"fmt"

	"github.com/intel/forGraphBLASGo/GrB"
)

// GraphBLAS runs the counters on SuiteSparse:GraphBLAS.
type GraphBLAS struct {
	Mode   GrB.Mode
	Burble bool
}

func NewGraphBLAS(burble bool) GraphBLAS {
	return GraphBLAS{Mode: GrB.NonBlocking, Burble: burble}
}

func (GraphBLAS) Name() string {
	return "GrB"
}

func (g GraphBLAS) Init() (err error) {
	defer GrB.CheckErrors(&err)
	GrB.OK(GrB.Init(g.Mode))
	GrB.OK(GrB.GlobalSetBurble(g.Burble))
	return
}

func (GraphBLAS) Finalize() error {
	return GrB.Finalize()
}

func (GraphBLAS) Info() (string, error) {
	omp, err := GrB.GlobalGetOpenMP()
	if err != nil {
		return "", err
	}
	return fmt.Sprint(
		GrB.SuiteSparseImplementationName, " ",
		GrB.SuiteSparseImplementationMajor, ".",
		GrB.SuiteSparseImplementationMinor, ".",
		GrB.SuiteSparseImplementationSub,
		" OpenMP: ", omp,
	), nil
}

func (GraphBLAS) MatrixNew(nrows, ncols int) (A GrB.Matrix[int], err error) {
	defer GrB.CheckErrors(&err)
	A, err = GrB.MatrixNew[int](nrows, ncols)
	GrB.OK(err)
	defer func() {
		if err != nil {
			_ = A.Free()
		}
	}()
	GrB.OK(A.SetSparsityControl(GrB.Sparse))
	return
}

func (GraphBLAS) SetElement(A GrB.Matrix[int], row, col int) error {
	return A.SetElement(1, row, col)
}

func (GraphBLAS) Materialize(A GrB.Matrix[int]) (err error) {
	defer GrB.CheckErrors(&err)
	GrB.OK(A.Wait(GrB.Materialize))
	layout, err := A.GetLayout()
	GrB.OK(err)
	if layout != GrB.ByRow {
		return errors.New("only by-row format supported")
	}
	return
}

func (GraphBLAS) Size(A GrB.Matrix[int]) (nrows, ncols int, err error) {
	return A.Size()
}

func (GraphBLAS) ExtractTuples(A GrB.Matrix[int]) (rows, cols, vals []int, err error) {
	err = A.ExtractTuples(&rows, &cols, &vals)
	return
}

// MxMMasked uses a structural mask: every stored entry of the adjacency
// matrices is 1, so presence and "greater than zero" coincide.
func (GraphBLAS) MxMMasked(C, mask, A, B GrB.Matrix[int], transposeB bool) error {
	desc := GrB.DescS
	if transposeB {
		desc = GrB.DescST1
	}
	return C.MxM(mask.AsMask(), nil, GrB.PlusOneb[int](), A, B, desc)
}

func (GraphBLAS) Reduce(C GrB.Matrix[int]) (int, error) {
	return C.Reduce(GrB.PlusMonoid[int](), nil)
}

func (GraphBLAS) Free(A GrB.Matrix[int]) error {
	return A.Free()
}

var _ Backend[GrB.Matrix[int]] = GraphBLAS{}
