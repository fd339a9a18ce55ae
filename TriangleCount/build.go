package TriangleCount

import (
	"fmt"

	"github.com/intel/forTriangleBenchGo/EdgeList"
)

// Mode selects how an edge list is symmetrized.
type Mode int

const (
	// Mirrored stores every edge in both orientations.
	Mirrored Mode = iota
	// Canonical stores every edge once, strictly below the diagonal.
	Canonical
)

func (m Mode) String() string {
	switch m {
	case Mirrored:
		return "mirrored"
	case Canonical:
		return "canonical"
	default:
		return "invalid mode"
	}
}

// Build returns the square adjacency matrix of list. Self edges are dropped
// and duplicate edges collapse to a single entry.
func Build[M any](b Backend[M], list EdgeList.CoordinateList, mode Mode) (A M, err error) {
	if mode != Mirrored && mode != Canonical {
		err = fmt.Errorf("%w: %v", ErrInvalidMode, int(mode))
		return
	}
	n := list.Dimension()
	if A, err = b.MatrixNew(n, n); err != nil {
		return
	}
	defer func() {
		if err != nil {
			_ = b.Free(A)
		}
	}()
	for _, e := range list.Edges {
		if e.Row == e.Col {
			continue
		}
		switch mode {
		case Mirrored:
			if err = b.SetElement(A, e.Row, e.Col); err != nil {
				return
			}
			if err = b.SetElement(A, e.Col, e.Row); err != nil {
				return
			}
		case Canonical:
			if err = b.SetElement(A, max(e.Row, e.Col), min(e.Row, e.Col)); err != nil {
				return
			}
		}
	}
	err = b.Materialize(A)
	return
}

// Buffer returns an empty scratch matrix with the dimensions of A.
func Buffer[M any](b Backend[M], A M) (C M, err error) {
	nrows, ncols, err := b.Size(A)
	if err != nil {
		return
	}
	return b.MatrixNew(nrows, ncols)
}
