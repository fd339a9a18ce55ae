package TriangleCount

import (
	"fmt"
	"strings"
)

type Method int

const (
	Burkhardt Method = iota
	Sandia
)

var AllMethods = []Method{Burkhardt, Sandia}

func (m Method) String() string {
	switch m {
	case Burkhardt:
		return "Burkhardt"
	case Sandia:
		return "Sandia"
	default:
		panic("invalid triangle count method")
	}
}

// Mode is the construction mode the method's input matrix must be built with.
func (m Method) Mode() Mode {
	if m == Sandia {
		return Canonical
	}
	return Mirrored
}

func ParseMethod(s string) (Method, error) {
	for _, m := range AllMethods {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown triangle count method %q", s)
}

// CountSandia counts the triangles of a Canonical matrix L: C<L> = L*L, and
// every triangle contributes exactly one unit to the sum of C.
func CountSandia[M any](b Backend[M], L, C M) (ntriangles int, err error) {
	if err = b.MxMMasked(C, L, L, L, false); err != nil {
		return
	}
	return b.Reduce(C)
}

// SumBurkhardt returns the sum of C<A> = A*A' for a Mirrored matrix A.
func SumBurkhardt[M any](b Backend[M], A, C M) (sum int, err error) {
	if err = b.MxMMasked(C, A, A, A, true); err != nil {
		return
	}
	return b.Reduce(C)
}

// CountBurkhardt counts the triangles of a Mirrored matrix A. Each triangle
// is seen from 3 vertices in 2 directions.
func CountBurkhardt[M any](b Backend[M], A, C M) (ntriangles int, err error) {
	sum, err := SumBurkhardt(b, A, C)
	if err != nil {
		return
	}
	if sum%6 != 0 {
		return 0, fmt.Errorf("%w: sum %v", ErrNotSymmetric, sum)
	}
	return sum / 6, nil
}

// Count dispatches to the counter of method. A must have been built with
// method.Mode().
func Count[M any](b Backend[M], method Method, A, C M) (int, error) {
	switch method {
	case Burkhardt:
		return CountBurkhardt(b, A, C)
	case Sandia:
		return CountSandia(b, A, C)
	default:
		return 0, fmt.Errorf("%w: method %v", ErrInvalidMode, int(method))
	}
}
