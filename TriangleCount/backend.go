// Package TriangleCount builds adjacency matrices from coordinate lists and
// counts triangles with the Sandia and Burkhardt formulations, expressed as
// masked matrix products executed by an interchangeable Backend.
package TriangleCount

import (
	"errors"

	"github.com/intel/forGraphBLASGo/GrB"
)

// Session is the library-wide resource of a backend. Init must be called
// exactly once before any matrix is created and Finalize exactly once after
// the last one is freed.
type Session interface {
	Name() string
	Init() error
	Finalize() error
	Info() (string, error)
}

// Backend supplies the sparse integer matrix primitives the counters need.
// M is the backend's matrix handle.
type Backend[M any] interface {
	Session

	// MatrixNew returns an empty matrix hinted for compressed-row storage.
	MatrixNew(nrows, ncols int) (M, error)
	// SetElement stores 1 at (row, col).
	SetElement(A M, row, col int) error
	// Materialize finishes pending updates.
	Materialize(A M) error
	Size(A M) (nrows, ncols int, err error)
	ExtractTuples(A M) (rows, cols, vals []int, err error)
	// MxMMasked computes C<mask> = A plus.times B, or A plus.times B' when
	// transposeB is set. Only positions where mask is greater than zero are
	// written.
	MxMMasked(C, mask, A, B M, transposeB bool) error
	// Reduce sums all entries of C.
	Reduce(C M) (int, error)
	Free(A M) error
}

var (
	ErrSession           = errors.New("TriangleCount backend session not initialized or already finalized")
	ErrDimensionMismatch = errors.New("TriangleCount matrix dimensions do not match")
	ErrIndexOutOfBounds  = errors.New("TriangleCount index out of bounds")
	ErrNotSymmetric      = errors.New("TriangleCount masked sum is not a multiple of 6, matrix is not symmetric")
	ErrInvalidMode       = errors.New("TriangleCount invalid construction mode")
)

// Status is the numeric outcome reported next to a triangle count; Ok is 0.
type Status int

const (
	Ok Status = iota
	Error
	InvalidState
	InvalidArgument
	NotImplemented
)

func (s Status) String() string {
	switch s {
	case Ok:
		return "ok"
	case Error:
		return "error"
	case InvalidState:
		return "invalid state"
	case InvalidArgument:
		return "invalid argument"
	case NotImplemented:
		return "not implemented"
	default:
		return "unknown status"
	}
}

func StatusOf(err error) Status {
	switch {
	case err == nil:
		return Ok
	case errors.Is(err, ErrSession), errors.Is(err, ErrNotSymmetric):
		return InvalidState
	case errors.Is(err, ErrDimensionMismatch), errors.Is(err, ErrIndexOutOfBounds),
		errors.Is(err, ErrInvalidMode), errors.Is(err, GrB.InvalidValue):
		return InvalidArgument
	case errors.Is(err, GrB.NotImplemented):
		return NotImplemented
	default:
		return Error
	}
}

// Result carries the count of the last successful run and the status of the
// most recent one.
type Result struct {
	Triangles int
	Status    Status
}

// Record stores the outcome of one counter call. On failure the previous
// count is kept.
func (r *Result) Record(triangles int, err error) Status {
	r.Status = StatusOf(err)
	if err == nil {
		r.Triangles = triangles
	}
	return r.Status
}
