package TriangleCount

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/intel/forGoParallel/parallel"
	"github.com/intel/forGoParallel/psort"
)

// CSRMatrix is a compressed-row integer matrix. Writes are buffered as
// tuples until Materialize sorts them into the row structure.
type CSRMatrix struct {
	nrows, ncols int
	ptr, ind     []int
	val          []int

	pendingRows, pendingCols []int
}

func newCSRMatrix(nrows, ncols int) *CSRMatrix {
	return &CSRMatrix{nrows: nrows, ncols: ncols, ptr: make([]int, nrows+1)}
}

func (m *CSRMatrix) row(i int) (ind, val []int) {
	lo, hi := m.ptr[i], m.ptr[i+1]
	return m.ind[lo:hi], m.val[lo:hi]
}

func (m *CSRMatrix) nvals() int {
	return len(m.ind)
}

// materialize buckets the pending tuples into their rows next to the stored
// entries, then sorts and deduplicates every row. All values become 1.
func (m *CSRMatrix) materialize() {
	if len(m.pendingRows) == 0 {
		return
	}
	start := make([]int, m.nrows+1)
	for i := 0; i < m.nrows; i++ {
		start[i+1] = m.ptr[i+1] - m.ptr[i]
	}
	for _, i := range m.pendingRows {
		start[i+1]++
	}
	for i := 0; i < m.nrows; i++ {
		start[i+1] += start[i]
	}
	cols := make([]int, start[m.nrows])
	next := make([]int, m.nrows)
	for i := 0; i < m.nrows; i++ {
		next[i] = start[i] + copy(cols[start[i]:], m.ind[m.ptr[i]:m.ptr[i+1]])
	}
	for k, i := range m.pendingRows {
		cols[next[i]] = m.pendingCols[k]
		next[i]++
	}
	m.pendingRows, m.pendingCols = nil, nil

	sizes := make([]int, m.nrows)
	parallel.Range(0, m.nrows, 0, func(low, high int) {
		for i := low; i < high; i++ {
			sizes[i] = uniqueColumns(cols[start[i]:start[i+1]])
		}
	})
	ptr := make([]int, m.nrows+1)
	for i, size := range sizes {
		ptr[i+1] = ptr[i] + size
	}
	ind := make([]int, ptr[m.nrows])
	val := make([]int, ptr[m.nrows])
	parallel.Range(0, m.nrows, 0, func(low, high int) {
		for i := low; i < high; i++ {
			copy(ind[ptr[i]:ptr[i+1]], cols[start[i]:])
			for k := ptr[i]; k < ptr[i+1]; k++ {
				val[k] = 1
			}
		}
	})
	m.ptr, m.ind, m.val = ptr, ind, val
}

// rows longer than this are sorted in parallel
const parallelRowSort = 1 << 14

// uniqueColumns sorts the column indices of one row and moves the distinct ones
// to the front. It returns their number.
func uniqueColumns(row []int) (n int) {
	if len(row) > parallelRowSort {
		psort.Sort(psort.IntSlice(row))
	} else {
		sort.Ints(row)
	}
	for k, j := range row {
		if k == 0 || j != row[n-1] {
			row[n] = j
			n++
		}
	}
	return
}

func (m *CSRMatrix) transpose() *CSRMatrix {
	t := newCSRMatrix(m.ncols, m.nrows)
	t.ind = make([]int, m.nvals())
	t.val = make([]int, m.nvals())
	for _, j := range m.ind {
		t.ptr[j+1]++
	}
	for j := 0; j < t.nrows; j++ {
		t.ptr[j+1] += t.ptr[j]
	}
	next := make([]int, t.nrows)
	copy(next, t.ptr[:t.nrows])
	for i := 0; i < m.nrows; i++ {
		lo, hi := m.ptr[i], m.ptr[i+1]
		for k := lo; k < hi; k++ {
			j := m.ind[k]
			p := next[j]
			t.ind[p] = i
			t.val[p] = m.val[k]
			next[j]++
		}
	}
	return t
}

// dot multiplies two sorted sparse rows; found reports whether any index
// matched.
func dot(aind, aval, bind, bval []int) (sum int, found bool) {
	for p, q := 0, 0; p < len(aind) && q < len(bind); {
		switch {
		case aind[p] < bind[q]:
			p++
		case aind[p] > bind[q]:
			q++
		default:
			sum += aval[p] * bval[q]
			found = true
			p++
			q++
		}
	}
	return
}

// CSR is a native Go backend over CSRMatrix.
type CSR struct {
	initialized, finalized bool
}

func NewCSR() *CSR {
	return &CSR{}
}

func (*CSR) Name() string {
	return "CSR"
}

func (c *CSR) Init() error {
	if c.initialized || c.finalized {
		return fmt.Errorf("%w: init called twice", ErrSession)
	}
	c.initialized = true
	return nil
}

func (c *CSR) Finalize() error {
	if !c.initialized || c.finalized {
		return fmt.Errorf("%w: finalize without init", ErrSession)
	}
	c.finalized = true
	return nil
}

func (*CSR) Info() (string, error) {
	return fmt.Sprintf("native compressed-row backend, GOMAXPROCS: %v", runtime.GOMAXPROCS(0)), nil
}

func (c *CSR) check() error {
	if !c.initialized || c.finalized {
		return ErrSession
	}
	return nil
}

func (c *CSR) MatrixNew(nrows, ncols int) (*CSRMatrix, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	if nrows < 0 || ncols < 0 {
		return nil, fmt.Errorf("%w: %v x %v", ErrDimensionMismatch, nrows, ncols)
	}
	return newCSRMatrix(nrows, ncols), nil
}

func (c *CSR) SetElement(A *CSRMatrix, row, col int) error {
	if err := c.check(); err != nil {
		return err
	}
	if row < 0 || row >= A.nrows || col < 0 || col >= A.ncols {
		return fmt.Errorf("%w: (%v, %v) in %v x %v", ErrIndexOutOfBounds, row, col, A.nrows, A.ncols)
	}
	A.pendingRows = append(A.pendingRows, row)
	A.pendingCols = append(A.pendingCols, col)
	return nil
}

func (c *CSR) Materialize(A *CSRMatrix) error {
	if err := c.check(); err != nil {
		return err
	}
	A.materialize()
	return nil
}

func (c *CSR) Size(A *CSRMatrix) (nrows, ncols int, err error) {
	if err = c.check(); err != nil {
		return
	}
	return A.nrows, A.ncols, nil
}

func (c *CSR) ExtractTuples(A *CSRMatrix) (rows, cols, vals []int, err error) {
	if err = c.check(); err != nil {
		return
	}
	A.materialize()
	rows = make([]int, 0, A.nvals())
	for i := 0; i < A.nrows; i++ {
		for k := A.ptr[i]; k < A.ptr[i+1]; k++ {
			rows = append(rows, i)
		}
	}
	cols = append([]int(nil), A.ind...)
	vals = append([]int(nil), A.val...)
	return
}

// MxMMasked evaluates one dot product per mask entry greater than zero. When
// B is not transposed its transpose is formed first so that both operands are
// walked by row.
func (c *CSR) MxMMasked(C, mask, A, B *CSRMatrix, transposeB bool) error {
	if err := c.check(); err != nil {
		return err
	}
	for _, m := range []*CSRMatrix{C, mask, A, B} {
		m.materialize()
	}
	inner, bcols := B.nrows, B.ncols
	if transposeB {
		inner, bcols = B.ncols, B.nrows
	}
	if A.ncols != inner || C.nrows != A.nrows || C.ncols != bcols ||
		mask.nrows != C.nrows || mask.ncols != C.ncols {
		return fmt.Errorf("%w: C %vx%v, mask %vx%v, A %vx%v, B %vx%v (transposed %v)", ErrDimensionMismatch,
			C.nrows, C.ncols, mask.nrows, mask.ncols, A.nrows, A.ncols, B.nrows, B.ncols, transposeB)
	}
	BT := B
	if !transposeB {
		BT = B.transpose()
	}

	rowInd := make([][]int, C.nrows)
	rowVal := make([][]int, C.nrows)
	parallel.Range(0, C.nrows, 0, func(low, high int) {
		for i := low; i < high; i++ {
			mind, mval := mask.row(i)
			aind, aval := A.row(i)
			if len(mind) == 0 || len(aind) == 0 {
				continue
			}
			var ind, val []int
			for k, j := range mind {
				if mval[k] <= 0 {
					continue
				}
				bind, bval := BT.row(j)
				if sum, found := dot(aind, aval, bind, bval); found {
					ind = append(ind, j)
					val = append(val, sum)
				}
			}
			rowInd[i], rowVal[i] = ind, val
		}
	})

	ptr := make([]int, C.nrows+1)
	for i := 0; i < C.nrows; i++ {
		ptr[i+1] = ptr[i] + len(rowInd[i])
	}
	ind := make([]int, ptr[C.nrows])
	val := make([]int, ptr[C.nrows])
	parallel.Range(0, C.nrows, 0, func(low, high int) {
		for i := low; i < high; i++ {
			copy(ind[ptr[i]:], rowInd[i])
			copy(val[ptr[i]:], rowVal[i])
		}
	})
	C.ptr, C.ind, C.val = ptr, ind, val
	return nil
}

func (c *CSR) Reduce(C *CSRMatrix) (int, error) {
	if err := c.check(); err != nil {
		return 0, err
	}
	C.materialize()
	return parallel.RangeReduceSum(0, C.nvals(), 0, func(low, high int) (sum int) {
		for _, v := range C.val[low:high] {
			sum += v
		}
		return
	}), nil
}

func (c *CSR) Free(A *CSRMatrix) error {
	if A == nil {
		return nil
	}
	*A = CSRMatrix{}
	return nil
}

var (
	_ Backend[*CSRMatrix] = (*CSR)(nil)
)
