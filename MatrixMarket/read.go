package MatrixMarket

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrEntry = errors.New("MatrixMarket invalid entry")

// Read returns the 0-based coordinates of all stored entries. Values are
// parsed for well-formedness and then dropped. Symmetric and skew-symmetric
// storage add the mirrored coordinate for every off-diagonal entry.
func Read(header Header, s *bufio.Scanner) (rows, cols []int, err error) {
	nfields := 3
	if header.Type == Pattern {
		nfields = 2
	}
	mirror := header.Storage != General
	capacity := header.NVals
	if mirror {
		capacity *= 2
	}
	rows = make([]int, 0, capacity)
	cols = make([]int, 0, capacity)

	nvals := header.NVals
	line := 0
	for s.Scan() {
		line++
		sText := strings.TrimSpace(s.Text())
		if sText == "" || strings.HasPrefix(sText, "%") {
			continue
		}
		fields := strings.Fields(sText)
		if len(fields) != nfields {
			return nil, nil, fmt.Errorf("%w: entry %v has %v elements, expected %v", ErrEntry, line, len(fields), nfields)
		}
		row, e := strconv.Atoi(fields[0])
		if e != nil {
			return nil, nil, fmt.Errorf("%w: row parse error %v, while parsing %v", ErrEntry, e, fields[0])
		}
		col, e := strconv.Atoi(fields[1])
		if e != nil {
			return nil, nil, fmt.Errorf("%w: col parse error %v, while parsing %v", ErrEntry, e, fields[1])
		}
		if nfields == 3 {
			if _, e = strconv.ParseFloat(fields[2], 64); e != nil {
				return nil, nil, fmt.Errorf("%w: value parse error %v, while parsing %v", ErrEntry, e, fields[2])
			}
		}
		if row < 1 || row > header.NRows || col < 1 || col > header.NCols {
			return nil, nil, fmt.Errorf("%w: coordinate (%v, %v) outside %v x %v", ErrEntry, row, col, header.NRows, header.NCols)
		}
		if nvals == 0 {
			return nil, nil, fmt.Errorf("%w: too many coordinate lines", ErrEntry)
		}
		nvals--
		rows = append(rows, row-1)
		cols = append(cols, col-1)
		if mirror && row != col {
			rows = append(rows, col-1)
			cols = append(cols, row-1)
		}
	}
	if err = s.Err(); err != nil {
		return nil, nil, err
	}
	if nvals > 0 {
		return nil, nil, fmt.Errorf("%w: too few coordinate lines", ErrEntry)
	}
	return rows, cols, nil
}
