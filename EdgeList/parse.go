// Package EdgeList reads graphs stored as plain-text edge lists into
// coordinate lists and memoizes the most recently loaded graph.
package EdgeList

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Edge is a directed pair of 0-based vertex identifiers.
type Edge struct {
	Row, Col int
}

// CoordinateList holds the edges in file order and the largest row and column
// index seen. The edge slice is shared with the loader cache and must not be
// modified.
type CoordinateList struct {
	Edges          []Edge
	MaxRow, MaxCol int
}

// Dimension is the side length of the square adjacency matrix covering all edges.
func (list CoordinateList) Dimension() int {
	return max(list.MaxRow, list.MaxCol) + 1
}

func (list *CoordinateList) add(row, col int) {
	list.Edges = append(list.Edges, Edge{Row: row, Col: col})
	list.MaxRow = max(list.MaxRow, row)
	list.MaxCol = max(list.MaxCol, col)
}

var ErrMalformed = errors.New("EdgeList malformed input")

// Parse reads whitespace-separated vertex pairs. A line starting with '#' is a
// comment and is dropped up to and including its line terminator, however
// long it is. A pair may span a line break; a token without a partner at the
// end of the input is an error, as are non-integer and negative tokens.
func Parse(r io.Reader) (list CoordinateList, err error) {
	br := bufio.NewReader(r)
	var (
		token      []byte
		pending    int
		hasPending bool
		line       = 1
		lineStart  = true
		comment    bool
	)
	flush := func() error {
		if len(token) == 0 {
			return nil
		}
		v, e := strconv.Atoi(string(token))
		if e != nil {
			return fmt.Errorf("%w: line %v: %q is not an integer", ErrMalformed, line, token)
		}
		token = token[:0]
		if v < 0 {
			return fmt.Errorf("%w: line %v: negative vertex %v", ErrMalformed, line, v)
		}
		if !hasPending {
			pending, hasPending = v, true
			return nil
		}
		list.add(pending, v)
		hasPending = false
		return nil
	}
	for {
		// ReadSlice hands out at most one buffer per call, so a long line
		// arrives in several chunks; tokens may straddle them.
		chunk, e := br.ReadSlice('\n')
		for _, c := range chunk {
			if comment {
				if c == '\n' {
					comment, lineStart = false, true
					line++
				}
				continue
			}
			if lineStart && c == '#' {
				comment, lineStart = true, false
				continue
			}
			lineStart = false
			switch c {
			case '\n':
				if err = flush(); err != nil {
					return CoordinateList{}, err
				}
				line++
				lineStart = true
			case ' ', '\t', '\r', '\v', '\f':
				if err = flush(); err != nil {
					return CoordinateList{}, err
				}
			default:
				token = append(token, c)
			}
		}
		if e == io.EOF {
			break
		}
		if e != nil && e != bufio.ErrBufferFull {
			return CoordinateList{}, e
		}
	}
	if err = flush(); err != nil {
		return CoordinateList{}, err
	}
	if hasPending {
		return CoordinateList{}, fmt.Errorf("%w: line %v: vertex %v has no partner", ErrMalformed, line, pending)
	}
	return list, nil
}
