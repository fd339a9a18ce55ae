package MatrixMarket

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	coordinateString    = "coordinate"
	arrayString         = "array"
	realString          = "real"
	complexString       = "complex"
	patternString       = "pattern"
	integerString       = "integer"
	generalString       = "general"
	hermitianString     = "hermitian"
	symmetricString     = "symmetric"
	skewSymmetricString = "skew-symmetric"
)

type (
	Type    int
	Storage int
)

const (
	Real Type = iota
	Pattern
	Integer
)

const (
	General Storage = iota
	Symmetric
	SkewSymmetric
)

// Header describes a coordinate Matrix Market file. Only the coordinate
// format is accepted, since every entry has to become an edge.
type Header struct {
	Type                Type
	Storage             Storage
	NRows, NCols, NVals int
}

var ErrHeader = errors.New("MatrixMarket invalid header")

func headerError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrHeader, fmt.Sprintf(format, args...))
}

// ReadHeader consumes the banner, optional comments and the size line. The
// returned scanner is positioned at the first entry line.
func ReadHeader(r io.Reader) (hdr Header, scanner *bufio.Scanner, err error) {
	s := bufio.NewScanner(r)
	if !s.Scan() {
		if err = s.Err(); err == nil {
			err = headerError("header line missing")
		}
		return
	}
	fields := strings.Fields(s.Text())
	if len(fields) != 5 {
		err = headerError("incorrect number of header line elements; expected 5, got %v", len(fields))
		return
	}
	if fields[0] != "%%MatrixMarket" {
		err = headerError("header line prefix missing; expected %%%%MatrixMarket, got %v", fields[0])
		return
	}
	if fields[1] != "matrix" {
		err = headerError("header line second entry incorrect; expected matrix, got %v", fields[1])
		return
	}
	formatString, typeString, storageString := strings.ToLower(fields[2]), strings.ToLower(fields[3]), strings.ToLower(fields[4])
	switch formatString {
	case coordinateString:
	case arrayString:
		err = headerError("array format cannot describe a graph, expected coordinate")
		return
	default:
		err = headerError("header line format entry incorrect; expected coordinate, got %v", formatString)
		return
	}
	switch typeString {
	case realString:
		hdr.Type = Real
	case patternString:
		hdr.Type = Pattern
	case integerString:
		hdr.Type = Integer
	case complexString:
		err = headerError("complex type not supported")
		return
	default:
		err = headerError("header line type entry incorrect; expected (real | pattern | integer), got %v", typeString)
		return
	}
	switch storageString {
	case generalString:
		hdr.Storage = General
	case symmetricString:
		hdr.Storage = Symmetric
	case skewSymmetricString:
		hdr.Storage = SkewSymmetric
	case hermitianString:
		err = headerError("hermitian storage not supported")
		return
	default:
		err = headerError("header line storage entry incorrect; expected (general | symmetric | skew-symmetric), got %v", storageString)
		return
	}

	var sText string
	for s.Scan() {
		sText = strings.TrimSpace(s.Text())
		if sText == "" || strings.HasPrefix(sText, "%") {
			sText = ""
			continue
		}
		break
	}
	if err = s.Err(); err != nil {
		return
	}
	if sText == "" {
		err = headerError("size line missing")
		return
	}

	fields = strings.Fields(sText)
	if len(fields) != 3 {
		err = headerError("size line unexpected number of entries, expected 3, got %v", len(fields))
		return
	}
	var sizes [3]int64
	for i, name := range []string{"nrows", "ncols", "nvals"} {
		v, e := strconv.ParseInt(fields[i], 10, 64)
		if e != nil {
			err = headerError("size line %v parse error %v, while parsing %v", name, e, fields[i])
			return
		}
		if v < 0 || v > math.MaxInt {
			err = headerError("size line %v out of range %v", name, v)
			return
		}
		sizes[i] = v
	}
	if sizes[0] < 1 || sizes[1] < 1 {
		err = headerError("matrix dimensions must be positive, got %v x %v", sizes[0], sizes[1])
		return
	}
	hdr.NRows, hdr.NCols, hdr.NVals = int(sizes[0]), int(sizes[1]), int(sizes[2])
	return hdr, s, nil
}
