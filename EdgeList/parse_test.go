package EdgeList_test

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/intel/forTriangleBenchGo/EdgeList"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  EdgeList.CoordinateList
	}{
		{
			name:  "pairs per line",
			input: "0 1\n2\t3\n",
			want:  EdgeList.CoordinateList{Edges: []EdgeList.Edge{{0, 1}, {2, 3}}, MaxRow: 2, MaxCol: 3},
		},
		{
			name:  "comments between edges",
			input: "# header\n5 1\n# 9 9\n1 4\n",
			want:  EdgeList.CoordinateList{Edges: []EdgeList.Edge{{5, 1}, {1, 4}}, MaxRow: 5, MaxCol: 4},
		},
		{
			name:  "pair spanning a line break",
			input: "0 1 2\n3\n",
			want:  EdgeList.CoordinateList{Edges: []EdgeList.Edge{{0, 1}, {2, 3}}, MaxRow: 2, MaxCol: 3},
		},
		{
			name:  "no trailing newline",
			input: "7 8",
			want:  EdgeList.CoordinateList{Edges: []EdgeList.Edge{{7, 8}}, MaxRow: 7, MaxCol: 8},
		},
		{
			name:  "blank lines",
			input: "\n\n1 2\n\n",
			want:  EdgeList.CoordinateList{Edges: []EdgeList.Edge{{1, 2}}, MaxRow: 1, MaxCol: 2},
		},
		{
			name:  "only comments",
			input: "# a\n#0 1\n",
			want:  EdgeList.CoordinateList{},
		},
		{
			name:  "empty",
			input: "",
			want:  EdgeList.CoordinateList{},
		},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EdgeList.Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, input := range []string{
		"0 1\n2\n",
		"0 x\n",
		"0 -1\n",
		"1.5 2\n",
		" # indented comments are not comments\n",
	} {
		_, err := EdgeList.Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, EdgeList.ErrMalformed, "input %q", input)
	}
}

func TestParseLongLines(t *testing.T) {
	longComment := "#" + strings.Repeat("x", 2<<20) + "\n0 1\n1 2\n"
	list, err := EdgeList.Parse(strings.NewReader(longComment))
	require.NoError(t, err)
	assert.Equal(t, []EdgeList.Edge{{0, 1}, {1, 2}}, list.Edges)

	longLine := strings.Repeat("12345 67890 ", 200000) + "\n# done\n"
	list, err = EdgeList.Parse(strings.NewReader(longLine))
	require.NoError(t, err)
	assert.Len(t, list.Edges, 200000)
	assert.Equal(t, 12345, list.MaxRow)
	assert.Equal(t, 67890, list.MaxCol)
}

func TestParseOneByteReads(t *testing.T) {
	input := "# header\n10 20\n30\n40 # 5\n"
	_, err := EdgeList.Parse(iotest.OneByteReader(strings.NewReader(input)))
	assert.ErrorIs(t, err, EdgeList.ErrMalformed)

	input = "# header\n10 20\n30\n40\n#50 60\n"
	list, err := EdgeList.Parse(iotest.OneByteReader(strings.NewReader(input)))
	require.NoError(t, err)
	assert.Equal(t, []EdgeList.Edge{{10, 20}, {30, 40}}, list.Edges)
}

func TestParseErrorLine(t *testing.T) {
	_, err := EdgeList.Parse(strings.NewReader("# c\n0 1\n2 y\n"))
	require.ErrorIs(t, err, EdgeList.ErrMalformed)
	assert.Contains(t, err.Error(), "line 3")
}

func TestDimension(t *testing.T) {
	assert.Equal(t, 1, EdgeList.CoordinateList{}.Dimension())
	assert.Equal(t, 6, EdgeList.CoordinateList{MaxRow: 5, MaxCol: 2}.Dimension())
	assert.Equal(t, 10, EdgeList.CoordinateList{MaxRow: 3, MaxCol: 9}.Dimension())
}
