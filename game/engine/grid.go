package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Grid parse failures
var (
	ErrEmptyGrid   = errors.New("grid has no rows")
	ErrRaggedRows  = errors.New("rows have different lengths")
	ErrInvalidCell = errors.New("cell is not a non-negative integer")
)

// FormatError describes malformed map text
type FormatError struct {
	Line   int    // 1-based line in the source text, 0 when not line specific
	Column int    // 1-based cell index within the line, 0 when not cell specific
	Token  string // offending token, if any
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("map format: line %d, cell %d (%q): %v", e.Line, e.Column, e.Token, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("map format: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("map format: %v", e.Err)
	}
}

func (e *FormatError) Unwrap() error { return e.Err }

// Grid is an immutable rectangle of tile IDs. Rows are kept in file order
// (top to bottom); engine row 0 is the last file row.
type Grid struct {
	cells [][]TileID
	cols  int
}

// ParseGridString parses map text held in a string
func ParseGridString(s string) (*Grid, error) {
	return ParseGrid(strings.NewReader(s))
}

// maxLineBytes bounds a single map row; wide maps exceed bufio's 64 KiB default
const maxLineBytes = 16 << 20

// ParseGrid reads one row per line of comma separated tile IDs. Lines that
// are blank after trimming are skipped. The whole grid fails on the first
// bad token or ragged row.
func ParseGrid(r io.Reader) (*Grid, error) {
	var cells [][]TileID
	cols := -1

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Split(line, ",")
		row := make([]TileID, 0, len(tokens))
		for i, tok := range tokens {
			tok = strings.TrimSpace(tok)
			n, err := strconv.Atoi(tok)
			if err != nil || n < 0 {
				return nil, &FormatError{Line: lineNo, Column: i + 1, Token: tok, Err: ErrInvalidCell}
			}
			row = append(row, TileID(n))
		}

		if cols == -1 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, &FormatError{
				Line: lineNo,
				Err:  fmt.Errorf("%w: expected %d cells, got %d", ErrRaggedRows, cols, len(row)),
			}
		}
		cells = append(cells, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Line: lineNo, Err: err}
	}
	if len(cells) == 0 {
		return nil, &FormatError{Err: ErrEmptyGrid}
	}

	return &Grid{cells: cells, cols: cols}, nil
}

// NewGrid builds a grid from rows in file order, copying the input
func NewGrid(rows [][]TileID) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &FormatError{Err: ErrEmptyGrid}
	}
	cols := len(rows[0])
	cells := make([][]TileID, len(rows))
	for i, row := range rows {
		if len(row) != cols {
			return nil, &FormatError{
				Line: i + 1,
				Err:  fmt.Errorf("%w: expected %d cells, got %d", ErrRaggedRows, cols, len(row)),
			}
		}
		for j, id := range row {
			if id < 0 {
				return nil, &FormatError{Line: i + 1, Column: j + 1, Token: strconv.Itoa(int(id)), Err: ErrInvalidCell}
			}
		}
		cells[i] = append([]TileID(nil), row...)
	}
	return &Grid{cells: cells, cols: cols}, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return len(g.cells) }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// At returns the tile at engine row/col. Engine row 0 is the last row of
// the source text; this is the only place the inversion happens.
func (g *Grid) At(row, col int) TileID {
	return g.cells[len(g.cells)-1-row][col]
}

// FileRow returns a copy of a row in file order
func (g *Grid) FileRow(i int) []TileID {
	return append([]TileID(nil), g.cells[i]...)
}

// FileRows returns a copy of all rows in file order
func (g *Grid) FileRows() [][]TileID {
	out := make([][]TileID, len(g.cells))
	for i := range g.cells {
		out[i] = g.FileRow(i)
	}
	return out
}

// SameShape reports whether two grids have identical dimensions
func (g *Grid) SameShape(other *Grid) bool {
	return g.Rows() == other.Rows() && g.Cols() == other.Cols()
}

// String renders the grid back into map text
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for j, id := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(int(id)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Distinct returns the set of tile IDs used by the grid
func (g *Grid) Distinct() map[TileID]int {
	counts := make(map[TileID]int)
	for _, row := range g.cells {
		for _, id := range row {
			counts[id]++
		}
	}
	return counts
}
