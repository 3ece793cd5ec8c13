// Package layoutio reads crossword layouts from CSV files and
// synthesizes blank layouts from dimensions alone.
//
// A layout CSV has an arbitrary header row and an arbitrary first
// column (both are discarded as row/column labels). Every remaining
// cell is one of:
//
//	""   a block (the cell is not part of any entry)
//	"_"  an empty, fillable cell
//	"A"  (any single uppercase letter) a pre-filled hint letter
package layoutio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/crossplay/xwordgen/pkg/grid"
)

// ErrInvalidCell is returned when a layout cell contains something
// other than a block, the empty symbol, or a single uppercase letter.
var ErrInvalidCell = errors.New("layoutio: invalid cell value")

const emptySymbol = "_"

// ReadCSV reads a layout from path. The first row and first column are
// treated as labels and discarded.
func ReadCSV(path string) (*grid.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layoutio: open %s: %w", path, err)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) (*grid.Layout, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("layoutio: parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("layoutio: layout must have a header row and at least one data row")
	}

	header := records[0]
	numCols := len(header) - 1
	if numCols < 1 {
		return nil, fmt.Errorf("layoutio: layout must have at least one data column")
	}
	numRows := len(records) - 1

	layout := grid.NewBlankLayout(numRows, numCols)
	for r, row := range records[1:] {
		for c := 0; c < numCols; c++ {
			raw := ""
			if c+1 < len(row) {
				raw = row[c+1]
			}
			cell, err := parseCell(raw)
			if err != nil {
				return nil, fmt.Errorf("layoutio: row %d col %d: %w", r, c, err)
			}
			layout.Cells[r][c] = cell
		}
	}
	return layout, nil
}

func parseCell(raw string) (grid.Cell, error) {
	switch {
	case raw == "":
		return grid.Cell{Block: true}, nil
	case raw == emptySymbol:
		return grid.Cell{}, nil
	case len(raw) == 1 && raw[0] >= 'A' && raw[0] <= 'Z':
		return grid.Cell{Letter: raw[0]}, nil
	default:
		return grid.Cell{}, fmt.Errorf("%w: %q", ErrInvalidCell, raw)
	}
}

// NewBlank synthesizes a layout with no blocks and no pre-filled
// letters, sized numRows by numCols.
func NewBlank(numRows, numCols int) (*grid.Layout, error) {
	if numRows < 1 || numCols < 1 {
		return nil, fmt.Errorf("layoutio: numRows and numCols must both be >= 1, got %dx%d", numRows, numCols)
	}
	return grid.NewBlankLayout(numRows, numCols), nil
}

// WriteCSV writes layout to path in the same format ReadCSV accepts,
// labeling rows and columns with their 0-based index.
func WriteCSV(path string, layout *grid.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("layoutio: create %s: %w", path, err)
	}
	defer f.Close()

	return writeCSV(f, layout)
}

func writeCSV(w io.Writer, layout *grid.Layout) error {
	writer := csv.NewWriter(w)

	header := make([]string, layout.Cols+1)
	header[0] = ""
	for c := 0; c < layout.Cols; c++ {
		header[c+1] = fmt.Sprintf("%d", c)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("layoutio: write header: %w", err)
	}

	for r := 0; r < layout.Rows; r++ {
		row := make([]string, layout.Cols+1)
		row[0] = fmt.Sprintf("%d", r)
		for c := 0; c < layout.Cols; c++ {
			row[c+1] = cellSymbol(layout.Cells[r][c])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("layoutio: write row %d: %w", r, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func cellSymbol(c grid.Cell) string {
	switch {
	case c.Block:
		return ""
	case c.Letter != 0:
		return string(c.Letter)
	default:
		return emptySymbol
	}
}
