// Package gridgen adds random blocks to an existing layout between
// solver retries.
package gridgen

import (
	"math/rand"

	"github.com/crossplay/xwordgen/pkg/grid"
)

// AddBlocks returns a copy of l with up to numBlocks additional blocks
// placed one at a time at random eligible positions. A position is
// eligible only if placing a block there would not leave a 1- or
// 2-letter remainder in any of the four directions from it. If symmetric
// is true, each placement is mirrored 180 degrees (counting as two
// blocks toward numBlocks), so an odd numBlocks can end with one block
// more than requested. Placement stops early, without error, once no
// eligible position remains.
func AddBlocks(l *grid.Layout, numBlocks int, symmetric bool, rng *rand.Rand) *grid.Layout {
	out := cloneLayout(l)
	placed := 0

	for placed < numBlocks {
		candidates := eligiblePositions(out)
		if len(candidates) == 0 {
			break
		}
		pos := candidates[rng.Intn(len(candidates))]
		out.Cells[pos.Row][pos.Col].Block = true
		placed++

		if symmetric {
			mirror := grid.Coord{Row: out.Rows - 1 - pos.Row, Col: out.Cols - 1 - pos.Col}
			if !out.Cells[mirror.Row][mirror.Col].Block {
				out.Cells[mirror.Row][mirror.Col].Block = true
				placed++
			}
		}
	}
	return out
}

func cloneLayout(l *grid.Layout) *grid.Layout {
	out := grid.NewBlankLayout(l.Rows, l.Cols)
	for r := range l.Cells {
		copy(out.Cells[r], l.Cells[r])
	}
	return out
}

// eligiblePositions returns every non-block cell where placing a block
// would not strand a run of length 1 or 2 in any direction.
func eligiblePositions(l *grid.Layout) []grid.Coord {
	var out []grid.Coord
	for row := 0; row < l.Rows; row++ {
		for col := 0; col < l.Cols; col++ {
			if l.Cells[row][col].Block {
				continue
			}
			if blockIsSafe(l, row, col) {
				out = append(out, grid.Coord{Row: row, Col: col})
			}
		}
	}
	return out
}

func blockIsSafe(l *grid.Layout, row, col int) bool {
	return !strandsShortRun(runUp(l, row, col)) &&
		!strandsShortRun(runDown(l, row, col)) &&
		!strandsShortRun(runLeft(l, row, col)) &&
		!strandsShortRun(runRight(l, row, col))
}

func strandsShortRun(n int) bool { return n >= 1 && n < grid.MinWordLength }

func runUp(l *grid.Layout, row, col int) int {
	n := 0
	for r := row - 1; r >= 0 && !l.Cells[r][col].Block; r-- {
		n++
	}
	return n
}

func runDown(l *grid.Layout, row, col int) int {
	n := 0
	for r := row + 1; r < l.Rows && !l.Cells[r][col].Block; r++ {
		n++
	}
	return n
}

func runLeft(l *grid.Layout, row, col int) int {
	n := 0
	for c := col - 1; c >= 0 && !l.Cells[row][c].Block; c-- {
		n++
	}
	return n
}

func runRight(l *grid.Layout, row, col int) int {
	n := 0
	for c := col + 1; c < l.Cols && !l.Cells[row][c].Block; c++ {
		n++
	}
	return n
}
