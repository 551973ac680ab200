package t2048

import (
	"strconv"

	"github.com/vovakirdan/tile2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell including its left border
	cellHeight = 2 // Height of each cell including its top border
)

// BoardSize returns the rendered width and height of a board.
func BoardSize(column int) (w, h int) {
	return column*cellWidth + 1, column*cellHeight + 1
}

// TileColor returns the display color of a tile value.
func TileColor(value int) core.Color {
	switch {
	case value == 0:
		return core.ColorGray
	case value <= 4:
		return core.ColorWhite
	case value <= 16:
		return core.ColorYellow
	case value <= 64:
		return core.ColorOrange
	case value <= 256:
		return core.ColorBrightRed
	case value <= 1024:
		return core.ColorBrightMagenta
	case value <= 2048:
		return core.ColorBrightGreen
	default:
		return core.ColorBrightCyan
	}
}

// RenderBoard draws the grid and its tiles with the top-left corner at (x, y).
func RenderBoard(dst *core.Screen, board []int, column, x, y int) {
	for gy := range column + 1 {
		for gx := range column + 1 {
			px := x + gx*cellWidth
			py := y + gy*cellHeight

			dst.SetColored(px, py, gridCorner(gx, gy, column), core.ColorGray)
			if gx < column {
				for i := 1; i < cellWidth; i++ {
					dst.SetColored(px+i, py, '─', core.ColorGray)
				}
			}
			if gy < column {
				for i := 1; i < cellHeight; i++ {
					dst.SetColored(px, py+i, '│', core.ColorGray)
				}
			}
		}
	}

	for i, v := range board {
		if v == 0 {
			continue
		}
		row, col := i/column, i%column
		text := strconv.Itoa(v)
		pad := max((cellWidth-1-len(text))/2, 0)
		dst.DrawTextColored(x+col*cellWidth+1+pad, y+row*cellHeight+1, text, TileColor(v))
	}
}

// RenderGameOver frames a GAME OVER label over the middle of a board drawn
// at (x, y).
func RenderGameOver(dst *core.Screen, column, x, y int) {
	const label = "GAME OVER"
	w, h := BoardSize(column)
	box := core.NewRect(x, y, w, h).CenterIn(len(label)+4, 3)
	dst.FillRect(box)
	dst.DrawBox(box)
	dst.DrawText(box.X+2, box.Y+1, label)
}

func gridCorner(x, y, column int) rune {
	switch {
	case y == 0 && x == 0:
		return '┌'
	case y == 0 && x == column:
		return '┐'
	case y == column && x == 0:
		return '└'
	case y == column && x == column:
		return '┘'
	case y == 0:
		return '┬'
	case y == column:
		return '┴'
	case x == 0:
		return '├'
	case x == column:
		return '┤'
	default:
		return '┼'
	}
}
