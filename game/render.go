package game

import (
	"fmt"
	"strings"
)

// String draws the board with row 8 at the top. Tiles show '.', '1' or '2',
// tile edges show '|' and '-' when open and '#' when walled, and '+' marks
// grid corners not covered by a wall's midpoint.
func (b Board) String() string {
	var sb strings.Builder
	for y := Size - 1; y >= 0; y-- {
		for x := 0; x < Size; x++ {
			if x > 0 {
				sb.WriteByte(edgeGlyph(b.Blocked(x, y, West), '|'))
			}
			switch (Pos{X: x, Y: y}) {
			case b.pawns[0]:
				sb.WriteByte('1')
			case b.pawns[1]:
				sb.WriteByte('2')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')

		if y == 0 {
			break
		}
		for x := 0; x < Size; x++ {
			sb.WriteByte(edgeGlyph(b.Blocked(x, y, South), '-'))
			if x < WallCells {
				corner := b.HasWall(Horizontal, x, y-1) || b.HasWall(Vertical, x, y-1)
				sb.WriteByte(edgeGlyph(corner, '+'))
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "P1: %2d     P2: %2d", b.stock[0], b.stock[1])
	return sb.String()
}

func edgeGlyph(walled bool, open byte) byte {
	if walled {
		return '#'
	}
	return open
}
