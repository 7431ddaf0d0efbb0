package board

import (
	"fmt"
	"strings"
)

// Format renders a stable, human-readable grid: 'H' is the pawn to move,
// 'V' is the opponent, '|' and '-' mark placed walls. Rendering depends
// only on the board value, never on prior history.
func (b Board) Format() string {
	var sb strings.Builder
	for y := int8(Size); y >= 0; y-- {
		for x := int8(0); x <= Size; x++ {
			switch (Pos{X: x, Y: y}) {
			case b.Hero:
				sb.WriteByte('H')
			case b.Villain:
				sb.WriteByte('V')
			default:
				sb.WriteByte('.')
			}
			if x < Size {
				if b.blockedHorizontal(x, y) {
					sb.WriteByte('|')
				} else {
					sb.WriteByte(' ')
				}
			}
		}
		sb.WriteByte('\n')

		if y > 0 {
			for x := int8(0); x <= Size; x++ {
				if b.blockedVertical(x, y-1) {
					sb.WriteByte('-')
				} else {
					sb.WriteByte(' ')
				}
				if x < Size {
					sb.WriteByte(' ')
				}
			}
			sb.WriteByte('\n')
		}
	}
	fmt.Fprintf(&sb, "walls: hero=%d villain=%d\n", b.HeroWalls, b.VillainWalls)
	return sb.String()
}
