// Package render classifies level cells into display symbols. The
// engine's contract is the Symbol classification; mapping symbols to
// concrete glyphs is a presentation concern handled by Skins.
package render

import (
	"strings"

	"github.com/paulutsch/clembench/pkg/level"
)

// Symbol is the semantic class of one rendered cell.
type Symbol int

const (
	Empty Symbol = iota
	Wall
	ProjectedWall
	Switch
	Portal
	Player
)

// Render maps a level plus the episode's dynamic state to a square
// symbol grid. The player marker overlays whatever cell it stands on;
// a deactivated projected wall renders as empty.
func Render(l *level.Level, projectedWallActive bool, playerPos level.Coord) [][]Symbol {
	grid := make([][]Symbol, l.GridSize)
	for row := range grid {
		grid[row] = make([]Symbol, l.GridSize)
		for col := range grid[row] {
			grid[row][col] = classify(l, projectedWallActive, playerPos, level.Coord{Row: row, Col: col})
		}
	}
	return grid
}

func classify(l *level.Level, projectedWallActive bool, playerPos, c level.Coord) Symbol {
	switch {
	case c == playerPos:
		return Player
	case l.IsWall(c):
		return Wall
	case c == l.Portal:
		return Portal
	case c == l.Switch:
		return Switch
	case c == l.ProjectedWall && projectedWallActive:
		return ProjectedWall
	default:
		return Empty
	}
}

// Skin maps symbols to glyphs. Two skins ship with the engine; both
// render the identical mechanic, so glyph choice never affects
// behavior.
type Skin map[Symbol]string

var (
	// StringSkin is the letter rendering promised by the game prompt.
	StringSkin = Skin{
		Empty:         " ",
		Wall:          "W",
		ProjectedWall: "D",
		Switch:        "S",
		Portal:        "O",
		Player:        "P",
	}

	// EmojiSkin is the alternate block-character rendering.
	EmojiSkin = Skin{
		Empty:         "⬜️",
		Wall:          "⬛️",
		ProjectedWall: "🚪",
		Switch:        "🔘",
		Portal:        "🌀",
		Player:        "🧍",
	}
)

// Text renders a symbol grid as newline-separated rows using the skin.
func Text(grid [][]Symbol, skin Skin) string {
	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, sym := range row {
			b.WriteString(skin[sym])
		}
	}
	return b.String()
}
