package render

import (
	"strings"
	"testing"

	"github.com/paulutsch/clembench/pkg/level"
)

func testLevel(t *testing.T) *level.Level {
	t.Helper()

	l, err := level.Parse(level.Config{
		GridSize: 4,
		MaxMoves: 10,
		Grid: level.GridConfig{
			Walls:         []level.Coord{{Row: 0, Col: 1}, {Row: 3, Col: 3}},
			Portal:        level.Coord{Row: 2, Col: 2},
			Switch:        level.Coord{Row: 0, Col: 2},
			ProjectedWall: level.Coord{Row: 1, Col: 2},
			PlayerStart:   level.Coord{Row: 1, Col: 1},
		},
		Prompt: "go",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return l
}

func TestRender_Classification(t *testing.T) {
	l := testLevel(t)
	grid := Render(l, true, l.PlayerStart)

	if len(grid) != 4 || len(grid[0]) != 4 {
		t.Fatalf("grid is %dx%d, want 4x4", len(grid), len(grid[0]))
	}

	expect := map[level.Coord]Symbol{
		{Row: 0, Col: 1}: Wall,
		{Row: 3, Col: 3}: Wall,
		{Row: 2, Col: 2}: Portal,
		{Row: 0, Col: 2}: Switch,
		{Row: 1, Col: 2}: ProjectedWall,
		{Row: 1, Col: 1}: Player,
		{Row: 0, Col: 0}: Empty,
		{Row: 3, Col: 0}: Empty,
	}
	for c, want := range expect {
		if got := grid[c.Row][c.Col]; got != want {
			t.Errorf("cell %v = %v, want %v", c, got, want)
		}
	}
}

func TestRender_InactiveProjectionIsInvisible(t *testing.T) {
	l := testLevel(t)
	grid := Render(l, false, l.PlayerStart)

	if got := grid[1][2]; got != Empty {
		t.Errorf("inactive projected wall renders %v, want Empty", got)
	}
}

func TestRender_PlayerOverlaysUnderlyingCell(t *testing.T) {
	l := testLevel(t)

	// Player standing on the switch, the portal, and the (inactive)
	// projected wall always wins the tie.
	for _, pos := range []level.Coord{l.Switch, l.Portal, l.ProjectedWall} {
		grid := Render(l, false, pos)
		if got := grid[pos.Row][pos.Col]; got != Player {
			t.Errorf("player at %v renders %v, want Player", pos, got)
		}
	}
}

func TestText_Skins(t *testing.T) {
	l := testLevel(t)
	grid := Render(l, true, l.PlayerStart)

	text := Text(grid, StringSkin)
	lines := strings.Split(text, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0] != " WS " {
		t.Errorf("row 0 = %q, want %q", lines[0], " WS ")
	}
	if lines[1] != " PD " {
		t.Errorf("row 1 = %q, want %q", lines[1], " PD ")
	}
	if lines[2] != "  O " {
		t.Errorf("row 2 = %q, want %q", lines[2], "  O ")
	}

	// The emoji skin must produce the same shape with different glyphs
	emoji := Text(grid, EmojiSkin)
	if len(strings.Split(emoji, "\n")) != 4 {
		t.Error("emoji skin changed the grid shape")
	}
	if !strings.Contains(emoji, EmojiSkin[Portal]) {
		t.Error("emoji skin must render the portal glyph")
	}
}
