package episode

import (
	"testing"

	"github.com/paulutsch/clembench/pkg/level"
)

// 5x5 level with a walled border, one interior wall at (2,2), switch
// east of the start and the portal behind the projected wall.
func testLevel(t *testing.T) *level.Level {
	t.Helper()

	l, err := level.Parse(level.Config{
		GridSize: 5,
		MaxMoves: 12,
		Grid: level.GridConfig{
			Walls: []level.Coord{
				{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3}, {Row: 0, Col: 4},
				{Row: 4, Col: 0}, {Row: 4, Col: 1}, {Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 4, Col: 4},
				{Row: 1, Col: 0}, {Row: 2, Col: 0}, {Row: 3, Col: 0},
				{Row: 1, Col: 4}, {Row: 2, Col: 4}, {Row: 3, Col: 4},
				{Row: 2, Col: 2}, {Row: 3, Col: 1}, {Row: 3, Col: 2},
			},
			Portal:        level.Coord{Row: 3, Col: 3},
			Switch:        level.Coord{Row: 1, Col: 2},
			ProjectedWall: level.Coord{Row: 2, Col: 3},
			PlayerStart:   level.Coord{Row: 1, Col: 1},
		},
		Prompt: "Reach the portal.",
	})
	if err != nil {
		t.Fatalf("failed to parse test level: %v", err)
	}
	return l
}

func TestNew_InitialState(t *testing.T) {
	l := testLevel(t)
	ep := New(l)

	if ep.PlayerPos != l.PlayerStart {
		t.Errorf("PlayerPos = %v, want %v", ep.PlayerPos, l.PlayerStart)
	}
	if !ep.ProjectedWallActive {
		t.Error("projected wall must start active")
	}
	if ep.MovesTaken != 0 {
		t.Errorf("MovesTaken = %d, want 0", ep.MovesTaken)
	}
	if ep.Status != StatusInProgress {
		t.Errorf("Status = %s, want %s", ep.Status, StatusInProgress)
	}
	if ep.Terminal() {
		t.Error("fresh episode must not be terminal")
	}
	if ep.MovesLeft() != l.MaxMoves {
		t.Errorf("MovesLeft = %d, want %d", ep.MovesLeft(), l.MaxMoves)
	}
	if ep.ID == (New(l).ID) {
		t.Error("episodes must get distinct IDs")
	}
}

func TestEpisodes_AreIndependent(t *testing.T) {
	l := testLevel(t)
	a := New(l)
	b := New(l)

	// Toggle the wall in episode a only
	if _, err := a.ApplyMove(East); err != nil { // lands on switch (1,2)
		t.Fatalf("ApplyMove failed: %v", err)
	}

	if a.ProjectedWallActive {
		t.Error("episode a: projected wall should be inactive after switch")
	}
	if !b.ProjectedWallActive {
		t.Error("episode b must be unaffected by episode a")
	}
	if b.MovesTaken != 0 {
		t.Errorf("episode b MovesTaken = %d, want 0", b.MovesTaken)
	}
}
