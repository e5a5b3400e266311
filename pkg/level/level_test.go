package level

import (
	"encoding/json"
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		GridSize: 5,
		MaxMoves: 12,
		Grid: GridConfig{
			Walls: []Coord{
				{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4},
				{4, 0}, {4, 1}, {4, 2}, {4, 3}, {4, 4},
				{1, 0}, {2, 0}, {3, 0},
				{1, 4}, {2, 4}, {3, 4},
				{2, 2},
			},
			Portal:        Coord{3, 3},
			Switch:        Coord{1, 2},
			ProjectedWall: Coord{2, 3},
			PlayerStart:   Coord{1, 1},
		},
		Prompt: "Reach the portal.",
	}
}

func TestParse_Valid(t *testing.T) {
	l, err := Parse(validConfig())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if l.GridSize != 5 {
		t.Errorf("GridSize = %d, want 5", l.GridSize)
	}
	if l.MaxMoves != 12 {
		t.Errorf("MaxMoves = %d, want 12", l.MaxMoves)
	}
	if l.WallCount() != 17 {
		t.Errorf("WallCount = %d, want 17", l.WallCount())
	}
	if !l.IsWall(Coord{2, 2}) {
		t.Error("expected (2, 2) to be a wall")
	}
	if l.IsWall(Coord{2, 3}) {
		t.Error("projected wall must not be part of the regular wall set")
	}
	if l.PlayerStart != (Coord{1, 1}) {
		t.Errorf("PlayerStart = %v, want (1, 1)", l.PlayerStart)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero grid size", func(c *Config) { c.GridSize = 0 }},
		{"negative grid size", func(c *Config) { c.GridSize = -3 }},
		{"zero max moves", func(c *Config) { c.MaxMoves = 0 }},
		{"wall out of bounds", func(c *Config) { c.Grid.Walls = append(c.Grid.Walls, Coord{5, 2}) }},
		{"portal out of bounds", func(c *Config) { c.Grid.Portal = Coord{3, 9} }},
		{"negative coordinate", func(c *Config) { c.Grid.Switch = Coord{-1, 2} }},
		{"portal on wall", func(c *Config) { c.Grid.Portal = Coord{2, 2} }},
		{"player start on wall", func(c *Config) { c.Grid.PlayerStart = Coord{0, 0} }},
		{"portal and switch overlap", func(c *Config) { c.Grid.Switch = c.Grid.Portal }},
		{"start and projected wall overlap", func(c *Config) { c.Grid.PlayerStart = c.Grid.ProjectedWall }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			l, err := Parse(cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Errorf("error %v does not wrap ErrInvalidLevel", err)
			}
			if l != nil {
				t.Error("no Level may be returned on validation failure")
			}
		})
	}
}

func TestInBounds(t *testing.T) {
	l, err := Parse(validConfig())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	for _, c := range []Coord{{0, 0}, {4, 4}, {2, 3}} {
		if !l.InBounds(c) {
			t.Errorf("InBounds(%v) = false, want true", c)
		}
	}
	for _, c := range []Coord{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if l.InBounds(c) {
			t.Errorf("InBounds(%v) = true, want false", c)
		}
	}
}

func TestCoord_JSON(t *testing.T) {
	c := Coord{2, 7}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != "[2,7]" {
		t.Errorf("Marshal = %s, want [2,7]", data)
	}

	var back Coord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != c {
		t.Errorf("round trip = %v, want %v", back, c)
	}

	if err := json.Unmarshal([]byte("[1]"), &back); err == nil {
		t.Error("expected error for 1-element array")
	}
	if err := json.Unmarshal([]byte(`{"row":1}`), &back); err == nil {
		t.Error("expected error for object form")
	}
}

func TestParseJSON(t *testing.T) {
	raw := `{
		"grid_size": 3,
		"max_moves": 5,
		"grid": {
			"walls": [[0,0]],
			"portal": [2,2],
			"switch": [1,0],
			"projected_wall": [2,1],
			"player_start": [1,1]
		},
		"prompt": "go"
	}`

	l, err := ParseJSON([]byte(raw))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	if l.Portal != (Coord{2, 2}) {
		t.Errorf("Portal = %v, want (2, 2)", l.Portal)
	}

	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
