package level

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidLevel is wrapped by all parse-time validation failures.
// A level that fails validation is never partially constructed.
var ErrInvalidLevel = errors.New("invalid level")

// Coord is a grid cell position. Rows increase southward, columns
// increase eastward. The wire format is a two-element [row, col] array,
// matching the instance JSON schema.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// MarshalJSON encodes the coordinate as [row, col].
func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a [row, col] array.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [row, col] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 elements, got %d", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// GridConfig is the "grid" object of a game instance.
type GridConfig struct {
	Walls         []Coord `json:"walls"`
	Portal        Coord   `json:"portal"`
	Switch        Coord   `json:"switch"`
	ProjectedWall Coord   `json:"projected_wall"`
	PlayerStart   Coord   `json:"player_start"`
}

// Config is the raw per-instance level configuration, consumed verbatim
// from the instance JSON.
type Config struct {
	GridSize int        `json:"grid_size"`
	MaxMoves int        `json:"max_moves"`
	Grid     GridConfig `json:"grid"`
	Prompt   string     `json:"prompt"`
}

// Level is the immutable geometry and goal of one game instance. It is
// safe to share between episodes; nothing mutates it after Parse.
type Level struct {
	GridSize      int
	MaxMoves      int
	Portal        Coord
	Switch        Coord
	ProjectedWall Coord
	PlayerStart   Coord
	Prompt        string

	walls map[Coord]struct{}
}

// Parse validates cfg and constructs a Level. Any out-of-bounds
// coordinate, overlap between the special cells, a special cell placed
// on a wall, or a non-positive grid size or move budget is a hard
// error; no Level is returned in that case.
func Parse(cfg Config) (*Level, error) {
	if cfg.GridSize <= 0 {
		return nil, fmt.Errorf("%w: grid_size must be positive, got %d", ErrInvalidLevel, cfg.GridSize)
	}
	if cfg.MaxMoves <= 0 {
		return nil, fmt.Errorf("%w: max_moves must be positive, got %d", ErrInvalidLevel, cfg.MaxMoves)
	}

	l := &Level{
		GridSize:      cfg.GridSize,
		MaxMoves:      cfg.MaxMoves,
		Portal:        cfg.Grid.Portal,
		Switch:        cfg.Grid.Switch,
		ProjectedWall: cfg.Grid.ProjectedWall,
		PlayerStart:   cfg.Grid.PlayerStart,
		Prompt:        cfg.Prompt,
		walls:         make(map[Coord]struct{}, len(cfg.Grid.Walls)),
	}

	for _, w := range cfg.Grid.Walls {
		if !l.InBounds(w) {
			return nil, fmt.Errorf("%w: wall %s is outside the %dx%d grid", ErrInvalidLevel, w, cfg.GridSize, cfg.GridSize)
		}
		l.walls[w] = struct{}{}
	}

	special := []struct {
		name string
		pos  Coord
	}{
		{"portal", l.Portal},
		{"switch", l.Switch},
		{"projected_wall", l.ProjectedWall},
		{"player_start", l.PlayerStart},
	}
	seen := make(map[Coord]string, len(special))
	for _, s := range special {
		if !l.InBounds(s.pos) {
			return nil, fmt.Errorf("%w: %s %s is outside the %dx%d grid", ErrInvalidLevel, s.name, s.pos, cfg.GridSize, cfg.GridSize)
		}
		if l.IsWall(s.pos) {
			return nil, fmt.Errorf("%w: %s %s is placed on a wall", ErrInvalidLevel, s.name, s.pos)
		}
		if other, ok := seen[s.pos]; ok {
			return nil, fmt.Errorf("%w: %s and %s share cell %s", ErrInvalidLevel, other, s.name, s.pos)
		}
		seen[s.pos] = s.name
	}

	return l, nil
}

// ParseJSON decodes a single instance config and parses it.
func ParseJSON(data []byte) (*Level, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	return Parse(cfg)
}

// InBounds reports whether c lies within [0, GridSize) on both axes.
func (l *Level) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < l.GridSize && c.Col >= 0 && c.Col < l.GridSize
}

// IsWall reports whether c is a regular, permanently impassable wall.
// The projected wall is not part of this set; its passability is
// episode state.
func (l *Level) IsWall(c Coord) bool {
	_, ok := l.walls[c]
	return ok
}

// WallCount returns the number of regular walls.
func (l *Level) WallCount() int {
	return len(l.walls)
}
