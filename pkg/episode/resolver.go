package episode

import (
	"fmt"

	"github.com/paulutsch/clembench/pkg/level"
)

// Direction is one of the four cardinal moves.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Letter returns the single-letter wire form used by the agent
// protocol (n, s, e, w).
func (d Direction) Letter() string {
	return string(d[0])
}

// Delta returns the row/col displacement of the direction. North
// decreases the row, east increases the column.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	}
	return 0, 0
}

// MoveOutcome reports the result of a single resolved move.
type MoveOutcome struct {
	Direction           Direction   `json:"direction"`
	Blocked             bool        `json:"blocked"`
	BlockReason         string      `json:"block_reason,omitempty"`
	PlayerPos           level.Coord `json:"player_pos"`
	ProjectedWallActive bool        `json:"projected_wall_active"`
	Status              Status      `json:"status"`
	MovesTaken          int         `json:"moves_taken"`
}

// ApplyMove resolves one move against the episode's level and mutates
// the episode accordingly.
//
// Passability is checked in order: grid bounds, regular walls, then the
// projected wall while it is active. A blocked move leaves the player
// in place and fires no switch or win effects. An accepted move onto
// the switch flips the projected wall's state every time, and an
// accepted move onto the portal wins.
//
// Every move attempt, blocked or not, consumes one unit of the move
// budget; when the budget runs out without a win the episode is
// exhausted. Calling ApplyMove on a terminated episode returns
// ErrEpisodeTerminated and changes nothing.
func (e *Episode) ApplyMove(d Direction) (MoveOutcome, error) {
	if e.Terminal() {
		return MoveOutcome{}, fmt.Errorf("%w: status is %s", ErrEpisodeTerminated, e.Status)
	}

	dr, dc := d.Delta()
	candidate := level.Coord{Row: e.PlayerPos.Row + dr, Col: e.PlayerPos.Col + dc}

	blocked, reason := e.checkBlocked(candidate)
	if !blocked {
		e.PlayerPos = candidate

		if candidate == e.Level.Switch {
			e.ProjectedWallActive = !e.ProjectedWallActive
		}
		if candidate == e.Level.Portal {
			e.Status = StatusWon
		}
	}

	e.MovesTaken++
	if e.Status == StatusInProgress && e.MovesTaken == e.Level.MaxMoves {
		e.Status = StatusExhausted
	}

	return MoveOutcome{
		Direction:           d,
		Blocked:             blocked,
		BlockReason:         reason,
		PlayerPos:           e.PlayerPos,
		ProjectedWallActive: e.ProjectedWallActive,
		Status:              e.Status,
		MovesTaken:          e.MovesTaken,
	}, nil
}

func (e *Episode) checkBlocked(candidate level.Coord) (bool, string) {
	if !e.Level.InBounds(candidate) {
		return true, fmt.Sprintf("The cell %s is outside the grid! Please try again.", candidate)
	}
	if e.Level.IsWall(candidate) {
		return true, fmt.Sprintf("The object at cell %s is a wall! You cannot pass through walls! Please try again.", candidate)
	}
	if candidate == e.Level.ProjectedWall && e.ProjectedWallActive {
		return true, fmt.Sprintf("The object at cell %s is a projected wall! You need to deactivate it first.", candidate)
	}
	return false, ""
}
