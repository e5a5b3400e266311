package episode

import (
	"errors"

	"github.com/google/uuid"
	"github.com/paulutsch/clembench/pkg/level"
)

// ErrEpisodeTerminated is returned by ApplyMove when the episode has
// already ended. It indicates a caller bug; the episode is unchanged.
var ErrEpisodeTerminated = errors.New("episode already terminated")

// Status is the lifecycle state of an episode. Won and exhausted are
// terminal and sticky.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusExhausted  Status = "exhausted"
)

// Episode is the mutable per-run state of one game. A single caller
// drives it one move at a time; episodes are independent of each other,
// so many may run in parallel goroutines without locking.
type Episode struct {
	ID    uuid.UUID
	Level *level.Level

	PlayerPos           level.Coord
	ProjectedWallActive bool
	MovesTaken          int
	Status              Status
}

// New creates an episode at the level's start position with the
// projected wall active and the full move budget remaining.
func New(l *level.Level) *Episode {
	return &Episode{
		ID:                  uuid.New(),
		Level:               l,
		PlayerPos:           l.PlayerStart,
		ProjectedWallActive: true,
		MovesTaken:          0,
		Status:              StatusInProgress,
	}
}

// Terminal reports whether the episode has ended.
func (e *Episode) Terminal() bool {
	return e.Status != StatusInProgress
}

// MovesLeft returns the remaining move budget.
func (e *Episode) MovesLeft() int {
	return e.Level.MaxMoves - e.MovesTaken
}
