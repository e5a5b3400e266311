// Package agent adapts free-text player models to the engine's typed
// moves. The resolver never sees an invalid direction; everything
// protocol-shaped is validated here.
package agent

import (
	"context"

	"github.com/paulutsch/clembench/pkg/episode"
)

// Observation is what an agent sees each turn: the textual game-master
// message and the rendered grid it embeds.
type Observation struct {
	Content string
	Grid    string
}

// Agent produces the next move for an episode. NextMove returns the
// parsed direction together with the raw response text for the
// transcript. A response that violates the protocol returns
// ErrInvalidDirection; the caller decides whether to re-prompt.
type Agent interface {
	NextMove(ctx context.Context, obs Observation) (episode.Direction, string, error)
}
