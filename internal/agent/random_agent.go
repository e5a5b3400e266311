package agent

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/paulutsch/clembench/pkg/episode"
)

var directions = []episode.Direction{episode.North, episode.South, episode.East, episode.West}

// RandomAgent is the baseline player: it ignores the observation and
// picks a uniformly random direction, answering in the same protocol
// real models must follow.
type RandomAgent struct{}

var _ Agent = (*RandomAgent)(nil)

func (RandomAgent) NextMove(ctx context.Context, obs Observation) (episode.Direction, string, error) {
	d := directions[rand.IntN(len(directions))]
	return d, fmt.Sprintf("DIRECTION: %s", d.Letter()), nil
}
