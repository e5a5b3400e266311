// Package runner drives episodes: it renders observations, obtains
// moves from an agent, applies them through the resolver and collects
// the transcript. All waiting on the agent happens here; the engine
// packages it calls are pure and never block.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulutsch/clembench/internal/agent"
	"github.com/paulutsch/clembench/pkg/episode"
	"github.com/paulutsch/clembench/pkg/level"
	"github.com/paulutsch/clembench/pkg/render"
	"github.com/paulutsch/clembench/pkg/transcript"
)

const responseFormatReminder = "Your response must end with a line of the form DIRECTION: <letter>, " +
	"where <letter> is one of n, s, e, w. Please try again."

type Runner struct {
	logger     *slog.Logger
	maxRetries int
	skin       render.Skin
}

// New creates a runner. maxRetries bounds how often an unparseable
// agent response is re-prompted before the episode is aborted.
func New(logger *slog.Logger, maxRetries int) *Runner {
	return &Runner{
		logger:     logger,
		maxRetries: maxRetries,
		skin:       render.StringSkin,
	}
}

// RunEpisode plays one episode to termination and returns its result.
// The returned result is also valid when the episode was aborted after
// repeated protocol violations; the error return is reserved for
// infrastructure failures (backend errors, context cancellation).
func (r *Runner) RunEpisode(ctx context.Context, lvl *level.Level, ag agent.Agent, experimentName string, gameID int, model string) (*transcript.Result, error) {
	ep := episode.New(lvl)
	result := transcript.New(experimentName, gameID, model)
	log := r.logger.With("episode_id", ep.ID, "experiment", experimentName, "game_id", gameID)

	obs := r.initialObservation(ep)
	retries := 0

	for !ep.Terminal() {
		if err := ctx.Err(); err != nil {
			result.Abort()
			return result, fmt.Errorf("episode cancelled: %w", err)
		}

		dir, raw, err := ag.NextMove(ctx, obs)
		if err != nil {
			if errors.Is(err, agent.ErrInvalidDirection) {
				retries++
				if retries > r.maxRetries {
					log.Warn("Aborting episode after repeated protocol violations", "retries", retries)
					result.Abort()
					return result, nil
				}
				obs = agent.Observation{Content: "Warning: " + responseFormatReminder}
				continue
			}
			result.Abort()
			return result, fmt.Errorf("agent failed: %w", err)
		}
		retries = 0

		outcome, err := ep.ApplyMove(dir)
		if err != nil {
			// Unreachable while the loop checks Terminal first
			result.Abort()
			return result, err
		}

		result.Append(raw, outcome)
		log.Debug("Move resolved",
			"direction", dir,
			"blocked", outcome.Blocked,
			"position", outcome.PlayerPos,
			"status", outcome.Status,
			"moves_taken", outcome.MovesTaken)

		obs = r.turnObservation(ep, outcome)
	}

	result.Finish()
	log.Info("Episode finished", "status", result.Status, "moves_taken", result.MovesTaken)
	return result, nil
}

// initialObservation is the rules prompt plus the starting grid.
func (r *Runner) initialObservation(ep *episode.Episode) agent.Observation {
	grid := render.Text(render.Render(ep.Level, ep.ProjectedWallActive, ep.PlayerPos), r.skin)
	return agent.Observation{
		Content: ep.Level.Prompt + "\n\nYou initially see the following grid layout:\n" + grid,
		Grid:    grid,
	}
}

// turnObservation describes the game after one resolved move: an
// optional warning for blocked moves, the player position, the
// projected wall state and the full grid.
func (r *Runner) turnObservation(ep *episode.Episode, outcome episode.MoveOutcome) agent.Observation {
	grid := render.Text(render.Render(ep.Level, ep.ProjectedWallActive, ep.PlayerPos), r.skin)

	content := ""
	if outcome.Blocked {
		content += "Warning: " + outcome.BlockReason + "\n"
	}
	content += fmt.Sprintf("Current position: %s\n", ep.PlayerPos)
	content += fmt.Sprintf("Projected wall active: %t\n", ep.ProjectedWallActive)
	content += fmt.Sprintf("Moves remaining: %d\n", ep.MovesLeft())
	content += "\nGrid:\n" + grid

	return agent.Observation{Content: content, Grid: grid}
}
