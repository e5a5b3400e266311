package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/paulutsch/clembench/internal/agent"
	"github.com/paulutsch/clembench/pkg/experiment"
	"github.com/paulutsch/clembench/pkg/level"
	"github.com/paulutsch/clembench/pkg/transcript"
)

// AgentFactory builds a fresh agent per episode, so each episode gets
// its own conversation history.
type AgentFactory func() agent.Agent

type job struct {
	experiment string
	instance   experiment.GameInstance
}

// RunBatch fans the experiments' game instances out over parallelism
// workers. Episodes share no mutable state, so no locking is needed
// beyond the job and result channels. Results arrive in completion
// order.
func (r *Runner) RunBatch(ctx context.Context, file *experiment.File, newAgent AgentFactory, model string, parallelism int) ([]*transcript.Result, error) {
	if parallelism < 1 {
		parallelism = 1
	}

	jobs := make(chan job)
	results := make(chan *transcript.Result)
	errs := make(chan error, 1)

	var wg sync.WaitGroup
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				lvl, err := level.Parse(j.instance.Config)
				if err != nil {
					// Load already validated; a failure here is a bug
					select {
					case errs <- fmt.Errorf("experiment %q game %d: %w", j.experiment, j.instance.GameID, err):
					default:
					}
					continue
				}

				res, err := r.RunEpisode(ctx, lvl, newAgent(), j.experiment, j.instance.GameID, model)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
				}
				if res != nil {
					results <- res
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, exp := range file.Experiments {
			for _, gi := range exp.GameInstances {
				select {
				case jobs <- job{experiment: exp.Name, instance: gi}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]*transcript.Result, 0, file.InstanceCount())
	for res := range results {
		collected = append(collected, res)
	}

	select {
	case err := <-errs:
		return collected, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return collected, err
	}
	return collected, nil
}
