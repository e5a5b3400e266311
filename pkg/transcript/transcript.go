// Package transcript is the episode result surface: the move-by-move
// record a harness persists and reports for each game instance.
package transcript

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulutsch/clembench/pkg/episode"
)

// Record is one move attempt: the raw agent response and the resolved
// outcome.
type Record struct {
	Move     int                 `json:"move"`
	Response string              `json:"response,omitempty"`
	Outcome  episode.MoveOutcome `json:"outcome"`
}

// Result is the full outcome of one episode.
type Result struct {
	ID         uuid.UUID      `json:"id"`
	Experiment string         `json:"experiment,omitempty"`
	GameID     int            `json:"game_id"`
	Model      string         `json:"model,omitempty"`
	Status     episode.Status `json:"status"`
	MovesTaken int            `json:"moves_taken"`
	Aborted    bool           `json:"aborted,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Records    []Record       `json:"records"`
}

// New starts a result for one episode run.
func New(experiment string, gameID int, model string) *Result {
	return &Result{
		ID:         uuid.New(),
		Experiment: experiment,
		GameID:     gameID,
		Model:      model,
		Status:     episode.StatusInProgress,
		StartedAt:  time.Now(),
		Records:    make([]Record, 0),
	}
}

// Append records one resolved move.
func (r *Result) Append(response string, outcome episode.MoveOutcome) {
	r.Records = append(r.Records, Record{
		Move:     outcome.MovesTaken,
		Response: response,
		Outcome:  outcome,
	})
	r.Status = outcome.Status
	r.MovesTaken = outcome.MovesTaken
}

// Finish stamps the end time. Abort marks the episode as abandoned by
// the harness (for example after repeated unparseable agent responses)
// in addition to stamping the end time.
func (r *Result) Finish() {
	r.FinishedAt = time.Now()
}

func (r *Result) Abort() {
	r.Aborted = true
	r.Finish()
}

// Won reports whether the episode reached the portal.
func (r *Result) Won() bool {
	return r.Status == episode.StatusWon
}
