package export

import (
	"os"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulutsch/clembench/pkg/episode"
	"github.com/paulutsch/clembench/pkg/level"
	"github.com/paulutsch/clembench/pkg/transcript"
)

func sampleResults() []*transcript.Result {
	won := transcript.New("5x5_basic", 1, "test-model")
	won.Append("Heading east.\nDIRECTION: e", episode.MoveOutcome{
		Direction:           episode.East,
		PlayerPos:           level.Coord{Row: 1, Col: 2},
		ProjectedWallActive: true,
		Status:              episode.StatusInProgress,
		MovesTaken:          1,
	})
	won.Append("DIRECTION: s", episode.MoveOutcome{
		Direction:  episode.South,
		PlayerPos:  level.Coord{Row: 2, Col: 2},
		Status:     episode.StatusWon,
		MovesTaken: 2,
	})
	won.Finish()

	aborted := transcript.New("9x9_corridor", 0, "test-model")
	aborted.Append("DIRECTION: n", episode.MoveOutcome{
		Direction:           episode.North,
		Blocked:             true,
		BlockReason:         "There is a wall in the cell (0, 1)! Please try again.",
		PlayerPos:           level.Coord{Row: 1, Col: 1},
		ProjectedWallActive: true,
		Status:              episode.StatusInProgress,
		MovesTaken:          1,
	})
	aborted.Abort()

	return []*transcript.Result{won, aborted}
}

func TestFlatten(t *testing.T) {
	results := sampleResults()
	rows := Flatten(results)

	require.Len(t, rows, 3)

	assert.Equal(t, results[0].ID.String(), rows[0].ResultID)
	assert.Equal(t, "5x5_basic", rows[0].Experiment)
	assert.Equal(t, int32(1), rows[0].Move)
	assert.Equal(t, "east", rows[0].Direction)
	assert.True(t, rows[0].ProjectedWallActive)
	assert.False(t, rows[0].Aborted)

	assert.Equal(t, "won", rows[1].Status)
	assert.Equal(t, int32(2), rows[1].Move)

	assert.Equal(t, "9x9_corridor", rows[2].Experiment)
	assert.True(t, rows[2].Blocked)
	assert.True(t, rows[2].Aborted)
	assert.Equal(t, int32(1), rows[2].PlayerRow, "blocked moves keep the player in place")
}

func TestWriteResults_RoundTrip(t *testing.T) {
	outDir := t.TempDir()

	path, err := WriteResults(outDir, sampleResults())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, outDir))
	assert.True(t, strings.HasSuffix(path, ".parquet"))

	// No temp file left behind
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(t, err)

	reader := parquet.NewGenericReader[MoveRow](f)
	defer reader.Close()

	rows := make([]MoveRow, 3)
	n, err := reader.Read(rows)
	if n != 3 {
		t.Fatalf("read %d rows (err %v), want 3", n, err)
	}
	assert.Equal(t, "east", rows[0].Direction)
	assert.Equal(t, "Heading east.\nDIRECTION: e", rows[0].Response)
	assert.True(t, rows[2].Blocked)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteResults_EmptyBatch(t *testing.T) {
	outDir := t.TempDir()

	path, err := WriteResults(outDir, nil)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
