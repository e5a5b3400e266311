package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulutsch/clembench/pkg/episode"
	"github.com/paulutsch/clembench/pkg/level"
	"github.com/paulutsch/clembench/pkg/transcript"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	rs, err := NewRedisStorage("redis://"+mr.Addr(), t.TempDir(), ttl, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	return rs, mr
}

func sampleResult() *transcript.Result {
	r := transcript.New("5x5_basic", 1, "test-model")
	r.Append("DIRECTION: e", episode.MoveOutcome{
		Direction:  episode.East,
		PlayerPos:  level.Coord{Row: 1, Col: 2},
		Status:     episode.StatusWon,
		MovesTaken: 1,
	})
	r.Finish()
	return r
}

func TestRedisStorage_SaveAndLoadResult(t *testing.T) {
	rs, _ := setupTestRedis(t, 0)
	ctx := context.Background()

	res := sampleResult()
	require.NoError(t, rs.SaveResult(ctx, res))

	loaded, err := rs.LoadResult(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, res.ID, loaded.ID)
	assert.Equal(t, "5x5_basic", loaded.Experiment)
	assert.Equal(t, episode.StatusWon, loaded.Status)
	require.Len(t, loaded.Records, 1)
	assert.Equal(t, episode.East, loaded.Records[0].Outcome.Direction)
}

func TestRedisStorage_LoadMissingResult(t *testing.T) {
	rs, _ := setupTestRedis(t, 0)

	loaded, err := rs.LoadResult(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_ListResultIDs(t *testing.T) {
	rs, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	first := sampleResult()
	second := sampleResult()
	require.NoError(t, rs.SaveResult(ctx, first))
	require.NoError(t, rs.SaveResult(ctx, second))

	// Keys outside the result namespace are ignored
	mr.Set("other:thing", "x")

	ids, err := rs.ListResultIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
}

func TestRedisStorage_DeleteResult(t *testing.T) {
	rs, _ := setupTestRedis(t, 0)
	ctx := context.Background()

	res := sampleResult()
	require.NoError(t, rs.SaveResult(ctx, res))
	require.NoError(t, rs.DeleteResult(ctx, res.ID))

	loaded, err := rs.LoadResult(ctx, res.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_ResultTTL(t *testing.T) {
	rs, mr := setupTestRedis(t, time.Minute)
	ctx := context.Background()

	res := sampleResult()
	require.NoError(t, rs.SaveResult(ctx, res))

	mr.FastForward(2 * time.Minute)

	loaded, err := rs.LoadResult(ctx, res.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded, "results must expire after the configured TTL")
}

func TestRedisStorage_GetExperiments(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	dataDir := t.TempDir()
	gameDir := filepath.Join(dataDir, "portalgame")
	require.NoError(t, os.MkdirAll(gameDir, 0o755))

	instances := `{
  "experiments": [
    {
      "name": "tiny",
      "game_instances": [
        {
          "game_id": 0,
          "grid_size": 3,
          "max_moves": 5,
          "grid": {
            "walls": [],
            "portal": [2,2],
            "switch": [0,2],
            "projected_wall": [2,0],
            "player_start": [1,1]
          },
          "prompt": "go"
        }
      ]
    }
  ]
}`
	require.NoError(t, os.WriteFile(filepath.Join(gameDir, "instances.json"), []byte(instances), 0o644))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	rs, err := NewRedisStorage("redis://"+mr.Addr(), dataDir, 0, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rs.Close() })

	file, err := rs.GetExperiments("portalgame")
	require.NoError(t, err)
	require.Len(t, file.Experiments, 1)
	assert.Equal(t, "tiny", file.Experiments[0].Name)

	_, err = rs.GetExperiments("no_such_game")
	assert.Error(t, err)
}
