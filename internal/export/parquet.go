// Package export archives episode transcripts as parquet for offline
// analysis (DuckDB and friends).
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/paulutsch/clembench/pkg/transcript"
)

// MoveRow is one move attempt of one episode, flattened for columnar
// storage. Dictionary encoding keeps the repeated ID/experiment/model
// columns cheap.
type MoveRow struct {
	ResultID   string `parquet:"result_id,dict"`
	Experiment string `parquet:"experiment,dict"`
	GameID     int32  `parquet:"game_id"`
	Model      string `parquet:"model,dict"`

	Move                int32  `parquet:"move"`
	Direction           string `parquet:"direction,dict"`
	Blocked             bool   `parquet:"blocked"`
	PlayerRow           int32  `parquet:"player_row"`
	PlayerCol           int32  `parquet:"player_col"`
	ProjectedWallActive bool   `parquet:"projected_wall_active"`
	Status              string `parquet:"status,dict"`
	Aborted             bool   `parquet:"aborted"`

	Response string `parquet:"response,optional,zstd"`
}

// Flatten converts results to one MoveRow per recorded move.
func Flatten(results []*transcript.Result) []MoveRow {
	var rows []MoveRow
	for _, res := range results {
		for _, rec := range res.Records {
			rows = append(rows, MoveRow{
				ResultID:            res.ID.String(),
				Experiment:          res.Experiment,
				GameID:              int32(res.GameID),
				Model:               res.Model,
				Move:                int32(rec.Move),
				Direction:           string(rec.Outcome.Direction),
				Blocked:             rec.Outcome.Blocked,
				PlayerRow:           int32(rec.Outcome.PlayerPos.Row),
				PlayerCol:           int32(rec.Outcome.PlayerPos.Col),
				ProjectedWallActive: rec.Outcome.ProjectedWallActive,
				Status:              string(rec.Outcome.Status),
				Aborted:             res.Aborted,
				Response:            rec.Response,
			})
		}
	}
	return rows
}

// WriteResults writes one parquet file per batch under outDir and
// returns its path. The file is written to a temp name and renamed so
// readers never see a partial file.
func WriteResults(outDir string, results []*transcript.Result) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("episodes_%d.parquet", time.Now().UnixNano()))
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	rows := Flatten(results)
	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "episode_move_v1"),
	); err != nil {
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return "", fmt.Errorf("rename parquet: %w", err)
	}
	return outPath, nil
}
