package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/paulutsch/clembench/internal/agent"
	"github.com/paulutsch/clembench/internal/config"
	"github.com/paulutsch/clembench/internal/export"
	"github.com/paulutsch/clembench/internal/logger"
	"github.com/paulutsch/clembench/internal/runner"
	"github.com/paulutsch/clembench/internal/services"
	"github.com/paulutsch/clembench/internal/storage"
	"github.com/paulutsch/clembench/pkg/episode"
	"github.com/paulutsch/clembench/pkg/experiment"
	"github.com/paulutsch/clembench/pkg/transcript"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Portal Game runner",
		"environment", cfg.Environment,
		"provider", cfg.LLMProvider,
		"instances", cfg.InstancesPath,
		"parallelism", cfg.Parallelism)

	instances, err := experiment.Load(cfg.InstancesPath)
	if err != nil {
		log.Error("Failed to load instances", "error", err)
		os.Exit(1)
	}
	log.Info("Instances loaded",
		"experiments", len(instances.Experiments),
		"games", instances.InstanceCount())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	newAgent, err := buildAgentFactory(cfg, log)
	if err != nil {
		log.Error("Failed to set up agent", "error", err)
		os.Exit(1)
	}

	r := runner.New(log, cfg.MaxRetries)
	results, err := r.RunBatch(ctx, instances, newAgent, cfg.ModelName, cfg.Parallelism)
	if err != nil {
		log.Error("Batch finished with errors", "error", err, "completed", len(results))
	}

	summarize(log, results)
	persist(ctx, cfg, log, results)

	if cfg.ExportDir != "" {
		path, err := export.WriteResults(cfg.ExportDir, results)
		if err != nil {
			log.Error("Parquet export failed", "error", err)
		} else {
			log.Info("Transcripts exported", "path", path)
		}
	}
}

func buildAgentFactory(cfg *config.Config, log *slog.Logger) (runner.AgentFactory, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "random":
		return func() agent.Agent { return agent.RandomAgent{} }, nil
	case "mock":
		return func() agent.Agent { return agent.NewLLMAgent(services.NewMockLLMAPI(), log) }, nil
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when using the anthropic provider")
		}
		llm := services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
		return func() agent.Agent { return agent.NewLLMAgent(llm, log) }, nil
	case "ollama":
		llm := services.NewOllamaService(cfg.OllamaURL, cfg.ModelName, log)
		initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := llm.InitModel(initCtx, cfg.ModelName); err != nil {
			return nil, err
		}
		return func() agent.Agent { return agent.NewLLMAgent(llm, log) }, nil
	}
	return nil, fmt.Errorf("invalid LLM provider %q (supported: anthropic, ollama, mock, random)", cfg.LLMProvider)
}

func summarize(log *slog.Logger, results []*transcript.Result) {
	perExperiment := make(map[string]*tally)
	for _, res := range results {
		t := perExperiment[res.Experiment]
		if t == nil {
			t = &tally{}
			perExperiment[res.Experiment] = t
		}
		switch {
		case res.Aborted:
			t.aborted++
		case res.Status == episode.StatusWon:
			t.won++
		default:
			t.exhausted++
		}
	}

	for name, t := range perExperiment {
		log.Info("Experiment summary",
			"experiment", name,
			"won", t.won,
			"exhausted", t.exhausted,
			"aborted", t.aborted)
	}
}

type tally struct {
	won, exhausted, aborted int
}

func persist(ctx context.Context, cfg *config.Config, log *slog.Logger, results []*transcript.Result) {
	if cfg.RedisURL == "" {
		return
	}

	ttl := time.Duration(0)
	if cfg.ResultsTTL != "" {
		parsed, err := time.ParseDuration(cfg.ResultsTTL)
		if err != nil {
			log.Warn("Invalid RESULTS_TTL, storing without expiry", "value", cfg.ResultsTTL)
		} else {
			ttl = parsed
		}
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, filepath.Dir(filepath.Dir(cfg.InstancesPath)), ttl, log)
	if err != nil {
		log.Error("Failed to create result storage", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		log.Warn("Result storage unreachable, skipping persistence", "error", err)
		return
	}

	saved := 0
	for _, res := range results {
		if err := store.SaveResult(ctx, res); err != nil {
			log.Error("Failed to save result", "uuid", res.ID, "error", err)
			continue
		}
		saved++
	}
	log.Info("Results persisted", "saved", saved, "total", len(results))
}
