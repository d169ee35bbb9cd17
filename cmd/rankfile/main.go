// Command rankfile runs the ranking pipeline in batch mode: it reads a
// ranking request from a JSON file, scores it with the configured backend,
// and writes the sorted response to another JSON file.
package main

import (
	"context"
	"flag"
	"os"

	json "github.com/goccy/go-json"

	service "github.com/microlearn/sessionrank/internal/app"
	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/pkg/logger"
)

func main() {
	var (
		inPath  = flag.String("in", "input.json", "path to the ranking request JSON")
		outPath = flag.String("out", "output.json", "path for the ranking response JSON")
		backend = flag.String("backend", "lambdamart", "ranking backend: lambdamart, pairwise, fusion")
		seed    = flag.Int64("seed", 0, "fusion weight seed; 0 seeds from the clock")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()
	ctx := context.Background()

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Error(ctx, "failed to read input", logger.String("path", *inPath), logger.Error(err))
		os.Exit(1)
	}

	var req model.RankingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Error(ctx, "failed to parse input", logger.String("path", *inPath), logger.Error(err))
		os.Exit(1)
	}

	svc := service.New(
		service.WithBackend(*backend),
		service.WithFusionSeed(*seed),
		service.WithLogger(log),
	)
	resp, err := svc.RankSessions(ctx, req)
	if err != nil {
		log.Error(ctx, "ranking failed", logger.String("backend", *backend), logger.Error(err))
		os.Exit(1)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Error(ctx, "failed to encode output", logger.Error(err))
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Error(ctx, "failed to write output", logger.String("path", *outPath), logger.Error(err))
		os.Exit(1)
	}

	log.Info(ctx, "ranking written",
		logger.String("backend", *backend),
		logger.Int("candidates", len(req.Sessions)),
		logger.String("out", *outPath),
	)
}
