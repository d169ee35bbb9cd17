// Command rankbench fits every ranking backend on the same request and
// prints a side-by-side score comparison. Backends train independently, so
// they run concurrently.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/microlearn/sessionrank/internal/domain/feature"
	"github.com/microlearn/sessionrank/internal/domain/label"
	"github.com/microlearn/sessionrank/internal/domain/model"
	"github.com/microlearn/sessionrank/internal/domain/ranker"
	"github.com/microlearn/sessionrank/internal/domain/sample"
)

type benchResult struct {
	backend string
	scores  []float64
	elapsed time.Duration
}

func main() {
	var (
		inPath = flag.String("in", "input.json", "path to the ranking request JSON")
		seed   = flag.Int64("seed", 1, "fusion weight seed for reproducible comparison")
	)
	flag.Parse()

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}
	var req model.RankingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintln(os.Stderr, "parse input:", err)
		os.Exit(1)
	}
	if len(req.Sessions) == 0 {
		fmt.Fprintln(os.Stderr, "input has no sessions")
		os.Exit(1)
	}

	vectors := make([]feature.Vector, len(req.Sessions))
	labels := make([]float64, len(req.Sessions))
	content := make([][]float32, len(req.Sessions))
	for i, sess := range req.Sessions {
		vectors[i] = feature.SessionVector(sess, req.User)
		labels[i] = float64(label.SessionGrade(sess))
		content[i] = sess.ContentEmbedding
	}

	backends := []string{ranker.LambdaMART, ranker.Pairwise, ranker.Fusion}
	results := make([]benchResult, len(backends))

	g, ctx := errgroup.WithContext(context.Background())
	for i, name := range backends {
		i, name := i, name
		g.Go(func() error {
			set := sample.Group(vectors, labels)
			if name == ranker.Fusion {
				set.WithEmbeddings(req.QueryEmbedding, content)
			}
			b, err := ranker.New(name, ranker.WithSeed(*seed))
			if err != nil {
				return err
			}
			start := time.Now()
			scores, err := b.FitAndScore(ctx, set)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = benchResult{backend: name, scores: scores, elapsed: time.Since(start)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "benchmark failed:", err)
		os.Exit(1)
	}

	fmt.Printf("%-12s %-28s %12s %10s\n", "backend", "top session", "top score", "fit time")
	for _, res := range results {
		order := make([]int, len(res.scores))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return res.scores[order[a]] > res.scores[order[b]] })
		top := req.Sessions[order[0]]
		fmt.Printf("%-12s %-28s %12.6f %10s\n", res.backend, top.SessionID, res.scores[order[0]], res.elapsed.Round(time.Millisecond))
	}

	fmt.Println()
	fmt.Printf("%-28s", "session")
	for _, res := range results {
		fmt.Printf(" %12s", res.backend)
	}
	fmt.Println()
	for i, sess := range req.Sessions {
		fmt.Printf("%-28s", sess.SessionID)
		for _, res := range results {
			fmt.Printf(" %12.6f", res.scores[i])
		}
		fmt.Println()
	}
}
